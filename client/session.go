// Package client orchestrates one end-to-end encryption session: build
// parameters, obtain the secret key, encode and encrypt the operands,
// and hand the record file off to the evaluating party.
package client

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tuneinsight/lattigo/v5/utils/sampling"

	"bitfhe/bits"
	"bitfhe/core/lwe"
	"bitfhe/transport"
)

// State tracks the session's linear progress. Any failure is fatal; there
// is no recovery branch.
type State int

const (
	StateInit State = iota
	StateParamsBuilt
	StateKeyReady
	StateInputsEncoded
	StateInputsEncrypted
	StateTransportWritten
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateParamsBuilt:
		return "ParamsBuilt"
	case StateKeyReady:
		return "KeyReady"
	case StateInputsEncoded:
		return "InputsEncoded"
	case StateInputsEncrypted:
		return "InputsEncrypted"
	case StateTransportWritten:
		return "TransportWritten"
	case StateDone:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PhaseTiming records how long one session phase took.
type PhaseTiming struct {
	Phase   string
	Elapsed time.Duration
}

// Session is a one-shot client run. Sessions are single-threaded and not
// reusable: construct one per run. The session owns a single randomness
// source, seeded once and consumed in order by key generation and every
// encryption, so one seed pins the whole transcript.
type Session struct {
	cfg     Config
	state   State
	params  lwe.Parameters
	sk      *lwe.SecretKey
	prng    sampling.PRNG
	timings []PhaseTiming
}

func NewSession(cfg Config) *Session {
	return &Session{cfg: cfg, state: StateInit}
}

func (s *Session) State() State {
	return s.state
}

// Params returns the parameter set of the session, valid once the state
// reached StateParamsBuilt.
func (s *Session) Params() lwe.Parameters {
	return s.params
}

// Timings returns the per-phase durations recorded so far.
func (s *Session) Timings() []PhaseTiming {
	return s.timings
}

func (s *Session) phase(name string, next State, f func() error) error {
	start := time.Now()
	if err := f(); err != nil {
		return fmt.Errorf("client: %s: %w", name, err)
	}
	s.timings = append(s.timings, PhaseTiming{Phase: name, Elapsed: time.Since(start)})
	s.state = next
	return nil
}

// Run drives the session from Init to Done. The secret key is wiped on
// every exit path, error paths included.
func (s *Session) Run() (err error) {

	defer func() {
		if s.sk != nil {
			s.sk.Zero()
			s.sk = nil
		}
	}()

	if s.state != StateInit {
		return fmt.Errorf("client: session already ran (state %s)", s.state)
	}

	if err = s.phase("build parameters", StateParamsBuilt, func() error {
		s.params, err = lwe.BuildParameters(s.cfg.SecurityLevel)
		return err
	}); err != nil {
		return err
	}

	if err = s.phase("obtain key", StateKeyReady, s.obtainKey); err != nil {
		return err
	}

	// The carry-in is a full-width zero vector: the evaluating party's
	// record layout expects three equally sized groups.
	var vectors []bits.Vector
	if err = s.phase("encode inputs", StateInputsEncoded, func() error {
		vectors = []bits.Vector{
			bits.ToBits(s.cfg.OperandA),
			bits.ToBits(s.cfg.OperandB),
			bits.ToBits(0),
		}
		return nil
	}); err != nil {
		return err
	}

	var enc *lwe.Encryptor
	if err = s.phase("prepare encryption", StateInputsEncrypted, func() error {
		enc, err = lwe.NewEncryptor(s.params, s.sk, s.prng)
		return err
	}); err != nil {
		return err
	}

	if err = s.phase("write transport", StateTransportWritten, func() error {
		return writeTransportAtomic(s.cfg.TransportOutPath, enc, vectors)
	}); err != nil {
		return err
	}

	s.state = StateDone
	return nil
}

// obtainKey resolves the single active secret key of the session and its
// randomness source. In KeyGenerate mode the generated key is persisted
// and then used directly: the value encrypted under is the value written
// to disk, with no reload and no substitution. The seeded PRNG stays with
// the session, so the encryptors keep consuming the stream key generation
// started; no re-seeding happens between the two. In KeyLoad mode the
// persisted key is the only key the session ever holds, and encryption
// draws from system entropy.
func (s *Session) obtainKey() error {
	switch s.cfg.KeyMode {
	case KeyGenerate:
		prng, err := sampling.NewKeyedPRNG(lwe.SeedKey(s.cfg.Seed))
		if err != nil {
			return fmt.Errorf("sampling.NewKeyedPRNG: %w", err)
		}
		s.prng = prng

		kgen := lwe.NewKeyGenerator(s.params, prng)
		s.sk = kgen.GenSecretKeyNew()

		if err := Serialize(s.sk, s.cfg.SecretKeyPath); err != nil {
			return err
		}

		if s.cfg.ExportCloudKey {
			ck, err := kgen.GenCloudKeyNew(s.sk)
			if err != nil {
				return err
			}
			if err := Serialize(ck, s.cfg.CloudKeyPath); err != nil {
				return err
			}
		}
		return nil

	case KeyLoad:
		sk := lwe.NewSecretKey(s.params)
		if err := Deserialize(sk, s.cfg.SecretKeyPath); err != nil {
			return err
		}
		s.sk = sk

		prng, err := sampling.NewPRNG()
		if err != nil {
			return fmt.Errorf("sampling.NewPRNG: %w", err)
		}
		s.prng = prng
		return nil

	default:
		return fmt.Errorf("unknown key mode %d", s.cfg.KeyMode)
	}
}

// writeTransportAtomic writes the record to a temporary file in the
// destination directory and renames it into place, so a partial record is
// never observable at path.
func writeTransportAtomic(path string, enc *lwe.Encryptor, vectors []bits.Vector) (err error) {

	dir, base := filepath.Split(path)
	f, err := os.CreateTemp(dir, base+".tmp*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	tmp := f.Name()

	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	tw := transport.NewWriter(f, enc)
	if err = tw.WriteRecord(vectors...); err != nil {
		return err
	}
	if err = tw.Flush(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp, err)
	}

	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("os.Rename(%s, %s): %w", tmp, path, err)
	}
	return nil
}
