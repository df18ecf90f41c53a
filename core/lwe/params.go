package lwe

import (
	"errors"
	"fmt"
	"math"

	"github.com/tuneinsight/lattigo/v5/utils/buffer"
)

var (
	// ErrUnsupportedSecurityLevel is returned by BuildParameters when no
	// parameter set reaches the requested security level.
	ErrUnsupportedSecurityLevel = errors.New("lwe: unsupported security level")

	// ErrCorruptKeyFile is returned when deserializing key material from a
	// truncated stream or one whose parameter tag does not match the
	// expected Parameters.
	ErrCorruptKeyFile = errors.New("lwe: corrupt key file")

	// ErrTruncatedStream is returned when a ciphertext record cannot be
	// fully read from a stream.
	ErrTruncatedStream = errors.New("lwe: truncated ciphertext stream")
)

// Parameters holds the fixed parameters of the bit-level LWE scheme.
// The zero value is invalid; use BuildParameters or NewParameters.
type Parameters struct {
	n      uint64  // ciphertext dimension
	q      uint64  // ciphertext modulus, power of two
	p      uint64  // plaintext modulus
	sigma  float64 // gaussian error stdev, absolute
	lambda int     // rated security
}

type parametersLiteral struct {
	Lambda int
	N      uint64
	LogQ   int
	Alpha  float64 // error stdev relative to q
}

// Rated security of the LWE branch of the default gate-bootstrapping
// parameter sets, sorted by increasing security.
var parametersTable = []parametersLiteral{
	{Lambda: 80, N: 450, LogQ: 32, Alpha: 6.104e-05},
	{Lambda: 110, N: 500, LogQ: 32, Alpha: 3.052e-05},
	{Lambda: 128, N: 630, LogQ: 32, Alpha: 2.444e-05},
}

// BuildParameters returns the smallest parameter set rated at least
// minSecurityLevel bits.
func BuildParameters(minSecurityLevel int) (Parameters, error) {
	if minSecurityLevel <= 0 {
		return Parameters{}, fmt.Errorf("%w: %d", ErrUnsupportedSecurityLevel, minSecurityLevel)
	}
	for _, lit := range parametersTable {
		if lit.Lambda >= minSecurityLevel {
			q := uint64(1) << lit.LogQ
			return Parameters{
				n:      lit.N,
				q:      q,
				p:      2,
				sigma:  lit.Alpha * float64(q),
				lambda: lit.Lambda,
			}, nil
		}
	}
	return Parameters{}, fmt.Errorf("%w: %d", ErrUnsupportedSecurityLevel, minSecurityLevel)
}

// NewParameters builds a Parameters from explicit values. q must be a
// power of two so that uniform mask sampling stays bias-free.
func NewParameters(n, q, p uint64, sigma float64) (Parameters, error) {
	if q == 0 || q&(q-1) != 0 {
		return Parameters{}, fmt.Errorf("lwe: modulus %d is not a power of two", q)
	}
	if p == 0 || q/(4*p) == 0 {
		return Parameters{}, fmt.Errorf("lwe: plaintext modulus %d too large for ciphertext modulus %d", p, q)
	}
	return Parameters{n: n, q: q, p: p, sigma: sigma}, nil
}

func (params Parameters) N() uint64 {
	return params.n
}

func (params Parameters) Q() uint64 {
	return params.q
}

func (params Parameters) P() uint64 {
	return params.p
}

// Mask returns q-1, valid as a sampling mask since q is a power of two.
func (params Parameters) Mask() uint64 {
	return params.q - 1
}

func (params Parameters) Sigma() float64 {
	return params.sigma
}

// SecurityLevel returns the rated security in bits, 0 for parameters not
// taken from the table.
func (params Parameters) SecurityLevel() int {
	return params.lambda
}

func (params Parameters) Equal(other Parameters) bool {
	return params.n == other.n && params.q == other.q && params.p == other.p && params.sigma == other.sigma
}

// CiphertextBinarySize returns the fixed serialized size in bytes of one
// ciphertext record under these parameters.
func (params Parameters) CiphertextBinarySize() int {
	return 8 * (int(params.n) + 1)
}

// tagBinarySize is the serialized size of the parameter tag written at
// the head of key files.
const tagBinarySize = 32

func (params Parameters) writeTag(w buffer.Writer) (n int64, err error) {
	var inc int64
	for _, v := range []uint64{params.n, params.q, params.p, math.Float64bits(params.sigma)} {
		if inc, err = buffer.WriteUint64(w, v); err != nil {
			return n + inc, err
		}
		n += inc
	}
	return
}

// readTag reads a parameter tag and checks it against params. A short
// read or a mismatching tuple is reported as ErrCorruptKeyFile.
func (params Parameters) readTag(r buffer.Reader) (n int64, err error) {
	var inc int64
	tag := make([]uint64, 4)
	for i := range tag {
		if inc, err = buffer.ReadUint64(r, &tag[i]); err != nil {
			return n + inc, fmt.Errorf("%w: reading parameter tag: %s", ErrCorruptKeyFile, err)
		}
		n += inc
	}
	if tag[0] != params.n || tag[1] != params.q || tag[2] != params.p || math.Float64frombits(tag[3]) != params.sigma {
		return n, fmt.Errorf("%w: parameter tag mismatch (got n=%d q=%d p=%d, want n=%d q=%d p=%d)",
			ErrCorruptKeyFile, tag[0], tag[1], tag[2], params.n, params.q, params.p)
	}
	return
}
