package client

// KeyMode selects how the session obtains its secret key.
type KeyMode int

const (
	// KeyGenerate derives a fresh key from the configured seed and
	// persists it to SecretKeyPath before use.
	KeyGenerate KeyMode = iota
	// KeyLoad reads a previously persisted key from SecretKeyPath.
	KeyLoad
)

// Config collects the session inputs. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// SecurityLevel is the minimum security in bits the scheme parameters
	// must be rated for.
	SecurityLevel int
	// Seed keys the session's randomness source, which key generation and
	// every encryption consume in order. Identical seeds yield identical
	// key material and an identical transport record, which is intended
	// for reproducible runs and must be avoided in production use. In
	// KeyLoad mode the seed is unused and encryption randomness comes
	// from system entropy.
	Seed []uint32
	// OperandA and OperandB are the two private inputs whose encrypted
	// sum the evaluating party computes.
	OperandA int32
	OperandB int32

	KeyMode        KeyMode
	SecretKeyPath  string
	CloudKeyPath   string
	ExportCloudKey bool

	// TransportOutPath receives the encrypted operand record. The file is
	// written atomically: it either holds the full record or is absent.
	TransportOutPath string
}

// DefaultConfig mirrors the reference flow: 110-bit security, the fixed
// demo seed, both operands set to 2^30-1 and the conventional file names.
func DefaultConfig() Config {
	return Config{
		SecurityLevel:    110,
		Seed:             []uint32{314, 1592, 657},
		OperandA:         1073741823,
		OperandB:         1073741823,
		KeyMode:          KeyGenerate,
		SecretKeyPath:    "secret.key",
		CloudKeyPath:     "cloud.key",
		TransportOutPath: "cloud.data",
	}
}
