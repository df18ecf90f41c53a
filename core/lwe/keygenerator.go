package lwe

import (
	"encoding/binary"
	"fmt"

	"github.com/tuneinsight/lattigo/v5/utils/sampling"
	"golang.org/x/crypto/blake2b"
)

// cloudKeyDomain separates the cloud-key XOF from any other use of the
// secret key bytes.
const cloudKeyDomain = "bitfhe/cloud-key/v1"

// KeyGenerator derives key material from an explicit randomness source.
// Two generators built over identically keyed PRNGs produce byte-identical
// keys, which is the contract reproducible tests rely on.
type KeyGenerator struct {
	params Parameters
	prng   sampling.PRNG
}

func NewKeyGenerator(params Parameters, prng sampling.PRNG) *KeyGenerator {
	return &KeyGenerator{params: params, prng: prng}
}

// NewKeyGeneratorFromSeed keys the generator's XOF from the seed words.
func NewKeyGeneratorFromSeed(params Parameters, seed []uint32) (*KeyGenerator, error) {
	prng, err := sampling.NewKeyedPRNG(SeedKey(seed))
	if err != nil {
		return nil, fmt.Errorf("sampling.NewKeyedPRNG: %w", err)
	}
	return NewKeyGenerator(params, prng), nil
}

// SeedKey encodes seed words into PRNG key bytes, little-endian.
func SeedKey(seed []uint32) []byte {
	key := make([]byte, 4*len(seed))
	for i, w := range seed {
		binary.LittleEndian.PutUint32(key[4*i:], w)
	}
	return key
}

// GenSecretKeyNew samples a fresh binary secret from the generator's PRNG.
func (kgen *KeyGenerator) GenSecretKeyNew() (sk *SecretKey) {
	sk = NewSecretKey(kgen.params)

	bytes := make([]byte, kgen.params.N())
	if _, err := kgen.prng.Read(bytes); err != nil {
		panic(err)
	}
	for i := range sk.Value {
		sk.Value[i] = uint64(bytes[i] & 1)
	}
	return
}

// GenCloudKeyNew derives the evaluation key from sk. The derivation is
// pure: all encryption randomness comes from an XOF keyed by the secret
// key bytes under a fixed domain tag, so the same secret always yields
// the same cloud key.
func (kgen *KeyGenerator) GenCloudKeyNew(sk *SecretKey) (ck *CloudKey, err error) {
	if uint64(len(sk.Value)) != kgen.params.N() {
		return nil, fmt.Errorf("lwe: secret key dimension %d does not match parameters dimension %d", len(sk.Value), kgen.params.N())
	}

	h, err := blake2b.New256([]byte(cloudKeyDomain))
	if err != nil {
		return nil, fmt.Errorf("blake2b.New256: %w", err)
	}
	skBytes := make([]byte, 8*len(sk.Value))
	for i, c := range sk.Value {
		binary.LittleEndian.PutUint64(skBytes[8*i:], c)
	}
	h.Write(skBytes)

	prng, err := sampling.NewKeyedPRNG(h.Sum(nil))
	if err != nil {
		return nil, fmt.Errorf("sampling.NewKeyedPRNG: %w", err)
	}

	enc, err := NewEncryptor(kgen.params, sk, prng)
	if err != nil {
		return nil, err
	}

	ck = NewCloudKey(kgen.params)
	for i, c := range sk.Value {
		ck.Value[i] = *enc.EncryptNew(c)
	}
	return ck, nil
}
