package lwe

import (
	"encoding/binary"
	"fmt"

	"github.com/tuneinsight/lattigo/v5/ring"
	"github.com/tuneinsight/lattigo/v5/utils/sampling"
)

// Encryptor encrypts single bits under a binary LWE secret. Encryption is
// probabilistic: every call draws a fresh mask and error from the
// encryptor's PRNG, so identical plaintexts yield unlinkable ciphertexts
// unless the source is deliberately re-keyed.
type Encryptor struct {
	params   Parameters
	skCoeffs []uint64
	prng     sampling.PRNG
	encoder  *Encoder
	errgen   *ErrGen
	buf      []byte
}

func NewEncryptor(params Parameters, sk *SecretKey, prng sampling.PRNG) (*Encryptor, error) {
	if !params.Equal(sk.Params()) {
		return nil, fmt.Errorf("lwe: secret key parameters do not match encryptor parameters")
	}
	if uint64(len(sk.Value)) != params.N() {
		return nil, fmt.Errorf("lwe: secret key has %d coefficients, parameters dictate %d", len(sk.Value), params.N())
	}
	return &Encryptor{
		params:   params,
		skCoeffs: sk.Value,
		prng:     prng,
		encoder:  NewEncoder(params),
		errgen:   NewErrorGenerator(prng, params.Sigma()),
		buf:      make([]byte, 8*params.N()),
	}, nil
}

// EncryptNew encrypts the bit m: samples a uniform mask a, a gaussian
// error e, and returns (a, <a,s> + Encode(m, e) mod q).
func (enc *Encryptor) EncryptNew(m uint64) (ct *Ciphertext) {

	params := enc.params
	q := params.Q()
	n := int(params.N())

	if _, err := enc.prng.Read(enc.buf); err != nil {
		panic(err)
	}

	ct = NewCiphertext(n)
	var dotProd uint64
	for i := 0; i < n; i++ {
		ai := binary.LittleEndian.Uint64(enc.buf[8*i:]) & params.Mask()
		ct.A[i] = ai
		if enc.skCoeffs[i] != 0 {
			dotProd = ring.CRed(dotProd+ai, q)
		}
	}

	ct.B = ring.CRed(dotProd+enc.encoder.Encode(m, enc.errgen.GenErr()), q)
	return
}
