package lwe

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v5/ring"
)

// Decryptor recovers the plaintext bit of a ciphertext. The scheme cannot
// detect a wrong key: decrypting under a key other than the one used for
// encryption yields a plausible but wrong bit. Callers track the
// key/ciphertext pairing out-of-band.
type Decryptor struct {
	params   Parameters
	skCoeffs []uint64
	decoder  *Decoder
}

func NewDecryptor(params Parameters, sk *SecretKey) (*Decryptor, error) {
	if !params.Equal(sk.Params()) {
		return nil, fmt.Errorf("lwe: secret key parameters do not match decryptor parameters")
	}
	if uint64(len(sk.Value)) != params.N() {
		return nil, fmt.Errorf("lwe: secret key has %d coefficients, parameters dictate %d", len(sk.Value), params.N())
	}
	return &Decryptor{
		params:   params,
		skCoeffs: sk.Value,
		decoder:  NewDecoder(params),
	}, nil
}

// DecryptNew returns Decode(b - <a,s> mod q).
func (dec *Decryptor) DecryptNew(ct *Ciphertext) uint64 {

	q := dec.params.Q()
	n := int(dec.params.N())

	// deserialized words are masked down: the wire format does not
	// guarantee reduced residues
	mask := dec.params.Mask()

	var dotProd uint64
	for i := 0; i < n; i++ {
		if dec.skCoeffs[i] != 0 {
			dotProd = ring.CRed(dotProd+(ct.A[i]&mask), q)
		}
	}

	phase := ring.CRed((ct.B&mask)+q-dotProd, q)
	return dec.decoder.Decode(phase)
}
