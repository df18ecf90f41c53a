package lwe

import (
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/lattigo/v5/utils/sampling"
)

var testSeed = []uint32{314, 1592, 657}

func testSetup(t *testing.T) (Parameters, *KeyGenerator, *SecretKey) {
	t.Helper()

	params, err := BuildParameters(110)
	require.NoError(t, err)

	kgen, err := NewKeyGeneratorFromSeed(params, testSeed)
	require.NoError(t, err)

	return params, kgen, kgen.GenSecretKeyNew()
}

func newTestEncryptor(t *testing.T, params Parameters, sk *SecretKey, key byte) *Encryptor {
	t.Helper()

	prng, err := sampling.NewKeyedPRNG([]byte{key})
	require.NoError(t, err)

	enc, err := NewEncryptor(params, sk, prng)
	require.NoError(t, err)

	return enc
}

func TestEncryptDecrypt(t *testing.T) {
	params, _, sk := testSetup(t)

	enc := newTestEncryptor(t, params, sk, 0x42)
	dec, err := NewDecryptor(params, sk)
	require.NoError(t, err)

	for i := 0; i < 128; i++ {
		for _, m := range []uint64{0, 1} {
			ct := enc.EncryptNew(m)
			require.Equal(t, m, dec.DecryptNew(ct))
		}
	}
}

func TestEncryptionIsProbabilistic(t *testing.T) {
	params, _, sk := testSetup(t)
	enc := newTestEncryptor(t, params, sk, 0x42)

	ct1, err := enc.EncryptNew(1).MarshalBinary()
	require.NoError(t, err)
	ct2, err := enc.EncryptNew(1).MarshalBinary()
	require.NoError(t, err)

	require.NotEqual(t, ct1, ct2)
}

func TestKeyGenerationIsDeterministic(t *testing.T) {
	params, _, sk1 := testSetup(t)

	kgen2, err := NewKeyGeneratorFromSeed(params, testSeed)
	require.NoError(t, err)
	sk2 := kgen2.GenSecretKeyNew()

	require.Equal(t, sk1.Value, sk2.Value)

	kgen3, err := NewKeyGeneratorFromSeed(params, []uint32{1, 2, 3})
	require.NoError(t, err)
	require.NotEqual(t, sk1.Value, kgen3.GenSecretKeyNew().Value)
}

func TestSecretKeyRoundTrip(t *testing.T) {
	params, _, sk := testSetup(t)

	data, err := sk.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, sk.BinarySize(), len(data))

	loaded := NewSecretKey(params)
	require.NoError(t, loaded.UnmarshalBinary(data))
	require.Equal(t, sk.Value, loaded.Value)
}

func TestSecretKeyParameterMismatch(t *testing.T) {
	_, _, sk := testSetup(t)

	data, err := sk.MarshalBinary()
	require.NoError(t, err)

	other, err := BuildParameters(128)
	require.NoError(t, err)

	loaded := NewSecretKey(other)
	require.ErrorIs(t, loaded.UnmarshalBinary(data), ErrCorruptKeyFile)
}

func TestSecretKeyTruncated(t *testing.T) {
	params, _, sk := testSetup(t)

	data, err := sk.MarshalBinary()
	require.NoError(t, err)

	loaded := NewSecretKey(params)
	require.ErrorIs(t, loaded.UnmarshalBinary(data[:len(data)-16]), ErrCorruptKeyFile)
	require.ErrorIs(t, loaded.UnmarshalBinary(data[:8]), ErrCorruptKeyFile)
}

func TestCiphertextTruncatedStream(t *testing.T) {
	params, _, sk := testSetup(t)
	enc := newTestEncryptor(t, params, sk, 0x42)

	data, err := enc.EncryptNew(1).MarshalBinary()
	require.NoError(t, err)

	ct := NewCiphertext(int(params.N()))
	require.ErrorIs(t, ct.UnmarshalBinary(data[:len(data)-8]), ErrTruncatedStream)
	require.ErrorIs(t, ct.UnmarshalBinary(nil), ErrTruncatedStream)
}

func TestCiphertextRoundTrip(t *testing.T) {
	params, _, sk := testSetup(t)
	enc := newTestEncryptor(t, params, sk, 0x42)

	ct := enc.EncryptNew(1)
	data, err := ct.MarshalBinary()
	require.NoError(t, err)

	loaded := NewCiphertext(int(params.N()))
	require.NoError(t, loaded.UnmarshalBinary(data))
	require.Equal(t, ct.A, loaded.A)
	require.Equal(t, ct.B, loaded.B)
}

func TestDecryptorRejectsMismatchedKey(t *testing.T) {
	params, _, sk := testSetup(t)

	other, err := BuildParameters(128)
	require.NoError(t, err)

	_, err = NewDecryptor(other, sk)
	require.Error(t, err)

	prng, err := sampling.NewKeyedPRNG(nil)
	require.NoError(t, err)
	_, err = NewEncryptor(other, sk, prng)
	require.Error(t, err)

	_, err = NewDecryptor(params, sk)
	require.NoError(t, err)
}

func TestCloudKeyDerivationIsPure(t *testing.T) {
	params, kgen, sk := testSetup(t)

	ck1, err := kgen.GenCloudKeyNew(sk)
	require.NoError(t, err)
	ck2, err := kgen.GenCloudKeyNew(sk)
	require.NoError(t, err)

	data1, err := ck1.MarshalBinary()
	require.NoError(t, err)
	data2, err := ck2.MarshalBinary()
	require.NoError(t, err)

	require.Equal(t, data1, data2)

	loaded := NewCloudKey(params)
	require.NoError(t, loaded.UnmarshalBinary(data1))
	require.Equal(t, ck1.Value, loaded.Value)
}

func TestCloudKeyParameterMismatch(t *testing.T) {
	_, kgen, sk := testSetup(t)

	ck, err := kgen.GenCloudKeyNew(sk)
	require.NoError(t, err)

	data, err := ck.MarshalBinary()
	require.NoError(t, err)

	other, err := BuildParameters(128)
	require.NoError(t, err)

	loaded := NewCloudKey(other)
	require.ErrorIs(t, loaded.UnmarshalBinary(data), ErrCorruptKeyFile)
}

func TestSecretKeyZero(t *testing.T) {
	_, _, sk := testSetup(t)

	var weight uint64
	for _, c := range sk.Value {
		weight += c
	}
	require.NotZero(t, weight)

	sk.Zero()
	for _, c := range sk.Value {
		require.Zero(t, c)
	}
}

func TestErrGenDistribution(t *testing.T) {
	params, err := BuildParameters(110)
	require.NoError(t, err)

	prng, err := sampling.NewKeyedPRNG([]byte{0x13})
	require.NoError(t, err)

	erg := NewErrorGenerator(prng, params.Sigma())

	samples := make([]float64, 1<<13)
	for i := range samples {
		samples[i] = float64(erg.GenErr())
	}

	sd, err := stats.StandardDeviation(samples)
	require.NoError(t, err)
	require.InEpsilon(t, params.Sigma(), sd, 0.05)

	mean, err := stats.Mean(samples)
	require.NoError(t, err)
	require.Less(t, math.Abs(mean), 4*params.Sigma()/math.Sqrt(float64(len(samples))))
}
