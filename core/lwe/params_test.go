package lwe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildParameters(t *testing.T) {
	for _, tc := range []struct {
		minLambda int
		wantN     uint64
	}{
		{minLambda: 1, wantN: 450},
		{minLambda: 80, wantN: 450},
		{minLambda: 81, wantN: 500},
		{minLambda: 110, wantN: 500},
		{minLambda: 111, wantN: 630},
		{minLambda: 128, wantN: 630},
	} {
		params, err := BuildParameters(tc.minLambda)
		require.NoError(t, err)
		require.Equal(t, tc.wantN, params.N())
		require.Equal(t, uint64(2), params.P())
		require.GreaterOrEqual(t, params.SecurityLevel(), tc.minLambda)
		require.Greater(t, params.Sigma(), 0.0)
	}
}

func TestBuildParametersUnsupportedLevel(t *testing.T) {
	for _, minLambda := range []int{-1, 0, 129, 256} {
		_, err := BuildParameters(minLambda)
		require.ErrorIs(t, err, ErrUnsupportedSecurityLevel)
	}
}

func TestNewParametersRejectsBadModulus(t *testing.T) {
	_, err := NewParameters(500, 1000, 2, 100)
	require.Error(t, err)

	_, err = NewParameters(500, 0, 2, 100)
	require.Error(t, err)

	_, err = NewParameters(500, 1<<32, 1<<31, 100)
	require.Error(t, err)
}

func TestParametersEqual(t *testing.T) {
	p1, err := BuildParameters(110)
	require.NoError(t, err)
	p2, err := BuildParameters(110)
	require.NoError(t, err)
	p3, err := BuildParameters(128)
	require.NoError(t, err)

	require.True(t, p1.Equal(p2))
	require.False(t, p1.Equal(p3))
}

func TestCiphertextBinarySize(t *testing.T) {
	params, err := BuildParameters(110)
	require.NoError(t, err)
	require.Equal(t, 8*(500+1), params.CiphertextBinarySize())

	ct := NewCiphertext(int(params.N()))
	require.Equal(t, params.CiphertextBinarySize(), ct.BinarySize())
}
