package bits

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToBitsLSBFirst(t *testing.T) {
	vec := ToBits(6)
	require.Len(t, vec, Width)
	require.Equal(t, Vector{0, 1, 1}, vec[:3])
	for _, b := range vec[3:] {
		require.Zero(t, b)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 2, 6, 1073741823, math.MaxInt32, math.MinInt32}

	r := rand.New(rand.NewSource(0))
	for i := 0; i < 1000; i++ {
		values = append(values, int32(r.Uint32()))
	}

	for _, v := range values {
		got, err := FromBits(ToBits(v))
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestNegativeTwosComplement(t *testing.T) {
	vec := ToBits(-1)
	for _, b := range vec {
		require.Equal(t, uint64(1), b)
	}
}

func TestFromBitsLengthMismatch(t *testing.T) {
	_, err := FromBits(make(Vector, Width-1))
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = FromBits(make(Vector, Width+1))
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = FromBits(nil)
	require.ErrorIs(t, err, ErrLengthMismatch)
}
