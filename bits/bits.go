// Package bits converts 32-bit integers to and from the LSB-first bit
// vectors the encryption layer consumes.
package bits

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned by FromBits when the vector does not hold
// exactly Width bits.
var ErrLengthMismatch = errors.New("bits: vector length mismatch")

// Width is the fixed operand width in bits. Both parties rely on it
// out-of-band: the transport record carries no framing.
const Width = 32

// Vector is an ordered sequence of 0/1 values, index 0 holding the least
// significant bit.
type Vector []uint64

// ToBits decomposes v into a Width-long vector, bit i = (v >> i) & 1.
// Total for all inputs, negative values included, under two's-complement
// extraction.
func ToBits(v int32) Vector {
	vec := make(Vector, Width)
	u := uint32(v)
	for i := range vec {
		vec[i] = uint64((u >> i) & 1)
	}
	return vec
}

// FromBits recomposes the integer a Width-long vector represents.
func FromBits(vec Vector) (int32, error) {
	if len(vec) != Width {
		return 0, fmt.Errorf("%w: got %d bits, want %d", ErrLengthMismatch, len(vec), Width)
	}
	var u uint32
	for i, b := range vec {
		u |= uint32(b&1) << i
	}
	return int32(u), nil
}
