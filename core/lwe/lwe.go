// Package lwe implements the bit-level LWE scheme used by the client:
// parameter selection, seeded key generation, per-bit probabilistic
// encryption and the fixed-size binary record format exchanged with the
// evaluating party.
package lwe

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tuneinsight/lattigo/v5/utils/buffer"
)

// Ciphertext is the LWE encryption of a single bit: b - <a,s> = Δm + e.
type Ciphertext struct {
	A []uint64
	B uint64
}

func NewCiphertext(n int) (ct *Ciphertext) {
	return &Ciphertext{
		A: make([]uint64, n),
		B: 0,
	}
}

// BinarySize returns the serialized size of the ciphertext in bytes.
func (ct Ciphertext) BinarySize() int {
	return 8 * (len(ct.A) + 1)
}

// WriteTo writes the ciphertext on w as len(A)+1 little-endian uint64
// words, mask first. No length prefix is written: the record size is
// fixed by the Parameters both parties agreed on.
func (ct Ciphertext) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		if inc, err = buffer.WriteUint64Slice(w, ct.A); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteUint64Slice: %w", err)
		}

		n += inc

		if inc, err = buffer.WriteUint64(w, ct.B); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteUint64: %w", err)
		}

		n += inc

		return n, w.Flush()

	default:
		return ct.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads a ciphertext record from r. The mask length must be
// preallocated (NewCiphertext) to the dimension of the agreed Parameters.
// A stream holding fewer bytes than one full record yields
// ErrTruncatedStream and leaves no partially valid ciphertext behind.
func (ct *Ciphertext) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		if ct == nil || len(ct.A) == 0 {
			return 0, fmt.Errorf("lwe: cannot ReadFrom: receiver is nil or has zero dimension")
		}

		var inc int64

		if inc, err = buffer.ReadUint64Slice(r, ct.A); err != nil {
			return n + inc, fmt.Errorf("%w: %s", ErrTruncatedStream, err)
		}

		n += inc

		if inc, err = buffer.ReadUint64(r, &ct.B); err != nil {
			return n + inc, fmt.Errorf("%w: %s", ErrTruncatedStream, err)
		}

		return n + inc, nil

	default:
		return ct.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the ciphertext into a newly allocated byte slice.
func (ct Ciphertext) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(ct.BinarySize())
	_, err = ct.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary.
func (ct *Ciphertext) UnmarshalBinary(p []byte) (err error) {
	_, err = ct.ReadFrom(buffer.NewBuffer(p))
	return
}
