// Package transport sequences encrypted bit vectors into the unframed
// record stream the evaluating party consumes. Writer and reader agree on
// the scheme parameters and the per-vector bit counts out-of-band; the
// stream itself carries no header, length prefix or checksum.
package transport

import (
	"bufio"
	"fmt"
	"io"

	"bitfhe/bits"
	"bitfhe/core/lwe"
)

// Writer encrypts bit vectors and appends one fixed-size ciphertext
// record per bit to the destination stream.
type Writer struct {
	w   *bufio.Writer
	enc *lwe.Encryptor
}

func NewWriter(w io.Writer, enc *lwe.Encryptor) *Writer {
	return &Writer{
		w:   bufio.NewWriter(w),
		enc: enc,
	}
}

// WriteRecord encrypts every bit of every vector, vector order preserved
// and LSB first within each vector, and writes each ciphertext
// immediately. Callers must Flush before closing the destination.
func (tw *Writer) WriteRecord(vectors ...bits.Vector) error {
	for vi, vec := range vectors {
		for bi, b := range vec {
			ct := tw.enc.EncryptNew(b)
			if _, err := ct.WriteTo(tw.w); err != nil {
				return fmt.Errorf("transport: writing vector %d bit %d: %w", vi, bi, err)
			}
		}
	}
	return nil
}

// Flush drains the buffered records to the destination stream.
func (tw *Writer) Flush() error {
	if err := tw.w.Flush(); err != nil {
		return fmt.Errorf("transport: flush: %w", err)
	}
	return nil
}

// Reader regroups a record stream into its constituent ciphertext
// vectors. Ciphertexts stay encrypted: decryption is a separate, explicit
// step requiring the secret key, which the evaluating party never holds.
type Reader struct {
	r      *bufio.Reader
	params lwe.Parameters
}

func NewReader(r io.Reader, params lwe.Parameters) *Reader {
	return &Reader{
		r:      bufio.NewReader(r),
		params: params,
	}
}

// ReadRecord reads len(bitCounts) vectors of ciphertexts, the i-th
// holding bitCounts[i] records. A stream exhausted mid-record surfaces
// the codec's lwe.ErrTruncatedStream.
func (tr *Reader) ReadRecord(bitCounts ...int) ([][]*lwe.Ciphertext, error) {
	vectors := make([][]*lwe.Ciphertext, len(bitCounts))
	for vi, count := range bitCounts {
		vectors[vi] = make([]*lwe.Ciphertext, count)
		for bi := 0; bi < count; bi++ {
			ct := lwe.NewCiphertext(int(tr.params.N()))
			if _, err := ct.ReadFrom(tr.r); err != nil {
				return nil, fmt.Errorf("transport: reading vector %d bit %d: %w", vi, bi, err)
			}
			vectors[vi][bi] = ct
		}
	}
	return vectors, nil
}

// DecryptRecord is the client-side inverse of WriteRecord: it decrypts
// every ciphertext of every vector under dec, preserving grouping.
func DecryptRecord(dec *lwe.Decryptor, vectors [][]*lwe.Ciphertext) []bits.Vector {
	out := make([]bits.Vector, len(vectors))
	for vi, cts := range vectors {
		out[vi] = make(bits.Vector, len(cts))
		for bi, ct := range cts {
			out[vi][bi] = dec.DecryptNew(ct)
		}
	}
	return out
}
