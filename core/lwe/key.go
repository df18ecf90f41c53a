package lwe

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tuneinsight/lattigo/v5/utils/buffer"
	"github.com/tuneinsight/lattigo/v5/utils/structs"
)

// SecretKey is the binary LWE secret. It never leaves the client; the
// evaluating party only ever sees the CloudKey.
type SecretKey struct {
	params Parameters
	Value  []uint64
}

func NewSecretKey(params Parameters) *SecretKey {
	return &SecretKey{
		params: params,
		Value:  make([]uint64, params.N()),
	}
}

func (sk SecretKey) Params() Parameters {
	return sk.params
}

// Zero wipes the key coefficients in place. The key is unusable afterwards.
func (sk *SecretKey) Zero() {
	for i := range sk.Value {
		sk.Value[i] = 0
	}
}

// BinarySize returns the serialized size of the key in bytes, parameter
// tag included.
func (sk SecretKey) BinarySize() int {
	return tagBinarySize + 8*len(sk.Value)
}

// WriteTo writes the parameter tag followed by the key coefficients.
func (sk SecretKey) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		if inc, err = sk.params.writeTag(w); err != nil {
			return n + inc, fmt.Errorf("writing parameter tag: %w", err)
		}

		n += inc

		if inc, err = buffer.WriteUint64Slice(w, sk.Value); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteUint64Slice: %w", err)
		}

		n += inc

		return n, w.Flush()

	default:
		return sk.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads a key previously written by WriteTo. The receiver must
// be constructed (NewSecretKey) under the Parameters the key is expected
// to match; a truncated stream or a mismatching tag yields
// ErrCorruptKeyFile.
func (sk *SecretKey) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64

		if inc, err = sk.params.readTag(r); err != nil {
			return n + inc, err
		}

		n += inc

		if inc, err = buffer.ReadUint64Slice(r, sk.Value); err != nil {
			return n + inc, fmt.Errorf("%w: reading key coefficients: %s", ErrCorruptKeyFile, err)
		}

		return n + inc, nil

	default:
		return sk.ReadFrom(bufio.NewReader(r))
	}
}

func (sk SecretKey) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(sk.BinarySize())
	_, err = sk.WriteTo(buf)
	return buf.Bytes(), err
}

func (sk *SecretKey) UnmarshalBinary(p []byte) (err error) {
	_, err = sk.ReadFrom(buffer.NewBuffer(p))
	return
}

// CloudKey is the evaluation key handed to the remote party: one LWE
// encryption of each secret coefficient, the material a gate evaluator
// needs for key switching. It does not permit decryption.
type CloudKey struct {
	params Parameters
	Value  structs.Vector[Ciphertext]
}

func NewCloudKey(params Parameters) *CloudKey {
	value := make(structs.Vector[Ciphertext], params.N())
	for i := range value {
		value[i] = *NewCiphertext(int(params.N()))
	}
	return &CloudKey{params: params, Value: value}
}

func (ck CloudKey) Params() Parameters {
	return ck.params
}

func (ck CloudKey) BinarySize() int {
	return tagBinarySize + ck.Value.BinarySize()
}

// WriteTo writes the parameter tag followed by the key-switching records.
func (ck CloudKey) WriteTo(w io.Writer) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:

		var inc int64

		if inc, err = ck.params.writeTag(w); err != nil {
			return n + inc, fmt.Errorf("writing parameter tag: %w", err)
		}

		n += inc

		if inc, err = ck.Value.WriteTo(w); err != nil {
			return n + inc, fmt.Errorf("structs.Vector.WriteTo: %w", err)
		}

		n += inc

		return n, w.Flush()

	default:
		return ck.WriteTo(bufio.NewWriter(w))
	}
}

// ReadFrom reads a cloud key previously written by WriteTo, checking the
// parameter tag and record count against the receiver's Parameters.
func (ck *CloudKey) ReadFrom(r io.Reader) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var inc int64

		if inc, err = ck.params.readTag(r); err != nil {
			return n + inc, err
		}

		n += inc

		var count uint64
		if inc, err = buffer.ReadUint64(r, &count); err != nil {
			return n + inc, fmt.Errorf("%w: reading record count: %s", ErrCorruptKeyFile, err)
		}

		n += inc

		if count != ck.params.N() {
			return n, fmt.Errorf("%w: cloud key holds %d records, parameters dictate %d", ErrCorruptKeyFile, count, ck.params.N())
		}

		for i := range ck.Value {
			if inc, err = ck.Value[i].ReadFrom(r); err != nil {
				return n + inc, fmt.Errorf("%w: reading record %d: %s", ErrCorruptKeyFile, i, err)
			}
			n += inc
		}

		return n, nil

	default:
		return ck.ReadFrom(bufio.NewReader(r))
	}
}

func (ck CloudKey) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(ck.BinarySize())
	_, err = ck.WriteTo(buf)
	return buf.Bytes(), err
}

func (ck *CloudKey) UnmarshalBinary(p []byte) (err error) {
	_, err = ck.ReadFrom(buffer.NewBuffer(p))
	return
}
