package lwe

// Encoder maps a plaintext residue and an error term onto the torus:
// Encode(m, e) = (q/(2p))*m + e mod q.
type Encoder struct {
	params Parameters
}

func NewEncoder(params Parameters) *Encoder {
	return &Encoder{params: params}
}

func (ecd *Encoder) Encode(m uint64, e int64) uint64 {
	q := ecd.params.Q()
	p := ecd.params.P()

	err := ((e % int64(q)) + int64(q)) % int64(q) // positive residue of the error
	return ((q/(2*p))*(m%p) + uint64(err)) & ecd.params.Mask()
}
