package lwe

// Decoder rounds a torus value back to its plaintext residue. The q/(4p)
// offset recenters the error before the division, so any error of
// magnitude below q/(4p) decodes exactly.
type Decoder struct {
	params Parameters
}

func NewDecoder(params Parameters) *Decoder {
	return &Decoder{params: params}
}

func (dcd *Decoder) Decode(m uint64) uint64 {
	q := dcd.params.Q()
	p := dcd.params.P()

	return (((m + q/(4*p)) & dcd.params.Mask()) / (q / (2 * p))) % p
}
