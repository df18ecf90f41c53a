package lwe

import (
	"encoding/binary"
	"math"

	"github.com/tuneinsight/lattigo/v5/utils/sampling"
)

// ErrGen draws gaussian error terms from an explicit PRNG, so a keyed
// source makes the whole encryption transcript reproducible.
type ErrGen struct {
	prng  sampling.PRNG
	sigma float64
	buf   [16]byte
}

func NewErrorGenerator(prng sampling.PRNG, sigma float64) *ErrGen {
	return &ErrGen{prng: prng, sigma: sigma}
}

func (erg *ErrGen) GenErr() int64 {
	return int64(erg.normFloat64() * erg.sigma)
}

// normFloat64 samples a standard gaussian by the Box-Muller transform
// over two uniform draws from the PRNG.
func (erg *ErrGen) normFloat64() float64 {
	if _, err := erg.prng.Read(erg.buf[:]); err != nil {
		panic(err)
	}
	u1 := float64(binary.LittleEndian.Uint64(erg.buf[:8])>>11) / (1 << 53)
	u2 := float64(binary.LittleEndian.Uint64(erg.buf[8:])>>11) / (1 << 53)
	if u1 == 0 {
		u1 = 0x1p-53
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
