package generator

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// pcgStream fixes the PCG increment so the seed alone selects the sequence.
const pcgStream = 0x9e3779b97f4a7c15

// NewRand returns the single random source of one generation run.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), pcgStream))
}

// normal draws from Normal(mean, stdDev) using r as the source.
func normal(r *rand.Rand, mean, stdDev float64) float64 {
	return distuv.Normal{Mu: mean, Sigma: stdDev, Src: r}.Rand()
}

// gamma draws from Gamma(shape, scale). distuv parameterises by rate.
func gamma(r *rand.Rand, shape, scale float64) float64 {
	return distuv.Gamma{Alpha: shape, Beta: 1 / scale, Src: r}.Rand()
}
