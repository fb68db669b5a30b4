package generator

// Hill is the Michaelis-Menten response x/(x+k). Hill(k, k) == 0.5.
// The result stays below 1 only while x+k keeps k's contribution; once
// x exceeds roughly k*2^53 the sum rounds to x and Hill returns exactly 1.
func Hill(x, k float64) float64 {
	return x / (x + k)
}

// Saturate maps an adstocked sequence to the fraction of maximum response.
// For non-negative input and k > 0 every value lies in [0, 1), subject to
// the rounding limit documented on Hill.
func Saturate(adstocked []float64, k float64) []float64 {
	out := make([]float64, len(adstocked))
	for t, v := range adstocked {
		out[t] = Hill(v, k)
	}
	return out
}
