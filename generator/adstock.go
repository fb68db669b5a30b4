package generator

// Adstock applies geometric carry-over: out[0] = spend[0] and
// out[t] = spend[t] + alpha*out[t-1]. The recurrence runs left to right.
func Adstock(spend []float64, alpha float64) []float64 {
	out := make([]float64, len(spend))
	for t, v := range spend {
		if t == 0 {
			out[t] = v
			continue
		}
		out[t] = v + alpha*out[t-1]
	}
	return out
}
