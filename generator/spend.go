package generator

import "math/rand/v2"

// SimulateSpend draws one raw spend sequence per channel. Channels consume
// randomness in slice order: every draw of channel i happens before any draw
// of channel i+1.
func SimulateSpend(r *rand.Rand, weeks int, channels []ChannelConfig) [][]float64 {
	out := make([][]float64, len(channels))
	for i, ch := range channels {
		spend := drawSpend(r, weeks, ch.Spend)
		applyCampaign(spend, ch.Campaign)
		out[i] = spend
	}
	return out
}

func drawSpend(r *rand.Rand, weeks int, m SpendModel) []float64 {
	spend := make([]float64, weeks)
	for t := range spend {
		var v float64
		switch m.Distribution {
		case DistGamma:
			v = gamma(r, m.Shape, m.Scale)
		case DistNormal:
			v = normal(r, m.Mean, m.StdDev)
		}
		if v < m.Floor {
			v = m.Floor
		}
		spend[t] = v
	}
	return spend
}

// CampaignWindow returns the half-open index range [start, end) boosted by c
// in a sequence of the given length. The window is clamped to valid indices
// and is empty when the campaign is disabled or falls past the end.
func CampaignWindow(weeks int, c Campaign) (start, end int) {
	if c.Length <= 0 || c.StartDivisor <= 0 || weeks <= 0 {
		return 0, 0
	}
	start = weeks / c.StartDivisor
	end = start + c.Length
	if end > weeks {
		end = weeks
	}
	if start > end {
		start = end
	}
	return start, end
}

func applyCampaign(spend []float64, c Campaign) {
	start, end := CampaignWindow(len(spend), c)
	for t := start; t < end; t++ {
		spend[t] += c.Boost
	}
}
