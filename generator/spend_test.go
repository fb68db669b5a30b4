package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignWindow(t *testing.T) {
	boost := Campaign{StartDivisor: 3, Length: 10, Boost: 5000}

	tests := []struct {
		name      string
		weeks     int
		c         Campaign
		wantStart int
		wantEnd   int
	}{
		{"reference run", 156, boost, 52, 62},
		{"exact fit", 30, boost, 10, 20},
		{"clamped tail", 12, boost, 4, 12},
		{"short series", 9, boost, 3, 9},
		{"single week", 1, boost, 0, 1},
		{"disabled", 156, Campaign{}, 0, 0},
		{"zero weeks", 0, boost, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e := CampaignWindow(tt.weeks, tt.c)
			assert.Equal(t, tt.wantStart, s)
			assert.Equal(t, tt.wantEnd, e)
		})
	}
}

func TestSimulateSpendFloors(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(0); seed < 20; seed++ {
		spend := SimulateSpend(NewRand(seed), 156, cfg.Channels)
		require.Len(t, spend, 2)
		for _, v := range spend[0] {
			require.GreaterOrEqual(t, v, 0.0, "tv spend, seed %d", seed)
		}
		for _, v := range spend[1] {
			require.GreaterOrEqual(t, v, 500.0, "search spend, seed %d", seed)
		}
	}
}

func TestSimulateSpendFloorClampsToExactValue(t *testing.T) {
	ch := []ChannelConfig{{
		Name:  "search",
		Spend: SpendModel{Distribution: DistNormal, Mean: 0, StdDev: 1, Floor: 500},
	}}
	spend := SimulateSpend(NewRand(3), 50, ch)
	for _, v := range spend[0] {
		require.Equal(t, 500.0, v)
	}
}

func TestSimulateSpendDrawOrder(t *testing.T) {
	base := DefaultConfig()
	changed := DefaultConfig()
	changed.Channels[1].Spend.Mean = 9000

	a := SimulateSpend(NewRand(42), 60, base.Channels)
	b := SimulateSpend(NewRand(42), 60, changed.Channels)

	// Search parameters never affect TV, which draws first.
	require.Equal(t, a[0], b[0])
	require.NotEqual(t, a[1], b[1])
}
