package models

import "time"

// WeekLayout is the calendar format used for the week column in every sink.
const WeekLayout = "2006-01-02"

// ChannelSpend is the raw spend sequence of one media channel.
type ChannelSpend struct {
	Name  string
	Spend []float64
}

// Dataset is the generated weekly table: one calendar week per index, with
// every sequence positionally aligned to Weeks. It is read-only once built.
type Dataset struct {
	Seed     int64
	Weeks    []time.Time
	Channels []ChannelSpend
	Sales    []float64
}

// Row is one week of a Dataset, with Spend ordered like Dataset.Channels.
type Row struct {
	Week  time.Time
	Spend []float64
	Sales float64
}

// Len returns the number of weeks in the dataset.
func (d *Dataset) Len() int {
	return len(d.Weeks)
}

// Spend returns the spend sequence for the named channel, or nil.
func (d *Dataset) Spend(channel string) []float64 {
	for _, c := range d.Channels {
		if c.Name == channel {
			return c.Spend
		}
	}
	return nil
}

// SpendColumn is the tabular column name of a channel's spend.
func SpendColumn(channel string) string {
	return channel + "_spend"
}

// Columns returns the table header: week, one spend column per channel, sales.
func (d *Dataset) Columns() []string {
	cols := make([]string, 0, len(d.Channels)+2)
	cols = append(cols, "week")
	for _, c := range d.Channels {
		cols = append(cols, SpendColumn(c.Name))
	}
	return append(cols, "sales")
}

// Row returns week i as a Row. Spend is a fresh slice.
func (d *Dataset) Row(i int) Row {
	spend := make([]float64, len(d.Channels))
	for j, c := range d.Channels {
		spend[j] = c.Spend[i]
	}
	return Row{Week: d.Weeks[i], Spend: spend, Sales: d.Sales[i]}
}

// Rows returns all weeks in ascending order.
func (d *Dataset) Rows() []Row {
	rows := make([]Row, d.Len())
	for i := range rows {
		rows[i] = d.Row(i)
	}
	return rows
}
