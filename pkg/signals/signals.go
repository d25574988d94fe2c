// Package signals fetches the market quotes and economic series
// observations that ride along with curated editions as context.
package signals

// Quote is one market snapshot from a quote provider.
type Quote struct {
	Symbol        string
	Current       float64
	PercentChange float64
	PreviousClose float64
}

// SeriesPoint is the latest usable observation of an economic series.
type SeriesPoint struct {
	SeriesID string
	Date     string
	Value    float64
}
