package model

// SeriesEntry is one trading day's OHLCV data for a ticker. Values are kept
// verbatim as the provider sends them (decimal strings); consumers parse what
// they need.
type SeriesEntry struct {
	Date   string `json:"date"`
	Open   string `json:"open"`
	High   string `json:"high"`
	Low    string `json:"low"`
	Close  string `json:"close"`
	Volume string `json:"volume"`
}

// TimeSeries is a time-ordered daily price series, newest first.
type TimeSeries []SeriesEntry

// Latest returns the first entry, which is the most recent trading day.
func (ts TimeSeries) Latest() (SeriesEntry, bool) {
	if len(ts) == 0 {
		return SeriesEntry{}, false
	}
	return ts[0], true
}
