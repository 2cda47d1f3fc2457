package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"stockfolio/internal/errors"
	"stockfolio/internal/model"
)

const dateLayout = "2006-01-02"

// Render plots the closing prices of a daily series as a line chart with point
// markers and returns the PNG encoded as a data URI, ready to embed in an
// <img> element. A close value that does not parse as a float fails the whole
// render with ErrMalformedSeries; no partial output is produced.
func Render(ticker string, series model.TimeSeries) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("%w: empty series", errors.ErrMalformedSeries)
	}

	closes := make([]float64, 0, len(series))
	dates := make([]time.Time, 0, len(series))
	datesOK := true
	for _, entry := range series {
		closePrice, err := strconv.ParseFloat(entry.Close, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %q on %s", errors.ErrMalformedSeries, entry.Close, entry.Date)
		}
		closes = append(closes, closePrice)

		date, err := time.Parse(dateLayout, entry.Date)
		if err != nil {
			datesOK = false
		}
		dates = append(dates, date)
	}

	// a single-point series still charts: pad with a synthetic neighbor so
	// the x-range is not degenerate
	if len(closes) == 1 {
		closes = append(closes, closes[0])
		dates = append(dates, dates[0].Add(-24*time.Hour))
	}

	// series arrives newest first; plot chronologically
	reverse(closes)
	reverse(dates)

	markers := gochart.Style{
		StrokeColor: gochart.ColorBlue,
		DotColor:    gochart.ColorBlue,
		DotWidth:    3,
	}

	var plotted gochart.Series
	if datesOK {
		plotted = gochart.TimeSeries{
			Name:    ticker,
			Style:   markers,
			XValues: dates,
			YValues: closes,
		}
	} else {
		// unparseable date labels: plot by series position instead
		xs := make([]float64, len(closes))
		for i := range xs {
			xs[i] = float64(i)
		}
		plotted = gochart.ContinuousSeries{
			Name:    ticker,
			Style:   markers,
			XValues: xs,
			YValues: closes,
		}
	}

	graph := gochart.Chart{
		Title:  fmt.Sprintf("Stock Prices for %s", ticker),
		Width:  1000,
		Height: 500,
		XAxis: gochart.XAxis{
			Name: "Date",
			TickStyle: gochart.Style{
				TextRotationDegrees: 45,
			},
		},
		YAxis: gochart.YAxis{
			Name: "Close Price",
		},
		Series: []gochart.Series{plotted},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
