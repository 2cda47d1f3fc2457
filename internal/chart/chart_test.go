package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"stockfolio/internal/errors"
	"stockfolio/internal/market"
	"stockfolio/internal/model"
)

func TestRender_DataURI(t *testing.T) {
	series := market.MockSeries("AAPL")

	uri, err := Render("AAPL", series)

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	assert.Greater(t, len(uri), len("data:image/png;base64,"))
}

func TestRender_SingleEntrySeries(t *testing.T) {
	// a newly listed ticker can come back with one trading day
	series := model.TimeSeries{
		{Date: "2026-08-21", Close: "232.14"},
	}

	uri, err := Render("AAPL", series)

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestRender_MalformedClose(t *testing.T) {
	series := model.TimeSeries{
		{Date: "2026-08-21", Close: "232.14"},
		{Date: "2026-08-20", Close: "n/a"},
		{Date: "2026-08-19", Close: "230.05"},
	}

	uri, err := Render("AAPL", series)

	assert.ErrorIs(t, err, errors.ErrMalformedSeries)
	assert.Empty(t, uri)
}

func TestRender_EmptySeries(t *testing.T) {
	uri, err := Render("AAPL", nil)

	assert.ErrorIs(t, err, errors.ErrMalformedSeries)
	assert.Empty(t, uri)
}

func TestRender_UnparseableDatesStillChart(t *testing.T) {
	series := model.TimeSeries{
		{Date: "yesterday", Close: "101.00"},
		{Date: "before that", Close: "100.00"},
	}

	uri, err := Render("X", series)

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}
