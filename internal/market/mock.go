package market

import (
	"hash/fnv"
	"math/rand"
	"strconv"
	"time"

	"stockfolio/internal/model"
)

const mockDays = 30

// MockSeries generates a deterministic placeholder series for ticker: the same
// ticker always yields the same prices within a process. Closing prices follow
// a random walk around a base price derived from the ticker itself.
func MockSeries(ticker string) model.TimeSeries {
	h := fnv.New64a()
	h.Write([]byte(ticker))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	base := 20.0 + rng.Float64()*480.0
	price := base

	today := time.Now().Truncate(24 * time.Hour)
	series := make(model.TimeSeries, 0, mockDays)
	for i := 0; i < mockDays; i++ {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")

		open := price * (1 + (rng.Float64()-0.5)*0.01)
		high := price * (1 + rng.Float64()*0.02)
		low := price * (1 - rng.Float64()*0.02)
		volume := 100000 + rng.Intn(9900000)

		series = append(series, model.SeriesEntry{
			Date:   date,
			Open:   formatPrice(open),
			High:   formatPrice(high),
			Low:    formatPrice(low),
			Close:  formatPrice(price),
			Volume: strconv.Itoa(volume),
		})

		// walk backwards in time, up to ±2% per day
		price *= 1 + (rng.Float64()-0.5)*0.04
	}
	return series
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
