package market

import (
	"math/rand"
	"time"
)

// Synthetic generates n daily bars following a seeded random walk with a
// slight upward bias. Deterministic for a given seed, so tests and local runs
// see the same history.
func Synthetic(symbol string, n int, seed int64) []Bar {
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	bars := make([]Bar, 0, n)
	price := 100.0
	for i := 0; i < n; i++ {
		change := -0.02 + rng.Float64()*0.05
		price *= 1 + change
		close := price
		high := close * (1 + rng.Float64()*0.02)
		low := close * (1 - rng.Float64()*0.02)
		open := close * (0.99 + rng.Float64()*0.02)
		bars = append(bars, Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: float64(1_000_000 + rng.Intn(9_000_000)),
		})
	}
	return bars
}

// Trending generates n daily bars that drift by dailyDrift (fractional, may be
// negative) with small seeded noise. Used to script clear up/down regimes.
func Trending(n int, startPrice, dailyDrift float64, seed int64) []Bar {
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	bars := make([]Bar, 0, n)
	price := startPrice
	for i := 0; i < n; i++ {
		price *= 1 + dailyDrift + (rng.Float64()-0.5)*0.002
		close := price
		bars = append(bars, Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   close * 0.999,
			High:   close * 1.004,
			Low:    close * 0.996,
			Close:  close,
			Volume: 1_000_000,
		})
	}
	return bars
}
