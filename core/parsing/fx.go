// Package parsing - Static FX rate table
package parsing

// defaultFXRates are the built-in currency -> USD multipliers used when the
// caller supplies no table. Rates are static by design; there is no
// real-time FX fetching anywhere in the pipeline.
var defaultFXRates = map[string]float64{
	"USD": 1.0,
	"EUR": 1.1,
	"GBP": 1.25,
	"JPY": 0.0067,
	"INR": 0.012,
}

// DefaultFXRates returns a copy of the built-in FX rate table.
func DefaultFXRates() map[string]float64 {
	rates := make(map[string]float64, len(defaultFXRates))
	for currency, rate := range defaultFXRates {
		rates[currency] = rate
	}
	return rates
}
