// Package parsing - Monthly-USD normalization
package parsing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pricing-truth/core/types"
)

// Normalization method tags
const (
	MethodFull   = "full_normalization"
	MethodFailed = "failed"
)

// Cadence conversion factors. Day and week use average-month multipliers,
// not calendar-exact ones; the approximation is intentional.
var (
	monthsPerYear = decimal.NewFromInt(12)
	daysFactor    = decimal.NewFromInt(30)
	weeksFactor   = decimal.RequireFromString("4.33")
)

// NormalizeToMonthlyUSD converts a parsed price to a monthly-USD figure.
//
// Normalization happens only when ALL required facts are available: a known
// recurring cadence, an FX rate for the currency (USD is always 1.0), and a
// seat count when the price is per-seat. Every missing fact produces its own
// gap; any gap means the result carries the 0.0 sentinel and must not be
// read as a price.
func NormalizeToMonthlyUSD(parsed types.ParsedPrice, fxRates map[string]float64, seatCount int) types.NormalizedPrice {
	if fxRates == nil {
		fxRates = defaultFXRates
	}

	var gaps []string

	switch parsed.Cadence {
	case types.CadenceUnknown:
		gaps = append(gaps, "Missing cadence (month/year unknown)")
	case types.CadenceOneTime:
		gaps = append(gaps, "One-time price has no recurring cadence to normalize")
	}

	rate, haveRate := fxRates[parsed.Currency]
	if parsed.Currency == "USD" {
		rate, haveRate = 1.0, true
	}
	if !haveRate {
		gaps = append(gaps, fmt.Sprintf("Missing FX rate for %s", parsed.Currency))
	}

	if parsed.PerSeat && seatCount <= 0 {
		gaps = append(gaps, "Per-seat pricing but seat count not provided")
	}

	if len(gaps) > 0 {
		return types.NormalizedPrice{
			MonthlyUSD: 0.0,
			Original:   parsed,
			Method:     MethodFailed,
			Gaps:       gaps,
		}
	}

	amount := decimal.NewFromFloat(parsed.Amount).Mul(decimal.NewFromFloat(rate))

	switch parsed.Cadence {
	case types.CadenceYear:
		amount = amount.Div(monthsPerYear)
	case types.CadenceDay:
		amount = amount.Mul(daysFactor)
	case types.CadenceWeek:
		amount = amount.Mul(weeksFactor)
	case types.CadenceMonth:
		// already monthly
	}

	if parsed.PerSeat {
		amount = amount.Mul(decimal.NewFromInt(int64(seatCount)))
	}

	return types.NormalizedPrice{
		MonthlyUSD: amount.Round(2).InexactFloat64(),
		Original:   parsed,
		Method:     MethodFull,
		Gaps:       []string{},
	}
}
