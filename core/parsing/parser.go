// Package parsing provides price parsing and monthly-USD normalization.
// Parsing only succeeds on explicitly stated amounts; nothing is guessed
// or inferred, and every failed normalization reports the specific missing
// facts as gaps.
package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"pricing-truth/core/types"
)

// currencySymbols maps currency symbols to ISO codes. Checked in a fixed
// order so the first recognized symbol in the text wins.
var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"₹", "INR"},
}

var (
	// numberTokenRe captures the first maximal digit/separator run in a text.
	numberTokenRe = regexp.MustCompile(`\d(?:[\d.,]*\d)?`)

	// usGroupedRe matches US-style comma-grouped numbers (1,234.56)
	usGroupedRe = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+(?:\.\d+)?$`)

	// euGroupedRe matches EU-style dot-grouped numbers (1.234,56)
	euGroupedRe = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+(?:,\d+)?$`)

	// dotDecimalRe matches plain dot-decimal numbers (99.95)
	dotDecimalRe = regexp.MustCompile(`^\d+\.\d+$`)

	// commaDecimalRe matches bare comma-decimal numbers (99,95)
	commaDecimalRe = regexp.MustCompile(`^\d+,\d+$`)

	// integerRe matches bare integers
	integerRe = regexp.MustCompile(`^\d+$`)

	// currencyCodeRe matches explicit 3-letter currency code tokens
	currencyCodeRe = regexp.MustCompile(`(?i)\b(USD|EUR|GBP|JPY|INR)\b`)
)

// cadenceCues maps phrase cues to cadences, checked in order.
var cadenceCues = []struct {
	cues    []string
	cadence types.Cadence
}{
	{[]string{"/month", "per month", "/mo", "monthly"}, types.CadenceMonth},
	{[]string{"/year", "per year", "/yr", "yearly", "annually"}, types.CadenceYear},
	{[]string{"/day", "per day", "daily"}, types.CadenceDay},
	{[]string{"/week", "per week", "weekly"}, types.CadenceWeek},
	{[]string{"one-time", "one time", "lifetime"}, types.CadenceOneTime},
}

// perSeatCues mark per-seat/per-user/per-license pricing.
var perSeatCues = []string{"per seat", "/seat", "per user", "/user", "per license"}

// ParsePrice parses a price expression into amount/currency/cadence/per-seat
// structure. Returns nil when no positive numeric amount can be extracted.
//
// Amounts are tried US-style first (comma thousands, dot decimal), then
// EU-style (dot thousands, comma decimal), then as a bare number. Currency
// comes from the first recognized symbol, else an explicit code token, else
// defaults to USD.
func ParsePrice(text string) *types.ParsedPrice {
	return ParsePriceInContext(text, "")
}

// ParsePriceInContext parses like ParsePrice but, when the price text itself
// carries no cadence cue, falls back to detecting cadence in the surrounding
// context string. Cadence detected in the text always takes precedence.
func ParsePriceInContext(text, context string) *types.ParsedPrice {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	amount, ok := parseAmount(text)
	if !ok || amount <= 0 {
		return nil
	}

	currency := "USD"
	symbolFound := false
	for _, cs := range currencySymbols {
		if strings.Contains(text, cs.symbol) {
			currency = cs.code
			symbolFound = true
			break
		}
	}
	if !symbolFound {
		if m := currencyCodeRe.FindStringSubmatch(text); m != nil {
			currency = strings.ToUpper(m[1])
		}
	}

	cadence := DetectCadence(text)
	if cadence == types.CadenceUnknown && context != "" {
		cadence = DetectCadence(context)
	}

	textLower := strings.ToLower(text)
	perSeat := false
	for _, cue := range perSeatCues {
		if strings.Contains(textLower, cue) {
			perSeat = true
			break
		}
	}

	parsed, err := types.NewParsedPrice(amount, currency, cadence, perSeat, text)
	if err != nil {
		return nil
	}
	return &parsed
}

// parseAmount extracts the first numeric token and interprets its separators.
func parseAmount(text string) (float64, bool) {
	token := numberTokenRe.FindString(text)
	if token == "" {
		return 0, false
	}

	var normalized string
	switch {
	case usGroupedRe.MatchString(token):
		normalized = strings.ReplaceAll(token, ",", "")
	case euGroupedRe.MatchString(token):
		normalized = strings.ReplaceAll(token, ".", "")
		normalized = strings.ReplaceAll(normalized, ",", ".")
	case dotDecimalRe.MatchString(token):
		normalized = token
	case commaDecimalRe.MatchString(token):
		normalized = strings.ReplaceAll(token, ",", ".")
	case integerRe.MatchString(token):
		normalized = token
	default:
		// Mixed separators that fit no known grouping (e.g. "1,23.4")
		return 0, false
	}

	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// DetectCadence detects a billing cadence from phrase cues in the text.
// Returns CadenceUnknown when no cue matches.
func DetectCadence(text string) types.Cadence {
	textLower := strings.ToLower(text)
	for _, group := range cadenceCues {
		for _, cue := range group.cues {
			if strings.Contains(textLower, cue) {
				return group.cadence
			}
		}
	}
	return types.CadenceUnknown
}
