// Package ticker validates and canonicalizes company ticker symbols into
// the form the SEC ticker index actually uses.
package ticker

import (
	"fmt"
	"regexp"
	"strings"
)

// validPattern is the final accepted form: 1-5 letters with an optional
// hyphenated one-letter share-class suffix
var validPattern = regexp.MustCompile(`^[A-Z]{1,5}(-[A-Z])?$`)

// dotSuffix matches a dot-separated share-class suffix before rewriting
var dotSuffix = regexp.MustCompile(`^([A-Z]{1,5})\.([A-Z])$`)

// corrections maps well-known symbol drifts to the symbol the SEC ticker
// index carries. Curated, not derived; extend as drifts are reported.
// SSOT: symbol corrections live only in this table
var corrections = map[string]string{
	"BRK.A": "BRK-A",
	"BRK.B": "BRK-B",
	"BF.A":  "BF-A",
	"BF.B":  "BF-B",
	"FB":    "META",
	"TWTR":  "X",
}

// InvalidTickerError reports a ticker that failed normalization. Reason is
// human readable and safe to surface to the user; Suggestions carry hints
// for common mistakes.
type InvalidTickerError struct {
	Input       string
	Reason      string
	Suggestions []string
}

func (e *InvalidTickerError) Error() string {
	return fmt.Sprintf("invalid ticker %q: %s", e.Input, e.Reason)
}

// Normalize canonicalizes a raw ticker symbol: trims, upper-cases, applies
// the corrections table, and rewrites dot-separated share-class suffixes
// to the hyphenated form ("brk.a" -> "BRK-A"). Returns InvalidTickerError
// when the input does not match the accepted pattern after correction.
func Normalize(raw string) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))

	if symbol == "" {
		return "", &InvalidTickerError{Input: raw, Reason: "ticker symbol required"}
	}

	if len(symbol) > 10 || strings.Contains(symbol, " ") {
		return "", &InvalidTickerError{
			Input:       raw,
			Reason:      fmt.Sprintf("'%s' doesn't look like a ticker symbol", raw),
			Suggestions: suggestions(symbol),
		}
	}

	if corrected, ok := corrections[symbol]; ok {
		symbol = corrected
	}

	if m := dotSuffix.FindStringSubmatch(symbol); m != nil {
		symbol = m[1] + "-" + m[2]
	}

	if !validPattern.MatchString(symbol) {
		return "", &InvalidTickerError{
			Input:       raw,
			Reason:      fmt.Sprintf("'%s' is not a valid ticker format", symbol),
			Suggestions: suggestions(symbol),
		}
	}

	return symbol, nil
}

// suggestions provides hints for common input mistakes
func suggestions(symbol string) []string {
	var hints []string
	if strings.Contains(symbol, " ") {
		hints = append(hints, "Use ticker symbol (e.g., 'AAPL') not company name")
	}
	if len(symbol) > 5 {
		hints = append(hints, "Most ticker symbols are 1-4 letters (AAPL, MSFT, GOOGL)")
	}
	return hints
}
