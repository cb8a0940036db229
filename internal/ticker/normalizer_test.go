package ticker

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple ticker", "AAPL", "AAPL"},
		{"lowercase", "msft", "MSFT"},
		{"whitespace", "  GOOGL  ", "GOOGL"},
		{"dot suffix rewritten", "BRK.A", "BRK-A"},
		{"lowercase dot suffix", "brk.a", "BRK-A"},
		{"hyphen suffix kept", "BRK-B", "BRK-B"},
		{"correction table", "BF.B", "BF-B"},
		{"renamed symbol", "FB", "META"},
		{"single letter", "F", "F"},
		{"five letters", "GOOGL", "GOOGL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"digits", "1234"},
		{"mixed digits", "AB12"},
		{"too long", "ABCDEF"},
		{"company name", "APPLE INC"},
		{"unsupported separator", "BRK/A"},
		{"multi letter suffix", "BRK-AB"},
		{"trailing separator", "BRK-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			if err == nil {
				t.Fatalf("Normalize(%q) expected error, got none", tt.input)
			}

			var invalidErr *InvalidTickerError
			if !errors.As(err, &invalidErr) {
				t.Fatalf("Normalize(%q) error type = %T, want *InvalidTickerError", tt.input, err)
			}
			if invalidErr.Reason == "" {
				t.Error("expected a human-readable reason")
			}
		})
	}
}

func TestNormalizeSuggestions(t *testing.T) {
	_, err := Normalize("MICROSOFT CORP")

	var invalidErr *InvalidTickerError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("expected *InvalidTickerError, got %T", err)
	}
	if len(invalidErr.Suggestions) == 0 {
		t.Error("expected suggestions for company-name input")
	}
}
