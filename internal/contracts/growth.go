package contracts

import "fmt"

// GrowthKind identifies the growth rate cadence
type GrowthKind string

const (
	GrowthCAGR GrowthKind = "cagr"
	GrowthYoY  GrowthKind = "yoy"
	GrowthQoQ  GrowthKind = "qoq"
)

// Caveat explains why a growth rate could not be computed.
// Non-computability is a normal, typed outcome, never an error.
type Caveat string

const (
	CaveatNone             Caveat = ""
	CaveatSignFlip         Caveat = "sign_flip"
	CaveatZeroBase         Caveat = "zero_base"
	CaveatInsufficientData Caveat = "insufficient_data"
)

// GrowthResult is one computed (or explicitly non-computable) growth rate.
// Rate is nil iff Caveat != CaveatNone; a nil rate stands for "not
// computable", distinct from a computed zero.
type GrowthResult struct {
	Metric Metric     `json:"metric"`
	Kind   GrowthKind `json:"kind"`
	From   PeriodKey  `json:"from_period"`
	To     PeriodKey  `json:"to_period"`
	Rate   *float64   `json:"rate"`
	Caveat Caveat     `json:"caveat,omitempty"`
}

// Computable reports whether the result carries a numeric rate
func (g *GrowthResult) Computable() bool {
	return g.Caveat == CaveatNone
}

// Display renders the rate for tabular output. Callers are required to
// present caveats distinctly from a numeric zero or a blank.
func (g *GrowthResult) Display() string {
	switch g.Caveat {
	case CaveatNone:
		return fmt.Sprintf("%.1f%%", *g.Rate*100)
	case CaveatSignFlip:
		return "Turnaround"
	case CaveatZeroBase, CaveatInsufficientData:
		return "N/A"
	default:
		return "N/A"
	}
}
