package contracts

// Metric is one entry of the fixed internal metric vocabulary.
// A closed enumeration: the fact mapper resolves reported concept names
// onto these and nothing else.
type Metric string

const (
	MetricRevenue         Metric = "revenue"
	MetricGrossProfit     Metric = "gross_profit"
	MetricOperatingIncome Metric = "operating_income"
	MetricNetIncome       Metric = "net_income"
	MetricDilutedEPS      Metric = "eps"
)

// MetricOrder is the fixed priority order used when a concept name is an
// ambiguous synonym across metrics: the first metric listed here wins.
// SSOT: all per-metric iteration uses this order
var MetricOrder = []Metric{
	MetricRevenue,
	MetricGrossProfit,
	MetricOperatingIncome,
	MetricNetIncome,
	MetricDilutedEPS,
}

// Label returns the human-readable metric name used in tables and exports
func (m Metric) Label() string {
	switch m {
	case MetricRevenue:
		return "Revenue"
	case MetricGrossProfit:
		return "Gross Profit"
	case MetricOperatingIncome:
		return "Operating Income"
	case MetricNetIncome:
		return "Net Income"
	case MetricDilutedEPS:
		return "Diluted EPS"
	default:
		return string(m)
	}
}

// Valid reports whether m is part of the closed vocabulary
func (m Metric) Valid() bool {
	for _, known := range MetricOrder {
		if m == known {
			return true
		}
	}
	return false
}
