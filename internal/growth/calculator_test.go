package growth

import (
	"math"
	"testing"

	"github.com/jwhan/fintab/internal/contracts"
	"github.com/jwhan/fintab/internal/periods"
)

func annualSeries(metric contracts.Metric, valuesByYear map[int]float64) *contracts.OrganizedSeries {
	series := contracts.NewOrganizedSeries(metric)
	for year, value := range valuesByYear {
		series.Put(contracts.PeriodKey{
			Metric:    metric,
			Frame:     contracts.FrameAnnual,
			PeriodEnd: periods.YearEnd(year),
			Label:     contracts.AnnualLabel(year),
		}, value)
	}
	return series
}

func quarterlySeries(metric contracts.Metric, values map[[2]int]float64) *contracts.OrganizedSeries {
	series := contracts.NewOrganizedSeries(metric)
	for yq, value := range values {
		series.Put(contracts.PeriodKey{
			Metric:    metric,
			Frame:     contracts.FrameQuarterly,
			PeriodEnd: periods.QuarterEnd(yq[0], yq[1]),
			Label:     contracts.QuarterLabel(yq[0], yq[1]),
		}, value)
	}
	return series
}

func resultsOfKind(results []contracts.GrowthResult, kind contracts.GrowthKind) []contracts.GrowthResult {
	var out []contracts.GrowthResult
	for _, r := range results {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

func assertRate(t *testing.T, r contracts.GrowthResult, want float64) {
	t.Helper()
	if r.Caveat != contracts.CaveatNone {
		t.Fatalf("caveat = %q, want none", r.Caveat)
	}
	if r.Rate == nil {
		t.Fatal("rate is nil with no caveat")
	}
	if math.Abs(*r.Rate-want) > 1e-9 {
		t.Errorf("rate = %v, want %v", *r.Rate, want)
	}
}

func assertCaveat(t *testing.T, r contracts.GrowthResult, want contracts.Caveat) {
	t.Helper()
	if r.Caveat != want {
		t.Fatalf("caveat = %q, want %q", r.Caveat, want)
	}
	if r.Rate != nil {
		t.Errorf("rate = %v, want nil when caveat is set", *r.Rate)
	}
}

func TestYoYSimpleGrowth(t *testing.T) {
	tests := []struct {
		name       string
		start, end float64
		wantRate   float64
		wantCaveat contracts.Caveat
	}{
		{name: "positive growth", start: 100, end: 150, wantRate: 0.5},
		{name: "decline", start: 100, end: 80, wantRate: -0.2},
		{name: "zero base", start: 0, end: 50, wantCaveat: contracts.CaveatZeroBase},
		{name: "loss to profit", start: -20, end: 30, wantCaveat: contracts.CaveatSignFlip},
		{name: "profit to loss", start: 20, end: -30, wantCaveat: contracts.CaveatSignFlip},
		// Loss narrowing keeps a valid numeric rate: sign did not flip and
		// the abs base keeps the rate's sign aligned with direction
		{name: "loss narrowing", start: -50, end: -20, wantRate: 0.6},
		{name: "loss widening", start: -20, end: -50, wantRate: -1.5},
		{name: "to exactly zero", start: 50, end: 0, wantRate: -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := annualSeries(contracts.MetricNetIncome, map[int]float64{
				2022: tt.start,
				2023: tt.end,
			})

			yoy := resultsOfKind(Compute(series), contracts.GrowthYoY)
			if len(yoy) != 1 {
				t.Fatalf("YoY results = %d, want 1", len(yoy))
			}

			if tt.wantCaveat != contracts.CaveatNone {
				assertCaveat(t, yoy[0], tt.wantCaveat)
			} else {
				assertRate(t, yoy[0], tt.wantRate)
			}
		})
	}
}

func TestYoYMissingInteriorYear(t *testing.T) {
	series := annualSeries(contracts.MetricRevenue, map[int]float64{
		2020: 100,
		2022: 144,
	})

	yoy := resultsOfKind(Compute(series), contracts.GrowthYoY)
	if len(yoy) != 2 {
		t.Fatalf("YoY results = %d, want 2 (pair per consecutive year)", len(yoy))
	}

	// Both pairs touch the absent FY2021 and must surface it explicitly
	assertCaveat(t, yoy[0], contracts.CaveatInsufficientData)
	assertCaveat(t, yoy[1], contracts.CaveatInsufficientData)

	if yoy[0].To.Label != "FY2021" || yoy[1].From.Label != "FY2021" {
		t.Errorf("expected synthesized FY2021 keys, got to=%q from=%q", yoy[0].To.Label, yoy[1].From.Label)
	}
}

func TestCAGR(t *testing.T) {
	tests := []struct {
		name       string
		values     map[int]float64
		wantRate   float64
		wantCaveat contracts.Caveat
	}{
		{
			name:     "two year compounding",
			values:   map[int]float64{2021: 100, 2022: 120, 2023: 144},
			wantRate: 0.2,
		},
		{
			name: "gap does not shrink the span",
			// 100 -> 144 over 2 fiscal years even though FY2022 is absent
			values:   map[int]float64{2021: 100, 2023: 144},
			wantRate: 0.2,
		},
		{
			name:       "zero endpoint",
			values:     map[int]float64{2021: 100, 2023: 0},
			wantCaveat: contracts.CaveatZeroBase,
		},
		{
			name:       "zero base",
			values:     map[int]float64{2021: 0, 2023: 50},
			wantCaveat: contracts.CaveatZeroBase,
		},
		{
			name:       "negative start",
			values:     map[int]float64{2021: -10, 2023: 50},
			wantCaveat: contracts.CaveatSignFlip,
		},
		{
			name:       "negative end",
			values:     map[int]float64{2021: 10, 2023: -50},
			wantCaveat: contracts.CaveatSignFlip,
		},
		{
			name:       "both negative",
			values:     map[int]float64{2021: -50, 2023: -20},
			wantCaveat: contracts.CaveatSignFlip,
		},
		{
			name:       "single period",
			values:     map[int]float64{2023: 100},
			wantCaveat: contracts.CaveatInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := annualSeries(contracts.MetricRevenue, tt.values)

			cagr := resultsOfKind(Compute(series), contracts.GrowthCAGR)
			if len(cagr) != 1 {
				t.Fatalf("CAGR results = %d, want 1", len(cagr))
			}

			if tt.wantCaveat != contracts.CaveatNone {
				assertCaveat(t, cagr[0], tt.wantCaveat)
			} else {
				assertRate(t, cagr[0], tt.wantRate)
			}
		})
	}
}

func TestQoQ(t *testing.T) {
	series := quarterlySeries(contracts.MetricRevenue, map[[2]int]float64{
		{2023, 3}: 100,
		{2023, 4}: 110,
		{2024, 1}: 99,
	})

	qoq := resultsOfKind(Compute(series), contracts.GrowthQoQ)
	if len(qoq) != 2 {
		t.Fatalf("QoQ results = %d, want 2", len(qoq))
	}

	assertRate(t, qoq[0], 0.1)
	assertRate(t, qoq[1], -0.1)

	if qoq[0].From.Label != "Q3 2023" || qoq[1].To.Label != "Q1 2024" {
		t.Errorf("unexpected period labels: %q -> %q", qoq[0].From.Label, qoq[1].To.Label)
	}
}

func TestQoQYearBoundaryGap(t *testing.T) {
	series := quarterlySeries(contracts.MetricRevenue, map[[2]int]float64{
		{2023, 4}: 100,
		{2024, 2}: 120,
	})

	qoq := resultsOfKind(Compute(series), contracts.GrowthQoQ)
	if len(qoq) != 2 {
		t.Fatalf("QoQ results = %d, want 2", len(qoq))
	}
	assertCaveat(t, qoq[0], contracts.CaveatInsufficientData)
	assertCaveat(t, qoq[1], contracts.CaveatInsufficientData)
	if qoq[0].To.Label != "Q1 2024" {
		t.Errorf("synthesized quarter label = %q, want Q1 2024", qoq[0].To.Label)
	}
}

// The output ordering is an explicit contract: oldest period first,
// regardless of how the input facts arrived.
func TestResultsOrderedOldestFirst(t *testing.T) {
	series := annualSeries(contracts.MetricRevenue, map[int]float64{
		2023: 144, 2019: 80, 2021: 100, 2020: 90, 2022: 120,
	})

	yoy := resultsOfKind(Compute(series), contracts.GrowthYoY)
	if len(yoy) != 4 {
		t.Fatalf("YoY results = %d, want 4", len(yoy))
	}
	for i := 1; i < len(yoy); i++ {
		if !yoy[i-1].From.PeriodEnd.Before(yoy[i].From.PeriodEnd) {
			t.Fatalf("results out of order at %d: %s before %s", i, yoy[i-1].From.Label, yoy[i].From.Label)
		}
	}
}

func TestEveryPairYieldsExactlyOneResult(t *testing.T) {
	series := annualSeries(contracts.MetricNetIncome, map[int]float64{
		2019: -10, 2020: 0, 2021: 5, 2023: 20,
	})

	yoy := resultsOfKind(Compute(series), contracts.GrowthYoY)
	// 2019->2020, 2020->2021, 2021->2022, 2022->2023
	if len(yoy) != 4 {
		t.Fatalf("YoY results = %d, want 4", len(yoy))
	}

	// -10 -> 0: end is zero, sign did not flip (both nonpositive), rate = 1.0
	assertRate(t, yoy[0], 1.0)
	assertCaveat(t, yoy[1], contracts.CaveatZeroBase)
	assertCaveat(t, yoy[2], contracts.CaveatInsufficientData)
	assertCaveat(t, yoy[3], contracts.CaveatInsufficientData)
}

func TestEmptySeries(t *testing.T) {
	series := contracts.NewOrganizedSeries(contracts.MetricRevenue)
	if results := Compute(series); len(results) != 0 {
		t.Errorf("Compute(empty) = %d results, want 0", len(results))
	}
}
