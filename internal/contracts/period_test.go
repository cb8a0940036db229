package contracts

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"annual", AnnualLabel(2023), "FY2023"},
		{"quarter", QuarterLabel(2023, 3), "Q3 2023"},
		{"first quarter", QuarterLabel(2024, 1), "Q1 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestOrganizedSeriesPutPanicsOnDuplicate(t *testing.T) {
	s := NewOrganizedSeries(MetricRevenue)
	key := PeriodKey{Metric: MetricRevenue, Frame: FrameAnnual, PeriodEnd: day(2023, 12, 31), Label: "FY2023"}
	s.Put(key, 100)

	defer func() {
		if recover() == nil {
			t.Fatal("Expected panic on duplicate period key")
		}
	}()
	s.Put(key, 200)
}

func TestOrganizedSeriesKeysOrderedOldestFirst(t *testing.T) {
	s := NewOrganizedSeries(MetricRevenue)
	for _, year := range []int{2023, 2021, 2022} {
		s.Put(PeriodKey{
			Metric:    MetricRevenue,
			Frame:     FrameAnnual,
			PeriodEnd: day(year, 12, 31),
			Label:     AnnualLabel(year),
		}, float64(year))
	}
	s.Put(PeriodKey{
		Metric:    MetricRevenue,
		Frame:     FrameQuarterly,
		PeriodEnd: day(2023, 3, 31),
		Label:     QuarterLabel(2023, 1),
	}, 10)

	keys := s.Keys(FrameAnnual)
	if len(keys) != 3 {
		t.Fatalf("Expected 3 annual keys, got %d", len(keys))
	}
	for i, want := range []string{"FY2021", "FY2022", "FY2023"} {
		if keys[i].Label != want {
			t.Errorf("keys[%d].Label = %q, want %q", i, keys[i].Label, want)
		}
	}

	if got := s.Keys(FrameQuarterly); len(got) != 1 || got[0].Label != "Q1 2023" {
		t.Errorf("Unexpected quarterly keys %v", got)
	}
}

func TestOrganizedSeriesJSONRoundTrip(t *testing.T) {
	s := NewOrganizedSeries(MetricNetIncome)
	s.Put(PeriodKey{Metric: MetricNetIncome, Frame: FrameAnnual, PeriodEnd: day(2022, 12, 31), Label: "FY2022"}, -5)
	s.Put(PeriodKey{Metric: MetricNetIncome, Frame: FrameQuarterly, PeriodEnd: day(2023, 3, 31), Label: "Q1 2023"}, 2.5)

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var restored OrganizedSeries
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !reflect.DeepEqual(s.Points, restored.Points) {
		t.Errorf("Round trip changed points: %v != %v", s.Points, restored.Points)
	}
	if restored.Metric != MetricNetIncome {
		t.Errorf("Metric = %q, want %q", restored.Metric, MetricNetIncome)
	}
}
