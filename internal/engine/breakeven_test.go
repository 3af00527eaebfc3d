package engine

import (
	"math"
	"testing"
)

func TestBuildBreakEvenPositiveProfit(t *testing.T) {
	analysis := BuildBreakEven(100000, 12000)

	if !analysis.Months.Valid {
		t.Fatal("expected defined break-even months")
	}
	if math.Abs(analysis.Months.Value-100000.0/12000.0) > 0.001 {
		t.Errorf("Months = %.4f, expected 8.3333", analysis.Months.Value)
	}
	if analysis.Amount != 100000 {
		t.Errorf("Amount = %.2f, expected 100000", analysis.Amount)
	}

	// ceil(8.33) + 3 = 12 months, series includes month zero.
	if len(analysis.Data) != 13 {
		t.Fatalf("got %d data points, expected 13", len(analysis.Data))
	}
	if analysis.Data[0].CumulativeProfit != -100000 {
		t.Errorf("Data[0] = %.2f, expected -100000", analysis.Data[0].CumulativeProfit)
	}
	for i := 1; i < len(analysis.Data); i++ {
		step := analysis.Data[i].CumulativeProfit - analysis.Data[i-1].CumulativeProfit
		if math.Abs(step-12000) > 0.001 {
			t.Errorf("step at month %d = %.2f, expected 12000", i, step)
		}
		if analysis.Data[i].Month != i {
			t.Errorf("Data[%d].Month = %d", i, analysis.Data[i].Month)
		}
	}
}

func TestBuildBreakEvenNoProfit(t *testing.T) {
	tests := []struct {
		name          string
		monthlyProfit float64
	}{
		{"zero profit", 0},
		{"negative profit", -5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := BuildBreakEven(100000, tt.monthlyProfit)

			if analysis.Months.Valid {
				t.Errorf("Months = %v, expected indeterminate", analysis.Months)
			}
			if analysis.Amount != 0 {
				t.Errorf("Amount = %.2f, expected 0", analysis.Amount)
			}
			if len(analysis.Data) != 0 {
				t.Errorf("got %d data points, expected empty series", len(analysis.Data))
			}
		})
	}
}

func TestBuildBreakEvenCappedHorizon(t *testing.T) {
	// 200 months to break even would exceed the cap.
	analysis := BuildBreakEven(200000, 1000)

	if len(analysis.Data) != 37 { // months 0..36
		t.Errorf("got %d data points, expected capped 37", len(analysis.Data))
	}
	last := analysis.Data[len(analysis.Data)-1]
	if last.CumulativeProfit >= 0 {
		t.Error("capped series should still be below break-even")
	}
}

func TestBuildBreakEvenZeroInvestment(t *testing.T) {
	analysis := BuildBreakEven(0, 5000)

	if !analysis.Months.Valid || analysis.Months.Value != 0 {
		t.Errorf("Months = %v, expected 0", analysis.Months)
	}
	if analysis.Data[0].CumulativeProfit != 0 {
		t.Errorf("Data[0] = %.2f, expected 0", analysis.Data[0].CumulativeProfit)
	}
}
