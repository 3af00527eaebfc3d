package engine

import (
	"math"
	"testing"

	"github.com/feasly/feasibility-engine/internal/config"
)

func cafeParams() config.BusinessParameters {
	params := config.BusinessParameters{
		BusinessType:          config.BusinessTypeCafe,
		Investment:            100000,
		MonthlyRevenue:        30000,
		MonthlyOperatingCosts: 18000,
	}
	params.Normalize()
	return params
}

func TestComputeCoreMetricsCafeBaseline(t *testing.T) {
	params := cafeParams()
	coeff := CoefficientsFor(params)
	metrics := ComputeCoreMetrics(params, coeff)

	if metrics.MonthlyProfit != 12000 {
		t.Errorf("MonthlyProfit = %.2f, expected 12000", metrics.MonthlyProfit)
	}
	if metrics.AnnualProfit != 144000 {
		t.Errorf("AnnualProfit = %.2f, expected 144000", metrics.AnnualProfit)
	}
	if !metrics.ROI.Valid || math.Abs(metrics.ROI.Value-144.0) > 0.001 {
		t.Errorf("ROI = %v, expected 144.0", metrics.ROI)
	}
	if coeff.RiskFactor != 1.2 {
		t.Errorf("RiskFactor = %.2f, expected 1.2", coeff.RiskFactor)
	}
	if !metrics.AdjustedROI.Valid || math.Abs(metrics.AdjustedROI.Value-120.0) > 0.001 {
		t.Errorf("AdjustedROI = %v, expected 120.0", metrics.AdjustedROI)
	}
	if !metrics.PaybackPeriod.Valid || math.Abs(metrics.PaybackPeriod.Value-100000.0/12000.0) > 0.001 {
		t.Errorf("PaybackPeriod = %v, expected 8.33", metrics.PaybackPeriod)
	}
	// 25% default tax rate
	if math.Abs(metrics.AfterTaxAnnualProfit-108000) > 0.001 {
		t.Errorf("AfterTaxAnnualProfit = %.2f, expected 108000", metrics.AfterTaxAnnualProfit)
	}
}

func TestExplicitZeroTaxRateIsUntaxed(t *testing.T) {
	params := cafeParams()
	params.Advanced.TaxRate = config.Float64(0)
	params.Normalize()

	metrics := ComputeCoreMetrics(params, CoefficientsFor(params))

	// With no tax the after-tax figure equals the annual profit, and the
	// capital ratios built on it shift accordingly.
	if metrics.AfterTaxAnnualProfit != metrics.AnnualProfit {
		t.Errorf("AfterTaxAnnualProfit = %.2f, expected untaxed %.2f",
			metrics.AfterTaxAnnualProfit, metrics.AnnualProfit)
	}
	ratios := ComputeRatios(params, metrics)
	if !ratios.ROIC.Valid || math.Abs(ratios.ROIC.Value-144.0) > 0.001 {
		t.Errorf("ROIC = %v, expected 144.0 with a zero tax rate", ratios.ROIC)
	}
}

func TestAdjustedROIMatchesRiskFactor(t *testing.T) {
	tests := []struct {
		businessType string
		riskFactor   float64
	}{
		{config.BusinessTypeCafe, 1.2},
		{config.BusinessTypeRetail, 1.1},
		{config.BusinessTypeService, 0.9},
		{config.BusinessTypeManufacturing, 1.3},
	}

	for _, tt := range tests {
		t.Run(tt.businessType, func(t *testing.T) {
			params := cafeParams()
			params.BusinessType = tt.businessType
			params.Normalize()
			coeff := CoefficientsFor(params)
			metrics := ComputeCoreMetrics(params, coeff)

			if coeff.RiskFactor != tt.riskFactor {
				t.Fatalf("RiskFactor = %.2f, expected %.2f", coeff.RiskFactor, tt.riskFactor)
			}
			if !metrics.ROI.Valid || !metrics.AdjustedROI.Valid {
				t.Fatal("expected defined ROI metrics")
			}
			expected := metrics.ROI.Value / tt.riskFactor
			if math.Abs(metrics.AdjustedROI.Value-expected) > 1e-9 {
				t.Errorf("AdjustedROI = %.6f, expected roi/riskFactor = %.6f", metrics.AdjustedROI.Value, expected)
			}
		})
	}
}

func TestPaybackIndeterminateWhenNoProfit(t *testing.T) {
	tests := []struct {
		name           string
		monthlyRevenue float64
		costs          float64
	}{
		{"zero profit", 18000, 18000},
		{"negative profit", 15000, 18000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := cafeParams()
			params.MonthlyRevenue = tt.monthlyRevenue
			params.MonthlyOperatingCosts = tt.costs
			metrics := ComputeCoreMetrics(params, CoefficientsFor(params))

			if metrics.PaybackPeriod.Valid {
				t.Errorf("PaybackPeriod = %v, expected indeterminate", metrics.PaybackPeriod)
			}
			if metrics.PaybackPeriod.String() != "N/A" {
				t.Errorf("PaybackPeriod string = %s, expected N/A", metrics.PaybackPeriod.String())
			}
		})
	}
}

func TestROIIndeterminateWithZeroInvestment(t *testing.T) {
	params := cafeParams()
	params.Investment = 0
	metrics := ComputeCoreMetrics(params, CoefficientsFor(params))

	if metrics.ROI.Valid {
		t.Errorf("ROI = %v, expected indeterminate for zero investment", metrics.ROI)
	}
	if metrics.AdjustedROI.Valid || metrics.NPV.Valid || metrics.IRR.Valid {
		t.Error("expected all investment-derived metrics to be indeterminate")
	}
	// Payback with zero investment and positive profit is immediate, not undefined.
	if !metrics.PaybackPeriod.Valid || metrics.PaybackPeriod.Value != 0 {
		t.Errorf("PaybackPeriod = %v, expected 0", metrics.PaybackPeriod)
	}
	if math.IsNaN(metrics.ROI.Value) || math.IsInf(metrics.ROI.Value, 0) {
		t.Error("indeterminate metric must not carry NaN/Inf")
	}
}

func TestNetPresentValue(t *testing.T) {
	tests := []struct {
		name         string
		cashflow     float64
		investment   float64
		discountRate float64
		years        int
		expected     float64
	}{
		{
			name:         "cafe baseline after tax",
			cashflow:     108000,
			investment:   100000,
			discountRate: 10,
			years:        5,
			expected:     309405.39,
		},
		{
			name:         "zero discount rate",
			cashflow:     10000,
			investment:   30000,
			discountRate: 0,
			years:        5,
			expected:     20000,
		},
		{
			name:         "negative NPV",
			cashflow:     1000,
			investment:   50000,
			discountRate: 10,
			years:        5,
			expected:     -46209.21,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NetPresentValue(tt.cashflow, tt.investment, tt.discountRate, tt.years)
			if math.Abs(result-tt.expected) > 1.0 {
				t.Errorf("NetPresentValue() = %.2f, expected %.2f", result, tt.expected)
			}
		})
	}
}

func TestApproximateIRR(t *testing.T) {
	// ((108000*5 - 100000) / 5) / 100000 * 100 = 88%
	result := ApproximateIRR(108000, 100000, 5)
	if math.Abs(result-88.0) > 0.001 {
		t.Errorf("ApproximateIRR() = %.3f, expected 88.0", result)
	}
}

func TestMonthlyLoanPayment(t *testing.T) {
	tests := []struct {
		name          string
		principal     float64
		rate          float64
		termMonths    int
		expectedRange []float64 // [min, max]
	}{
		{
			name:          "standard financing assumption",
			principal:     60000,
			rate:          8.0,
			termMonths:    120,
			expectedRange: []float64{720, 735}, // Around $728
		},
		{
			name:          "zero interest",
			principal:     12000,
			rate:          0,
			termMonths:    60,
			expectedRange: []float64{200, 200},
		},
		{
			name:          "no principal",
			principal:     0,
			rate:          8.0,
			termMonths:    120,
			expectedRange: []float64{0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MonthlyLoanPayment(tt.principal, tt.rate, tt.termMonths)
			if result < tt.expectedRange[0] || result > tt.expectedRange[1] {
				t.Errorf("MonthlyLoanPayment() = %.2f, expected range [%.2f, %.2f]",
					result, tt.expectedRange[0], tt.expectedRange[1])
			}
		})
	}
}
