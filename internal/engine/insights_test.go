package engine

import (
	"strings"
	"testing"

	"github.com/feasly/feasibility-engine/internal/config"
)

func TestProfitabilityLabel(t *testing.T) {
	tests := []struct {
		name     string
		margin   Metric
		expected string
	}{
		{"excellent above 25", Defined(25.1), ProfitabilityExcellent},
		{"good above 15", Defined(20), ProfitabilityGood},
		{"boundary 25 is good", Defined(25), ProfitabilityGood},
		{"moderate above 8", Defined(10), ProfitabilityModerate},
		{"thin at 8", Defined(8), ProfitabilityThin},
		{"thin negative", Defined(-5), ProfitabilityThin},
		{"indeterminate", Indeterminate(), ProfitabilityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProfitabilityLabel(tt.margin); got != tt.expected {
				t.Errorf("ProfitabilityLabel(%v) = %s, expected %s", tt.margin, got, tt.expected)
			}
		})
	}
}

func TestPaybackLabel(t *testing.T) {
	tests := []struct {
		name     string
		payback  Metric
		expected string
	}{
		{"fast under 12", Defined(8.33), PaybackFast},
		{"moderate under 24", Defined(18), PaybackModerate},
		{"boundary 12 is moderate", Defined(12), PaybackModerate},
		{"slow under 36", Defined(30), PaybackSlow},
		{"extended at 36", Defined(36), PaybackExtended},
		{"no payback", Indeterminate(), PaybackNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PaybackLabel(tt.payback); got != tt.expected {
				t.Errorf("PaybackLabel(%v) = %s, expected %s", tt.payback, got, tt.expected)
			}
		})
	}
}

func generateFor(params config.BusinessParameters) Insights {
	coeff := CoefficientsFor(params)
	metrics := ComputeCoreMetrics(params, coeff)
	ratios := ComputeRatios(params, metrics)
	return GenerateInsights(params, metrics, ratios)
}

func TestGenerateInsightsCafeBaseline(t *testing.T) {
	insights := generateFor(cafeParams())

	if insights.ProfitabilityLabel != ProfitabilityExcellent {
		t.Errorf("ProfitabilityLabel = %s, expected excellent for 40%% margin", insights.ProfitabilityLabel)
	}
	if insights.PaybackLabel != PaybackFast {
		t.Errorf("PaybackLabel = %s, expected fast for 8.3 months", insights.PaybackLabel)
	}
	if !strings.Contains(insights.Summary, "cafe") {
		t.Errorf("summary does not mention the business type: %s", insights.Summary)
	}
	if !strings.Contains(insights.Summary, "144.0%") {
		t.Errorf("summary does not carry the ROI figure: %s", insights.Summary)
	}

	// The baseline slider defaults trip none of the cafe rules.
	if len(insights.Opportunities) != 0 || len(insights.Risks) != 0 || len(insights.Recommendations) != 0 {
		t.Errorf("baseline cafe should produce no rule hits, got %+v", insights)
	}
}

func TestGenerateInsightsRuleTriggers(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*config.BusinessParameters)
		wantBucket func(Insights) []string
	}{
		{
			name: "small cafe opportunity",
			mutate: func(p *config.BusinessParameters) {
				p.Advanced.SeatingCapacity = config.Float64(20)
			},
			wantBucket: func(i Insights) []string { return i.Opportunities },
		},
		{
			name: "cafe turnover risk",
			mutate: func(p *config.BusinessParameters) {
				p.Advanced.TurnoverRate = config.Float64(8)
			},
			wantBucket: func(i Insights) []string { return i.Risks },
		},
		{
			name: "retail slow inventory risk",
			mutate: func(p *config.BusinessParameters) {
				p.BusinessType = config.BusinessTypeRetail
				p.Advanced.InventoryTurnover = config.Float64(3)
			},
			wantBucket: func(i Insights) []string { return i.Risks },
		},
		{
			name: "service low utilization opportunity",
			mutate: func(p *config.BusinessParameters) {
				p.BusinessType = config.BusinessTypeService
				p.Advanced.UtilizationRate = config.Float64(50)
			},
			wantBucket: func(i Insights) []string { return i.Opportunities },
		},
		{
			name: "manufacturing defect recommendation",
			mutate: func(p *config.BusinessParameters) {
				p.BusinessType = config.BusinessTypeManufacturing
				p.Advanced.DefectRate = config.Float64(6)
			},
			wantBucket: func(i Insights) []string { return i.Recommendations },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := cafeParams()
			tt.mutate(&params)
			params.Normalize()
			insights := generateFor(params)

			if len(tt.wantBucket(insights)) == 0 {
				t.Errorf("expected at least one line, got %+v", insights)
			}
		})
	}
}

func TestGenerateInsightsIndeterminateROI(t *testing.T) {
	params := cafeParams()
	params.Investment = 0
	insights := generateFor(params)

	if !strings.Contains(insights.Summary, "indeterminate") {
		t.Errorf("summary should flag the indeterminate ROI: %s", insights.Summary)
	}
}
