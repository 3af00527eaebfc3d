package engine

import (
	"fmt"

	"github.com/feasly/feasibility-engine/internal/config"
)

// Insights is the structured heuristic commentary on a projection. It is a
// decision table keyed off business type and metric thresholds, not free
// text generation, so every line is reproducible and testable.
type Insights struct {
	Summary            string   `json:"summary"`
	ProfitabilityLabel string   `json:"profitabilityLabel"`
	PaybackLabel       string   `json:"paybackLabel"`
	Opportunities      []string `json:"opportunities"`
	Risks              []string `json:"risks"`
	Recommendations    []string `json:"recommendations"`
}

// Profitability labels by margin band.
const (
	ProfitabilityExcellent = "excellent"
	ProfitabilityGood      = "good"
	ProfitabilityModerate  = "moderate"
	ProfitabilityThin      = "thin"
	ProfitabilityUnknown   = "not applicable"
)

// Payback labels by month band.
const (
	PaybackFast     = "fast"
	PaybackModerate = "moderate"
	PaybackSlow     = "slow"
	PaybackExtended = "extended"
	PaybackNone     = "no payback"
)

// ProfitabilityLabel maps a profit margin to its qualitative band.
func ProfitabilityLabel(margin Metric) string {
	if !margin.Valid {
		return ProfitabilityUnknown
	}
	switch {
	case margin.Value > 25:
		return ProfitabilityExcellent
	case margin.Value > 15:
		return ProfitabilityGood
	case margin.Value > 8:
		return ProfitabilityModerate
	default:
		return ProfitabilityThin
	}
}

// PaybackLabel maps a payback period in months to its qualitative band.
func PaybackLabel(payback Metric) string {
	if !payback.Valid {
		return PaybackNone
	}
	switch {
	case payback.Value < 12:
		return PaybackFast
	case payback.Value < 24:
		return PaybackModerate
	case payback.Value < 36:
		return PaybackSlow
	default:
		return PaybackExtended
	}
}

// insightRule conditionally contributes one line of commentary based on a
// threshold test against the advanced parameters.
type insightRule struct {
	applies func(adv config.AdvancedParameters) bool
	text    string
}

var opportunityRules = map[string][]insightRule{
	config.BusinessTypeCafe: {
		{func(a config.AdvancedParameters) bool { return *a.SeatingCapacity < 40 },
			"seating capacity is below typical for the concept; expanding seats would lift the growth ceiling"},
		{func(a config.AdvancedParameters) bool { return *a.AvgTicket < 12 },
			"average ticket is low; bundled offers or premium items could raise it without new traffic"},
	},
	config.BusinessTypeRetail: {
		{func(a config.AdvancedParameters) bool { return *a.SalesPerSqFt < 250 },
			"sales per square foot trail the category; layout and merchandising changes tend to pay back quickly"},
		{func(a config.AdvancedParameters) bool { return *a.InventoryTurnover > 12 },
			"inventory turns are strong; broader assortment could capture more of existing demand"},
	},
	config.BusinessTypeService: {
		{func(a config.AdvancedParameters) bool { return *a.UtilizationRate < 60 },
			"utilization is low; filling the unbooked hours is the cheapest revenue available"},
		{func(a config.AdvancedParameters) bool { return *a.BillableHours < 140 },
			"billable hours are below capacity; packaged engagements could absorb the slack"},
	},
	config.BusinessTypeManufacturing: {
		{func(a config.AdvancedParameters) bool { return *a.ProductionCapacity > 2000 },
			"production capacity supports contract or white-label work alongside the core line"},
	},
}

var riskRules = map[string][]insightRule{
	config.BusinessTypeCafe: {
		{func(a config.AdvancedParameters) bool { return *a.TurnoverRate > 6 },
			"table turnover is already high; growth beyond this depends on seats, not speed"},
	},
	config.BusinessTypeRetail: {
		{func(a config.AdvancedParameters) bool { return *a.InventoryTurnover < 6 },
			"slow inventory turns tie up working capital and raise markdown exposure"},
	},
	config.BusinessTypeService: {
		{func(a config.AdvancedParameters) bool { return *a.BillableHours > 200 },
			"billable hours this high are hard to sustain; burnout and quality risk follow"},
	},
	config.BusinessTypeManufacturing: {
		{func(a config.AdvancedParameters) bool { return *a.DefectRate > 5 },
			"defect rate above 5% erodes margin and customer retention; quality control needs attention"},
	},
}

var recommendationRules = map[string][]insightRule{
	config.BusinessTypeCafe: {
		{func(a config.AdvancedParameters) bool { return *a.MarketingPercent < 3 },
			"marketing spend is minimal; local awareness campaigns typically move cafe traffic"},
	},
	config.BusinessTypeRetail: {
		{func(a config.AdvancedParameters) bool { return *a.MarketingPercent < 4 },
			"increase marketing toward seasonal peaks, where retail demand is most elastic"},
	},
	config.BusinessTypeService: {
		{func(a config.AdvancedParameters) bool { return *a.UtilizationRate > 85 },
			"utilization is near the ceiling; raising rates beats adding hours"},
	},
	config.BusinessTypeManufacturing: {
		{func(a config.AdvancedParameters) bool { return *a.DefectRate > 2 },
			"invest in process control before scaling volume; defects compound with throughput"},
	},
}

func applyRules(rules []insightRule, adv config.AdvancedParameters) []string {
	var lines []string
	for _, rule := range rules {
		if rule.applies(adv) {
			lines = append(lines, rule.text)
		}
	}
	return lines
}

// GenerateInsights builds the structured commentary from the other pipeline
// stages' outputs.
func GenerateInsights(params config.BusinessParameters, metrics CoreMetrics, ratios FinancialRatios) Insights {
	profitability := ProfitabilityLabel(ratios.ProfitMargin)
	payback := PaybackLabel(metrics.PaybackPeriod)

	roiText := "an indeterminate return on investment"
	if metrics.ROI.Valid {
		roiText = fmt.Sprintf("a %.1f%% annual return on investment", metrics.ROI.Value)
	}

	summary := fmt.Sprintf("The %s scenario projects %s with %s margins and %s capital recovery.",
		params.BusinessType, roiText, profitability, payback)

	return Insights{
		Summary:            summary,
		ProfitabilityLabel: profitability,
		PaybackLabel:       payback,
		Opportunities:      applyRules(opportunityRules[params.BusinessType], params.Advanced),
		Risks:              applyRules(riskRules[params.BusinessType], params.Advanced),
		Recommendations:    applyRules(recommendationRules[params.BusinessType], params.Advanced),
	}
}
