package engine

import (
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/feasly/feasibility-engine/internal/config"
	"github.com/feasly/feasibility-engine/pkg/constants"
	"github.com/feasly/feasibility-engine/pkg/mathutil"
)

// RiskAssessment scores the venture on a 1-10 scale (higher is riskier),
// with sub-scores for market, financial, and operational risk plus ROI
// sensitivity deltas under +/-10% input shocks.
type RiskAssessment struct {
	Overall     float64     `json:"overall"`
	Market      float64     `json:"market"`
	Financial   float64     `json:"financial"`
	Operational float64     `json:"operational"`
	Sensitivity Sensitivity `json:"sensitivity"`
}

// Sensitivity holds the ROI change, in percentage points, when one input
// moves 10% against the business.
type Sensitivity struct {
	RevenueDown10  Metric `json:"revenueDown10"`
	CostsUp10      Metric `json:"costsUp10"`
	InvestmentUp10 Metric `json:"investmentUp10"`
}

// marketRiskBase and operationalRiskBase are the per-type starting scores
// before jitter and threshold adjustments.
var marketRiskBase = map[string]float64{
	config.BusinessTypeCafe:          3.0,
	config.BusinessTypeRetail:        3.5,
	config.BusinessTypeService:       2.5,
	config.BusinessTypeManufacturing: 4.0,
}

var operationalRiskBase = map[string]float64{
	config.BusinessTypeCafe:          5.0,
	config.BusinessTypeRetail:        4.5,
	config.BusinessTypeService:       3.5,
	config.BusinessTypeManufacturing: 6.0,
}

// riskSeed derives a deterministic jitter seed from the parameter set so
// identical inputs always score identically. An explicit RiskSeed overrides
// the derivation.
func riskSeed(params config.BusinessParameters) int64 {
	if params.RiskSeed != 0 {
		return params.RiskSeed
	}

	adv := params.Advanced
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%.4f|%.4f|%.4f",
		params.BusinessType, params.Investment, params.MonthlyRevenue,
		params.MonthlyOperatingCosts)
	for _, tunable := range []*float64{
		adv.TaxRate, adv.DiscountRate, adv.GrowthRate, adv.InflationRate,
		adv.MarketingPercent, adv.LoanPercent, adv.LoanInterestRate,
		adv.SeatingCapacity, adv.AvgTicket, adv.TurnoverRate,
		adv.SalesPerSqFt, adv.InventoryTurnover,
		adv.BillableHours, adv.UtilizationRate,
		adv.ProductionCapacity, adv.DefectRate,
	} {
		fmt.Fprintf(h, "|%.4f", *tunable)
	}
	return int64(h.Sum64())
}

// AssessRisk builds the risk assessment from the parameters, core metrics,
// and ratios. The jitter stands in for market noise the published calculator
// produced with an unseeded random call; here it is seeded from the inputs
// so results stay reproducible.
func AssessRisk(params config.BusinessParameters, metrics CoreMetrics, ratios FinancialRatios) RiskAssessment {
	rng := rand.New(rand.NewSource(riskSeed(params)))

	market := marketRiskBase[params.BusinessType] + rng.Float64()*2

	financial := 5.0
	if metrics.PaybackPeriod.Valid {
		switch payback := metrics.PaybackPeriod.Value; {
		case payback < 12:
			financial -= 2
		case payback < 24:
			financial -= 1
		case payback > 36:
			financial += 1
		}
	} else {
		financial += 2
	}
	if ratios.ProfitMargin.Valid {
		switch margin := ratios.ProfitMargin.Value; {
		case margin > 25:
			financial -= 1
		case margin <= 8:
			financial += 1
		}
	}

	operational := operationalRiskBase[params.BusinessType] + rng.Float64()
	if params.BusinessType == config.BusinessTypeManufacturing {
		operational += *params.Advanced.DefectRate * 0.2
	}

	market = mathutil.Clamp(market, 1, 10)
	financial = mathutil.Clamp(financial, 1, 10)
	operational = mathutil.Clamp(operational, 1, 10)

	overall := mathutil.Clamp(market*0.35+financial*0.40+operational*0.25, 1, 10)

	return RiskAssessment{
		Overall:     overall,
		Market:      market,
		Financial:   financial,
		Operational: operational,
		Sensitivity: computeSensitivity(params, metrics),
	}
}

// computeSensitivity reports how far ROI moves, in percentage points, under
// a 10% adverse shock to each input.
func computeSensitivity(params config.BusinessParameters, metrics CoreMetrics) Sensitivity {
	sensitivity := Sensitivity{
		RevenueDown10:  Indeterminate(),
		CostsUp10:      Indeterminate(),
		InvestmentUp10: Indeterminate(),
	}
	if !metrics.ROI.Valid {
		return sensitivity
	}

	baseROI := metrics.ROI.Value
	roiWith := func(revenue, costs, investment float64) float64 {
		return (revenue - costs) * constants.MonthsPerYear / investment * constants.PercentageMultiplier
	}

	sensitivity.RevenueDown10 = Defined(
		roiWith(params.MonthlyRevenue*0.9, params.MonthlyOperatingCosts, params.Investment) - baseROI)
	sensitivity.CostsUp10 = Defined(
		roiWith(params.MonthlyRevenue, params.MonthlyOperatingCosts*1.1, params.Investment) - baseROI)
	sensitivity.InvestmentUp10 = Defined(
		roiWith(params.MonthlyRevenue, params.MonthlyOperatingCosts, params.Investment*1.1) - baseROI)

	return sensitivity
}
