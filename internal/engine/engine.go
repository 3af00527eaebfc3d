// Package engine computes financial feasibility projections. The pipeline is
// a stateless chain of pure stages: parameters feed coefficients, coefficients
// feed the core metrics, and the metrics feed the projections, break-even
// schedule, ratios, risk assessment, and insights. Every invocation is
// independent and deterministic given its inputs.
package engine

import (
	"go.uber.org/zap"

	"github.com/feasly/feasibility-engine/internal/config"
)

// ProjectionResult is the complete output bundle for one parameter set.
// Consumers render it and never mutate it.
type ProjectionResult struct {
	MonthlyProfit        float64           `json:"monthlyProfit"`
	AnnualProfit         float64           `json:"annualProfit"`
	AfterTaxAnnualProfit float64           `json:"afterTaxAnnualProfit"`
	ROI                  Metric            `json:"roi"`
	AdjustedROI          Metric            `json:"adjustedRoi"`
	PaybackPeriod        Metric            `json:"paybackPeriod"`
	NPV                  Metric            `json:"npv"`
	IRR                  Metric            `json:"irr"`
	RiskFactor           float64           `json:"riskFactor"`
	GrowthPotential      float64           `json:"growthPotential"`
	FiveYearProjection   []YearProjection  `json:"fiveYearProjection"`
	MonthlyBreakdown     []MonthProjection `json:"monthlyBreakdown"`
	BreakEvenAnalysis    BreakEvenAnalysis `json:"breakEvenAnalysis"`
	FinancialRatios      FinancialRatios   `json:"financialRatios"`
	RiskAssessment       RiskAssessment    `json:"riskAssessment"`
	Insights             Insights          `json:"insights"`
}

// Engine runs the projection pipeline.
type Engine struct {
	logger *zap.Logger
}

// New creates a projection engine with the given logger.
// If logger is nil, it will use a no-op logger to prevent panics.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// ComputeProjection validates and normalizes the parameters, then runs every
// pipeline stage. The caller keeps ownership of params; the copy passed in is
// normalized locally. Clamping warnings are logged, not returned; callers
// that need them should call Normalize before ComputeProjection.
func (e *Engine) ComputeProjection(params config.BusinessParameters) (*ProjectionResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	for _, warning := range params.Normalize() {
		e.logger.Warn("parameter adjusted during normalization",
			zap.String("op", "engine.ComputeProjection"),
			zap.String("warning", warning),
		)
	}

	coeff := CoefficientsFor(params)
	metrics := ComputeCoreMetrics(params, coeff)
	fiveYear := BuildFiveYearProjection(params, coeff)
	monthly := BuildMonthlyBreakdown(fiveYear[0])
	breakEven := BuildBreakEven(params.Investment, metrics.MonthlyProfit)
	ratios := ComputeRatios(params, metrics)
	risk := AssessRisk(params, metrics, ratios)
	insights := GenerateInsights(params, metrics, ratios)

	e.logger.Debug("projection computed",
		zap.String("op", "engine.ComputeProjection"),
		zap.String("businessType", params.BusinessType),
		zap.Float64("monthlyProfit", metrics.MonthlyProfit),
		zap.Bool("roiDefined", metrics.ROI.Valid),
	)

	return &ProjectionResult{
		MonthlyProfit:        metrics.MonthlyProfit,
		AnnualProfit:         metrics.AnnualProfit,
		AfterTaxAnnualProfit: metrics.AfterTaxAnnualProfit,
		ROI:                  metrics.ROI,
		AdjustedROI:          metrics.AdjustedROI,
		PaybackPeriod:        metrics.PaybackPeriod,
		NPV:                  metrics.NPV,
		IRR:                  metrics.IRR,
		RiskFactor:           coeff.RiskFactor,
		GrowthPotential:      coeff.GrowthPotential,
		FiveYearProjection:   fiveYear,
		MonthlyBreakdown:     monthly,
		BreakEvenAnalysis:    breakEven,
		FinancialRatios:      ratios,
		RiskAssessment:       risk,
		Insights:             insights,
	}, nil
}
