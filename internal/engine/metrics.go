package engine

import (
	"math"

	"github.com/feasly/feasibility-engine/internal/config"
	"github.com/feasly/feasibility-engine/pkg/constants"
	"github.com/feasly/feasibility-engine/pkg/mathutil"
)

// CoreMetrics holds the scalar profitability figures derived directly from a
// parameter set.
type CoreMetrics struct {
	MonthlyProfit        float64
	AnnualProfit         float64
	AfterTaxAnnualProfit float64
	ROI                  Metric
	AdjustedROI          Metric
	PaybackPeriod        Metric // months
	NPV                  Metric
	IRR                  Metric
}

// ComputeCoreMetrics derives the scalar metrics. ROI and its derivatives are
// indeterminate when the investment is not positive; the payback period is
// indeterminate when the monthly profit is not positive.
func ComputeCoreMetrics(params config.BusinessParameters, coeff Coefficients) CoreMetrics {
	monthlyProfit := params.MonthlyRevenue - params.MonthlyOperatingCosts
	annualProfit := monthlyProfit * constants.MonthsPerYear
	afterTax := annualProfit - mathutil.ApplyPercentage(annualProfit, *params.Advanced.TaxRate)

	metrics := CoreMetrics{
		MonthlyProfit:        monthlyProfit,
		AnnualProfit:         annualProfit,
		AfterTaxAnnualProfit: afterTax,
		ROI:                  Indeterminate(),
		AdjustedROI:          Indeterminate(),
		PaybackPeriod:        Indeterminate(),
		NPV:                  Indeterminate(),
		IRR:                  Indeterminate(),
	}

	if mathutil.IsPositive(params.Investment) {
		roi := mathutil.CalculatePercentage(annualProfit, params.Investment)
		metrics.ROI = Defined(roi)
		metrics.AdjustedROI = Defined(roi / coeff.RiskFactor)
		metrics.NPV = Defined(NetPresentValue(afterTax, params.Investment,
			*params.Advanced.DiscountRate, constants.ProjectionYears))
		metrics.IRR = Defined(ApproximateIRR(afterTax, params.Investment, constants.ProjectionYears))
	}

	if mathutil.IsPositive(monthlyProfit) {
		metrics.PaybackPeriod = Defined(params.Investment / monthlyProfit)
	}

	return metrics
}

// NetPresentValue computes the standard discounted-cashflow sum of a constant
// annual cashflow over the given horizon, net of the initial investment.
func NetPresentValue(cashflow, investment, discountRate float64, years int) float64 {
	rate := discountRate / constants.PercentageMultiplier
	npv := -investment
	for t := 1; t <= years; t++ {
		npv += cashflow / math.Pow(1+rate, float64(t))
	}
	return npv
}

// ApproximateIRR estimates the internal rate of return from the average
// annual return over the horizon. This is deliberately not a true
// root-finding IRR; the simplified formula is kept for compatibility with
// the published calculator.
func ApproximateIRR(cashflow, investment float64, years int) float64 {
	averageReturn := (cashflow*float64(years) - investment) / float64(years)
	return averageReturn / investment * constants.PercentageMultiplier
}

// MonthlyLoanPayment computes the monthly payment on an amortized loan using
// the standard amortization formula.
func MonthlyLoanPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if termMonths <= 0 || !mathutil.IsPositive(principal) {
		return 0
	}
	if mathutil.IsZero(annualInterestRate) {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicInterestRate / discountFactor
}
