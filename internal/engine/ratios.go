package engine

import (
	"github.com/feasly/feasibility-engine/internal/config"
	"github.com/feasly/feasibility-engine/pkg/constants"
	"github.com/feasly/feasibility-engine/pkg/mathutil"
)

// FinancialRatios are the derived health ratios. Every ratio guards its
// denominator and reports indeterminate instead of dividing by zero.
type FinancialRatios struct {
	// ProfitMargin is monthly profit over monthly revenue, percent.
	ProfitMargin Metric `json:"profitMargin"`
	// ROIC is after-tax annual profit over invested capital, percent.
	ROIC Metric `json:"roic"`
	// DebtServiceCoverage is monthly profit over the assumed monthly debt
	// service on the financed share of the investment.
	DebtServiceCoverage Metric `json:"debtServiceCoverage"`
	// CashReserveRatio is months of operating costs covered by the assumed
	// cash reserve.
	CashReserveRatio Metric `json:"cashReserveRatio"`
	// OperatingExpenseRatio is monthly operating costs over monthly revenue,
	// percent.
	OperatingExpenseRatio Metric `json:"operatingExpenseRatio"`
}

// ComputeRatios derives the financial ratios from the parameters and core
// metrics. The debt-service assumption amortizes the financed share of the
// investment (loanPercent at loanInterestRate) over the standard term.
func ComputeRatios(params config.BusinessParameters, metrics CoreMetrics) FinancialRatios {
	ratios := FinancialRatios{
		ProfitMargin:          Indeterminate(),
		ROIC:                  Indeterminate(),
		DebtServiceCoverage:   Indeterminate(),
		CashReserveRatio:      Indeterminate(),
		OperatingExpenseRatio: Indeterminate(),
	}

	if mathutil.IsPositive(params.MonthlyRevenue) {
		ratios.ProfitMargin = Defined(mathutil.CalculatePercentage(metrics.MonthlyProfit, params.MonthlyRevenue))
		ratios.OperatingExpenseRatio = Defined(mathutil.CalculatePercentage(params.MonthlyOperatingCosts, params.MonthlyRevenue))
	}

	if mathutil.IsPositive(params.Investment) {
		ratios.ROIC = Defined(mathutil.CalculatePercentage(metrics.AfterTaxAnnualProfit, params.Investment))
	}

	loanPrincipal := mathutil.ApplyPercentage(params.Investment, *params.Advanced.LoanPercent)
	debtService := MonthlyLoanPayment(loanPrincipal, *params.Advanced.LoanInterestRate, constants.LoanTermMonths)
	if mathutil.IsPositive(debtService) {
		ratios.DebtServiceCoverage = Defined(metrics.MonthlyProfit / debtService)
	}

	if mathutil.IsPositive(params.MonthlyOperatingCosts) {
		reserve := mathutil.ApplyPercentage(params.Investment, constants.CashReservePercent)
		ratios.CashReserveRatio = Defined(reserve / params.MonthlyOperatingCosts)
	}

	return ratios
}
