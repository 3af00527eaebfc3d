package engine

import (
	"math"

	"github.com/feasly/feasibility-engine/pkg/constants"
	"github.com/feasly/feasibility-engine/pkg/mathutil"
)

// BreakEvenAnalysis is the cumulative-profit schedule toward recovering the
// initial investment.
type BreakEvenAnalysis struct {
	// Months is the exact break-even point in months, indeterminate when the
	// monthly profit is not positive.
	Months Metric `json:"months"`
	// Amount is the investment being recovered.
	Amount float64 `json:"amount"`
	// Data is the per-month cumulative-profit series starting at -investment.
	Data []BreakEvenPoint `json:"data"`
}

// BreakEvenPoint is one month of the cumulative-profit series.
type BreakEvenPoint struct {
	Month            int     `json:"month"`
	CumulativeProfit float64 `json:"cumulativeProfit"`
}

// BuildBreakEven produces the break-even schedule. The series starts at
// -investment and steps by the monthly profit, extending a few months past
// break-even but never beyond the schedule cap. A non-positive monthly
// profit never breaks even: the result carries an indeterminate month count
// and an empty series rather than stepping a non-positive increment.
func BuildBreakEven(investment, monthlyProfit float64) BreakEvenAnalysis {
	if !mathutil.IsPositive(monthlyProfit) {
		return BreakEvenAnalysis{Months: Indeterminate(), Amount: 0, Data: nil}
	}

	months := investment / monthlyProfit
	horizon := int(math.Ceil(months)) + constants.BreakEvenPaddingMonths
	if horizon > constants.BreakEvenMaxMonths {
		horizon = constants.BreakEvenMaxMonths
	}

	data := make([]BreakEvenPoint, 0, horizon+1)
	for month := 0; month <= horizon; month++ {
		data = append(data, BreakEvenPoint{
			Month:            month,
			CumulativeProfit: mathutil.Round(-investment + monthlyProfit*float64(month)),
		})
	}

	return BreakEvenAnalysis{
		Months: Defined(months),
		Amount: investment,
		Data:   data,
	}
}
