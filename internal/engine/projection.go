package engine

import (
	"math"

	"github.com/feasly/feasibility-engine/internal/config"
	"github.com/feasly/feasibility-engine/pkg/constants"
)

// YearProjection is one year of the forward projection, decomposed into
// seasonally-weighted quarters.
type YearProjection struct {
	Year             int       `json:"year"`
	Revenue          float64   `json:"revenue"`
	Costs            float64   `json:"costs"`
	Profit           float64   `json:"profit"`
	GrowthRate       float64   `json:"growthRate"` // effective rate applied this year, percent
	QuarterlyRevenue []float64 `json:"quarterlyRevenue"`
	QuarterlyCosts   []float64 `json:"quarterlyCosts"`
}

// MonthProjection is one month of the year-1 breakdown.
type MonthProjection struct {
	Month   int     `json:"month"` // 1..12
	Label   string  `json:"label"` // Jan..Dec
	Revenue float64 `json:"revenue"`
	Costs   float64 `json:"costs"`
	Profit  float64 `json:"profit"`
}

// monthLabels are the calendar month abbreviations for the year-1 breakdown.
var monthLabels = [constants.MonthsPerYear]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// monthlySeasonalFactors weight year-1 revenue by calendar month: a trough in
// January and February, a mild spring increase, a summer peak, a moderate
// fall, and a December peak. The twelve factors sum to 12.00 so the monthly
// breakdown resums to the year total.
var monthlySeasonalFactors = [constants.MonthsPerYear]float64{
	0.78, 0.82, 0.98, 1.02, 1.06, 1.10,
	1.14, 1.10, 0.98, 0.96, 0.90, 1.16,
}

// EffectiveGrowthRate returns the revenue growth rate applied in a given
// projection year. Growth diminishes year over year.
func EffectiveGrowthRate(growthPotential float64, year int) float64 {
	return growthPotential * math.Pow(constants.GrowthDecayFactor, float64(year-1))
}

// quarterlyFactors returns the four seasonal weights for a business type's
// seasonality impact. The factors always sum to exactly 4 so each year's
// quarters resum to the year total.
func quarterlyFactors(impact float64) [constants.QuartersPerYear]float64 {
	return [constants.QuartersPerYear]float64{
		1 - impact*0.5,
		1 + impact*0.2,
		1 - impact*0.2,
		1 + impact*0.5,
	}
}

// dampen halves the distance of a seasonal factor from 1; cost seasonality
// swings half as far as revenue seasonality.
func dampen(factor float64) float64 {
	return 1 + (factor-1)/2
}

// BuildFiveYearProjection produces the forward projection. Revenue grows by
// the diminishing effective growth rate; costs grow by the inflation rate.
func BuildFiveYearProjection(params config.BusinessParameters, coeff Coefficients) []YearProjection {
	factors := quarterlyFactors(coeff.SeasonalityImpact)

	revenue := params.MonthlyRevenue * constants.MonthsPerYear
	costs := params.MonthlyOperatingCosts * constants.MonthsPerYear
	inflation := *params.Advanced.InflationRate / constants.PercentageMultiplier

	years := make([]YearProjection, 0, constants.ProjectionYears)
	for year := 1; year <= constants.ProjectionYears; year++ {
		growth := EffectiveGrowthRate(coeff.GrowthPotential, year)
		revenue *= 1 + growth/constants.PercentageMultiplier
		costs *= 1 + inflation

		quarterlyRevenue := make([]float64, constants.QuartersPerYear)
		quarterlyCosts := make([]float64, constants.QuartersPerYear)
		for q, factor := range factors {
			quarterlyRevenue[q] = revenue * factor / constants.QuartersPerYear
			quarterlyCosts[q] = costs * dampen(factor) / constants.QuartersPerYear
		}

		years = append(years, YearProjection{
			Year:             year,
			Revenue:          revenue,
			Costs:            costs,
			Profit:           revenue - costs,
			GrowthRate:       growth,
			QuarterlyRevenue: quarterlyRevenue,
			QuarterlyCosts:   quarterlyCosts,
		})
	}

	return years
}

// BuildMonthlyBreakdown decomposes the first projection year into twelve
// seasonally-weighted months using the fixed calendar table.
func BuildMonthlyBreakdown(yearOne YearProjection) []MonthProjection {
	months := make([]MonthProjection, 0, constants.MonthsPerYear)
	for i := 0; i < constants.MonthsPerYear; i++ {
		factor := monthlySeasonalFactors[i]
		revenue := yearOne.Revenue * factor / constants.MonthsPerYear
		costs := yearOne.Costs * dampen(factor) / constants.MonthsPerYear
		months = append(months, MonthProjection{
			Month:   i + 1,
			Label:   monthLabels[i],
			Revenue: revenue,
			Costs:   costs,
			Profit:  revenue - costs,
		})
	}
	return months
}
