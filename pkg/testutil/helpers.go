// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/feasly/feasibility-engine/internal/config"
	"github.com/feasly/feasibility-engine/pkg/mathutil"
)

// CafeParams returns a baseline cafe parameter set used across tests:
// $100k investment, $30k monthly revenue, $18k monthly costs.
func CafeParams() config.BusinessParameters {
	params := config.BusinessParameters{
		BusinessType:          config.BusinessTypeCafe,
		Investment:            100000,
		MonthlyRevenue:        30000,
		MonthlyOperatingCosts: 18000,
	}
	params.Normalize()
	return params
}

// ParamsFor returns a normalized baseline parameter set for the given
// business type with the standard test amounts.
func ParamsFor(businessType string) config.BusinessParameters {
	params := config.BusinessParameters{
		BusinessType:          businessType,
		Investment:            100000,
		MonthlyRevenue:        30000,
		MonthlyOperatingCosts: 18000,
	}
	params.Normalize()
	return params
}

// CloseTo reports whether two floats agree within the given tolerance.
func CloseTo(a, b, tolerance float64) bool {
	return mathutil.WithinTolerance(a, b, tolerance)
}
