package engine

import (
	"github.com/feasly/feasibility-engine/internal/config"
	"github.com/feasly/feasibility-engine/pkg/mathutil"
)

// Coefficients are the per-business-type multipliers driving the projection.
// RiskFactor is fixed per type; GrowthPotential starts from a per-type base
// and is adjusted by the type's advanced parameters.
type Coefficients struct {
	RiskFactor        float64
	GrowthPotential   float64 // percent per year
	SeasonalityImpact float64
}

// CoefficientsFor derives the coefficient set for a parameter set. The
// parameters must already be normalized. When the common growthRate tunable
// is set it overrides the derived growth potential.
func CoefficientsFor(params config.BusinessParameters) Coefficients {
	adv := params.Advanced

	var c Coefficients
	switch params.BusinessType {
	case config.BusinessTypeCafe:
		c = Coefficients{
			RiskFactor:        1.2,
			GrowthPotential:   4 + *adv.SeatingCapacity/50,
			SeasonalityImpact: 0.2,
		}
	case config.BusinessTypeRetail:
		c = Coefficients{
			RiskFactor:        1.1,
			GrowthPotential:   3.5 + *adv.SalesPerSqFt/200 + *adv.InventoryTurnover/10,
			SeasonalityImpact: 0.3,
		}
	case config.BusinessTypeService:
		c = Coefficients{
			RiskFactor:        0.9,
			GrowthPotential:   5 + *adv.UtilizationRate/20,
			SeasonalityImpact: 0.15,
		}
	case config.BusinessTypeManufacturing:
		c = Coefficients{
			RiskFactor:        1.3,
			GrowthPotential:   3 + *adv.ProductionCapacity/1000 - *adv.DefectRate/10,
			SeasonalityImpact: 0.1,
		}
	default:
		// Unknown types are rejected by validation before reaching here;
		// fall back to neutral coefficients for safety.
		c = Coefficients{RiskFactor: 1.0, GrowthPotential: 3, SeasonalityImpact: 0.15}
	}

	if mathutil.IsPositive(*adv.GrowthRate) {
		c.GrowthPotential = *adv.GrowthRate
	}

	return c
}
