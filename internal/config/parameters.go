package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/feasly/feasibility-engine/pkg/mathutil"
)

// ErrInvalidInput indicates a business parameter set that fails boundary
// validation and cannot be projected.
var ErrInvalidInput = errors.New("invalid input")

// Business types supported by the coefficient tables.
const (
	BusinessTypeCafe          = "cafe"
	BusinessTypeRetail        = "retail"
	BusinessTypeService       = "service"
	BusinessTypeManufacturing = "manufacturing"
)

// BusinessParameters holds one complete input set for a projection. It is
// constructed fresh for every calculation and never mutated by the engine.
type BusinessParameters struct {
	BusinessType          string             `mapstructure:"businessType" json:"businessType" yaml:"businessType" validate:"required,oneof=cafe retail service manufacturing"`
	Investment            float64            `mapstructure:"investment" json:"investment" yaml:"investment" validate:"gte=0"`
	MonthlyRevenue        float64            `mapstructure:"monthlyRevenue" json:"monthlyRevenue" yaml:"monthlyRevenue" validate:"gte=0"`
	MonthlyOperatingCosts float64            `mapstructure:"monthlyOperatingCosts" json:"monthlyOperatingCosts" yaml:"monthlyOperatingCosts" validate:"gte=0"`
	Advanced              AdvancedParameters `mapstructure:"advanced" json:"advanced" yaml:"advanced"`

	// RiskSeed overrides the derived seed for the risk sub-score jitter.
	// Zero means "derive from the parameter set" so identical inputs always
	// produce identical output.
	RiskSeed int64 `mapstructure:"riskSeed" json:"riskSeed,omitempty" yaml:"riskSeed,omitempty"`
}

// AdvancedParameters carries the tunables the UI exposes as sliders. Fields
// are pointers so an absent value is distinguishable from an explicit zero:
// a nil field is replaced by its documented default during normalization,
// while a set value is kept and clamped to the slider bounds when out of
// range. After Normalize every field is non-nil.
type AdvancedParameters struct {
	// Common tunables
	TaxRate          *float64 `mapstructure:"taxRate" json:"taxRate,omitempty" yaml:"taxRate,omitempty"`
	DiscountRate     *float64 `mapstructure:"discountRate" json:"discountRate,omitempty" yaml:"discountRate,omitempty"`
	GrowthRate       *float64 `mapstructure:"growthRate" json:"growthRate,omitempty" yaml:"growthRate,omitempty"`
	InflationRate    *float64 `mapstructure:"inflationRate" json:"inflationRate,omitempty" yaml:"inflationRate,omitempty"`
	MarketingPercent *float64 `mapstructure:"marketingPercent" json:"marketingPercent,omitempty" yaml:"marketingPercent,omitempty"`
	LoanPercent      *float64 `mapstructure:"loanPercent" json:"loanPercent,omitempty" yaml:"loanPercent,omitempty"`
	LoanInterestRate *float64 `mapstructure:"loanInterestRate" json:"loanInterestRate,omitempty" yaml:"loanInterestRate,omitempty"`

	// Cafe tunables
	SeatingCapacity *float64 `mapstructure:"seatingCapacity" json:"seatingCapacity,omitempty" yaml:"seatingCapacity,omitempty"`
	AvgTicket       *float64 `mapstructure:"avgTicket" json:"avgTicket,omitempty" yaml:"avgTicket,omitempty"`
	TurnoverRate    *float64 `mapstructure:"turnoverRate" json:"turnoverRate,omitempty" yaml:"turnoverRate,omitempty"`

	// Retail tunables
	SalesPerSqFt      *float64 `mapstructure:"salesPerSqFt" json:"salesPerSqFt,omitempty" yaml:"salesPerSqFt,omitempty"`
	InventoryTurnover *float64 `mapstructure:"inventoryTurnover" json:"inventoryTurnover,omitempty" yaml:"inventoryTurnover,omitempty"`

	// Service tunables
	BillableHours   *float64 `mapstructure:"billableHours" json:"billableHours,omitempty" yaml:"billableHours,omitempty"`
	UtilizationRate *float64 `mapstructure:"utilizationRate" json:"utilizationRate,omitempty" yaml:"utilizationRate,omitempty"`

	// Manufacturing tunables
	ProductionCapacity *float64 `mapstructure:"productionCapacity" json:"productionCapacity,omitempty" yaml:"productionCapacity,omitempty"`
	DefectRate         *float64 `mapstructure:"defectRate" json:"defectRate,omitempty" yaml:"defectRate,omitempty"`
}

// Float64 returns a pointer to v, for setting optional advanced parameters.
func Float64(v float64) *float64 {
	return &v
}

// parameterRange documents the slider bounds and default for one tunable.
type parameterRange struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

// advancedRanges is the authoritative bounds table for all advanced
// parameters. The UI sliders express the same bounds.
var advancedRanges = map[string]parameterRange{
	"taxRate":            {"taxRate", 0, 50, 25},
	"discountRate":       {"discountRate", 0, 20, 10},
	"growthRate":         {"growthRate", 0, 30, 0},
	"inflationRate":      {"inflationRate", 0, 15, 3},
	"marketingPercent":   {"marketingPercent", 0, 30, 5},
	"loanPercent":        {"loanPercent", 0, 90, 60},
	"loanInterestRate":   {"loanInterestRate", 0, 25, 8},
	"seatingCapacity":    {"seatingCapacity", 10, 200, 50},
	"avgTicket":          {"avgTicket", 5, 100, 15},
	"turnoverRate":       {"turnoverRate", 1, 10, 4},
	"salesPerSqFt":       {"salesPerSqFt", 100, 1000, 300},
	"inventoryTurnover":  {"inventoryTurnover", 2, 20, 8},
	"billableHours":      {"billableHours", 80, 250, 160},
	"utilizationRate":    {"utilizationRate", 40, 95, 75},
	"productionCapacity": {"productionCapacity", 100, 10000, 1000},
	"defectRate":         {"defectRate", 0, 10, 2},
}

// AdvancedParameterRange returns the documented bounds and default for a
// tunable name, if known.
func AdvancedParameterRange(name string) (min, max, def float64, ok bool) {
	r, found := advancedRanges[name]
	if !found {
		return 0, 0, 0, false
	}
	return r.Min, r.Max, r.Default, true
}

var paramValidator = validator.New()

// Validate checks the structural constraints on the parameter set. It returns
// an error wrapping ErrInvalidInput when the business type is unknown or any
// core amount is negative. Zero investment is accepted here; the engine flags
// the affected metrics as indeterminate instead.
func (p *BusinessParameters) Validate() error {
	if err := paramValidator.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("%w: field %s fails constraint %s", ErrInvalidInput, first.Field(), first.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// Normalize applies defaults to unset (nil) advanced parameters and clamps
// set values to their documented bounds. Explicit in-range values, including
// zero, pass through untouched. It returns one warning per clamped field.
func (p *BusinessParameters) Normalize() []string {
	var warnings []string

	fields := []struct {
		name string
		val  **float64
	}{
		{"taxRate", &p.Advanced.TaxRate},
		{"discountRate", &p.Advanced.DiscountRate},
		{"growthRate", &p.Advanced.GrowthRate},
		{"inflationRate", &p.Advanced.InflationRate},
		{"marketingPercent", &p.Advanced.MarketingPercent},
		{"loanPercent", &p.Advanced.LoanPercent},
		{"loanInterestRate", &p.Advanced.LoanInterestRate},
		{"seatingCapacity", &p.Advanced.SeatingCapacity},
		{"avgTicket", &p.Advanced.AvgTicket},
		{"turnoverRate", &p.Advanced.TurnoverRate},
		{"salesPerSqFt", &p.Advanced.SalesPerSqFt},
		{"inventoryTurnover", &p.Advanced.InventoryTurnover},
		{"billableHours", &p.Advanced.BillableHours},
		{"utilizationRate", &p.Advanced.UtilizationRate},
		{"productionCapacity", &p.Advanced.ProductionCapacity},
		{"defectRate", &p.Advanced.DefectRate},
	}

	for _, field := range fields {
		r := advancedRanges[field.name]
		if *field.val == nil {
			*field.val = Float64(r.Default)
			continue
		}
		value := **field.val
		clamped := mathutil.Clamp(value, r.Min, r.Max)
		if clamped != value {
			warnings = append(warnings, fmt.Sprintf("advanced parameter %s value %.2f outside range [%.2f, %.2f], clamped to %.2f",
				r.Name, value, r.Min, r.Max, clamped))
			// Replace the pointer rather than writing through it, so a copy
			// of the struct never mutates the original's values.
			*field.val = Float64(clamped)
		}
	}

	return warnings
}
