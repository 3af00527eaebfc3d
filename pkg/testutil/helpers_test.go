package testutil

import (
	"testing"

	"github.com/feasly/feasibility-engine/internal/config"
)

func TestCafeParamsNormalized(t *testing.T) {
	params := CafeParams()

	if params.BusinessType != config.BusinessTypeCafe {
		t.Errorf("BusinessType = %s, expected cafe", params.BusinessType)
	}
	if params.Advanced.TaxRate == nil || *params.Advanced.TaxRate == 0 {
		t.Error("expected normalization to apply the default tax rate")
	}
	if err := params.Validate(); err != nil {
		t.Errorf("baseline params should validate: %v", err)
	}
}

func TestParamsForEachType(t *testing.T) {
	for _, businessType := range []string{
		config.BusinessTypeCafe, config.BusinessTypeRetail,
		config.BusinessTypeService, config.BusinessTypeManufacturing,
	} {
		params := ParamsFor(businessType)
		if err := params.Validate(); err != nil {
			t.Errorf("%s params should validate: %v", businessType, err)
		}
	}
}

func TestCloseTo(t *testing.T) {
	if !CloseTo(1.0, 1.005, 0.01) {
		t.Error("CloseTo(1.0, 1.005, 0.01) should be true")
	}
	if CloseTo(1.0, 1.02, 0.01) {
		t.Error("CloseTo(1.0, 1.02, 0.01) should be false")
	}
}
