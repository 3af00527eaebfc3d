package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Metric is a numeric result that may be indeterminate. Division by a zero
// denominator never produces NaN or Infinity in a ProjectionResult; the
// affected metric is marked invalid instead and marshals to JSON null.
type Metric struct {
	Value float64
	Valid bool
}

// Defined returns a well-defined metric.
func Defined(value float64) Metric {
	return Metric{Value: value, Valid: true}
}

// Indeterminate returns a metric with no defined value.
func Indeterminate() Metric {
	return Metric{}
}

// String renders the metric for display, using a neutral placeholder when
// the value is indeterminate.
func (m Metric) String() string {
	if !m.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", m.Value)
}

// MarshalJSON encodes a defined metric as a plain number and an
// indeterminate one as null.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts a number or null.
func (m *Metric) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = Indeterminate()
		return nil
	}
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*m = Defined(value)
	return nil
}
