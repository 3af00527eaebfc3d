package output

import (
	"strings"
	"testing"

	"github.com/feasly/feasibility-engine/internal/engine"
	"github.com/feasly/feasibility-engine/pkg/testutil"
)

func sampleResults(t *testing.T) []NamedProjection {
	t.Helper()
	projectionEngine := engine.New(nil)

	cafe, err := projectionEngine.ComputeProjection(testutil.CafeParams())
	if err != nil {
		t.Fatalf("ComputeProjection failed: %v", err)
	}
	retail, err := projectionEngine.ComputeProjection(testutil.ParamsFor("retail"))
	if err != nil {
		t.Fatalf("ComputeProjection failed: %v", err)
	}

	return []NamedProjection{
		{Name: "cafe baseline", Projection: cafe},
		{Name: "retail baseline", Projection: retail},
	}
}

func TestCsvString(t *testing.T) {
	csv := CsvString(sampleResults(t))

	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 6 { // header + 5 projection years
		t.Fatalf("got %d CSV lines, expected 6", len(lines))
	}

	header := lines[0]
	for _, expected := range []string{`"year"`, `"revenue (cafe baseline)"`, `"profit (retail baseline)"`} {
		if !strings.Contains(header, expected) {
			t.Errorf("header missing %s: %s", expected, header)
		}
	}

	if !strings.HasPrefix(lines[1], `"1"`) || !strings.HasPrefix(lines[5], `"5"`) {
		t.Errorf("year rows out of order:\n%s", csv)
	}

	// Two scenarios, three columns each, plus the year column.
	if got := strings.Count(lines[1], ","); got != 6 {
		t.Errorf("row has %d separators, expected 6: %s", got, lines[1])
	}
}

func TestCsvStringEmpty(t *testing.T) {
	csv := CsvString(nil)
	if strings.TrimSpace(csv) != `"year"` {
		t.Errorf("empty result CSV = %q, expected bare header", csv)
	}
}
