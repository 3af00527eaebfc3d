// Package output provides utilities for formatting and displaying
// projection results.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/feasly/feasibility-engine/internal/engine"
	"github.com/feasly/feasibility-engine/pkg/mathutil"
)

// NamedProjection pairs a scenario name with its computed projection.
type NamedProjection struct {
	Name       string                   `json:"name"`
	Projection *engine.ProjectionResult `json:"projection"`
}

// money renders a currency amount with the sign ahead of the symbol, so
// losses read as -$1,234.00.
func money(p *message.Printer, amount float64) string {
	if mathutil.IsNegative(amount) {
		return p.Sprintf("-$%.2f", -amount)
	}
	return p.Sprintf("$%.2f", amount)
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(results []NamedProjection) {
	p := message.NewPrinter(language.English)
	for _, result := range results {
		proj := result.Projection
		fmt.Printf("--- Results for scenario %s ---\n", result.Name)
		fmt.Printf("Monthly profit        | %s\n", money(p, proj.MonthlyProfit))
		fmt.Printf("Annual profit         | %s\n", money(p, proj.AnnualProfit))
		fmt.Printf("After-tax profit      | %s\n", money(p, proj.AfterTaxAnnualProfit))
		fmt.Printf("ROI                   | %s%%\n", proj.ROI)
		fmt.Printf("Risk-adjusted ROI     | %s%%\n", proj.AdjustedROI)
		fmt.Printf("Payback period        | %s months\n", proj.PaybackPeriod)
		fmt.Printf("NPV (5y)              | %s\n", proj.NPV)
		fmt.Printf("IRR (approx)          | %s%%\n", proj.IRR)
		fmt.Printf("Overall risk          | %.1f / 10\n", proj.RiskAssessment.Overall)
		fmt.Printf("\nYear | Revenue        | Costs          | Profit\n")
		fmt.Printf("____ | ______________ | ______________ | ______________\n")
		for _, year := range proj.FiveYearProjection {
			fmt.Printf("%4d | %s | %s | %s\n", year.Year, money(p, year.Revenue), money(p, year.Costs), money(p, year.Profit))
		}
		fmt.Printf("\n%s\n", proj.Insights.Summary)
		printLines("Opportunities", proj.Insights.Opportunities)
		printLines("Risks", proj.Insights.Risks)
		printLines("Recommendations", proj.Insights.Recommendations)
		if len(results) > 1 {
			fmt.Printf("\n")
		}
	}
}

func printLines(header string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Printf("%s:\n", header)
	for _, line := range lines {
		fmt.Printf("  - %s\n", line)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []NamedProjection) {
	fmt.Print(CsvString(results))
}

// CsvString renders the five-year projections of all scenarios as CSV, one
// row per year with per-scenario revenue, cost, and profit columns.
func CsvString(results []NamedProjection) string {
	var b strings.Builder

	b.WriteString(`"year"`)
	for _, result := range results {
		fmt.Fprintf(&b, `,"revenue (%s)","costs (%s)","profit (%s)"`, result.Name, result.Name, result.Name)
	}
	b.WriteString("\n")

	years := 0
	for _, result := range results {
		if len(result.Projection.FiveYearProjection) > years {
			years = len(result.Projection.FiveYearProjection)
		}
	}

	for i := 0; i < years; i++ {
		fmt.Fprintf(&b, `"%d"`, i+1)
		for _, result := range results {
			projection := result.Projection.FiveYearProjection
			if i < len(projection) {
				fmt.Fprintf(&b, `,"%.2f","%.2f","%.2f"`, projection[i].Revenue, projection[i].Costs, projection[i].Profit)
			} else {
				b.WriteString(`,"","",""`)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// JSONFormat outputs the full result bundles as indented JSON.
func JSONFormat(results []NamedProjection) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
