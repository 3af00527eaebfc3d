// Package constants provides shared constants for the feasibility engine.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// QuartersPerYear is the number of quarters in a year
	QuartersPerYear = 4

	// ProjectionYears is the horizon for forward projections
	ProjectionYears = 5

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// GrowthDecayFactor is the year-over-year diminishing-returns multiplier
	// applied to the effective revenue growth rate
	GrowthDecayFactor = 0.9

	// BreakEvenPaddingMonths is how many months past break-even the schedule extends
	BreakEvenPaddingMonths = 3

	// BreakEvenMaxMonths caps the break-even schedule length
	BreakEvenMaxMonths = 36

	// LoanTermMonths is the assumed amortization term backing the
	// debt-service coverage ratio
	LoanTermMonths = 120

	// CashReservePercent is the share of the initial investment assumed held
	// back as an operating cash reserve
	CashReservePercent = 15.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
