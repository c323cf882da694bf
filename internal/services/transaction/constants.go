package transaction

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Directions from the caller's perspective.
const (
	DirectionDebit  = "debit"
	DirectionCredit = "credit"
)

// MaxExportRange bounds export windows to one year.
const MaxExportRangeDays = 366
