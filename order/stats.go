package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stats summarizes one export run.
type Stats struct {
	OriginalRows       int
	ProcessedRows      int
	SkippedRows        int
	ConsolidationRatio float64
	ExportedAt         time.Time
}

// NewStats computes the consolidation ratio as the percentage of input rows
// removed by consolidation, rounded to two decimals.
func NewStats(originalRows, processedRows, skippedRows int, at time.Time) Stats {
	return Stats{
		OriginalRows:       originalRows,
		ProcessedRows:      processedRows,
		SkippedRows:        skippedRows,
		ConsolidationRatio: ConsolidationRatio(originalRows, processedRows),
		ExportedAt:         at.UTC(),
	}
}

func ConsolidationRatio(originalRows, processedRows int) float64 {
	if originalRows <= 0 {
		return 0
	}
	ratio := decimal.NewFromInt(int64(originalRows - processedRows)).
		Div(decimal.NewFromInt(int64(originalRows))).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	value, _ := ratio.Float64()
	return value
}
