package exporter

import (
	"fmt"
)

// formatFloat formats an index value with exactly 2 decimal places, so
// 13.4 appears as 13.40 in the CSV.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int value for CSV output.
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
