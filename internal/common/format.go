package common

import (
	"fmt"
	"math"
)

// FormatCurrency renders a dollar amount in compact form: $3.2B, $12.5M,
// $850.0K, or plain dollars below a thousand.
func FormatCurrency(amount float64) string {
	abs := math.Abs(amount)
	sign := ""
	if amount < 0 {
		sign = "-"
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%s$%.1fB", sign, abs/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, abs/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s$%.1fK", sign, abs/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, abs)
	}
}

// FormatPercent renders a percentage value with one decimal place.
// The input is a percentage already, not a ratio: 14.97 -> "15.0%".
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// FormatMultiple renders an investment multiple: 4.2 -> "4.2x".
func FormatMultiple(value float64) string {
	return fmt.Sprintf("%.1fx", value)
}

// FormatYears renders a payback period: 3.8 -> "3.8 years".
func FormatYears(value float64) string {
	return fmt.Sprintf("%.1f years", value)
}
