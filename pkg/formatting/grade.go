// Package formatting provides display formatting for grades and camper ages.
package formatting

import "fmt"

// Grade levels outside the supported range are formatted as "Unknown".
const (
	GradePreK         = -1
	GradeKindergarten = 0
	GradeMax          = 12
)

// GradeDisplay formats a validated grade level for display.
// -1 is Pre-K, 0 is Kindergarten, 1..12 are ordinal grades.
func GradeDisplay(grade int) string {
	switch {
	case grade == GradePreK:
		return "Pre-K"
	case grade == GradeKindergarten:
		return "Kindergarten"
	case grade >= 1 && grade <= GradeMax:
		return fmt.Sprintf("%s Grade", Ordinal(grade))
	default:
		return "Unknown"
	}
}

// Ordinal returns the English ordinal form of n (1st, 2nd, 3rd, 4th, ...).
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
