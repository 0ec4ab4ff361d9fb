package forecast

import (
	"fmt"
	"math"
	"time"
)

const daysPerMonth = 30.44

// FormatDuration renders the span between two timestamps as
// "H hours M minutes". Hours do not roll over into days.
func FormatDuration(start, end time.Time) string {
	minutes := int(end.Sub(start).Minutes())
	return fmt.Sprintf("%d hours %d minutes", minutes/60, minutes%60)
}

// AgeInMonths reports the child's age in whole months, rounding up, so a baby
// born exactly 30 days ago counts as 1 month old.
func AgeInMonths(birthDate string, now time.Time) int {
	birth, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return 0
	}
	days := math.Abs(now.Sub(birth).Hours()) / 24
	return int(math.Ceil(days / daysPerMonth))
}
