package camping

import "fmt"

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName maps a month number 1..12 to its English name.
func MonthName(month int) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("month out of range: %d", month)
	}
	return monthNames[month-1], nil
}
