package domain

import (
	"strconv"
	"strings"
)

// ParseDecimal parses a number that may use a comma as decimal separator
// ("16,3872" or "4,1653E-06"). Surrounding spaces are ignored.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}
