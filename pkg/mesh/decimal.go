package mesh

import (
	"strconv"
	"strings"
)

// FormatDecimal formats x with the given number of digits after the point
// and strips trailing zeros, and the point itself when nothing follows it.
func FormatDecimal(x float64, precision int) string {
	s := strconv.FormatFloat(x, 'f', precision, 64)
	if !strings.Contains(s, ".") || !strings.HasSuffix(s, "0") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
