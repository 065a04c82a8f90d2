package utils

import (
	"fmt"
	"strings"
)

// FormatCurrency formatea un monto en bolivianos: Bs 1.234,50
func FormatCurrency(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := strings.HasPrefix(integerPart, "-")
	if negative {
		integerPart = integerPart[1:]
	}

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	result := "Bs " + strings.Join(groups, ".") + "," + decimalPart
	if negative {
		result = "Bs -" + strings.Join(groups, ".") + "," + decimalPart
	}
	return result
}
