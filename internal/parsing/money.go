package parsing

import (
	"math"
	"strconv"
	"strings"
)

// NotForSaleValue is the transfer value assigned to players listed as not for sale.
// It dominates rankings and similarity vectors that include Transfer Value.
const NotForSaleValue = 1_000_000_000

const (
	notForSaleLabel = "not for sale"
	rangeSeparator  = " - "
)

// ParseMoney parses a monetary field: a scalar ("€1.5M", "250000"), a range
// ("€1.5M - €2M", returning the midpoint) or the not-for-sale label.
// Unrecognised text such as "Unknown" yields NaN, meaning the value is unknown.
func ParseMoney(value string) float64 {
	s := strings.TrimSpace(value)
	if strings.EqualFold(s, notForSaleLabel) {
		return NotForSaleValue
	}

	if lower, upper, ok := strings.Cut(s, rangeSeparator); ok {
		lo, err := strconv.ParseFloat(CleanNumeric(lower), 64)
		if err != nil {
			return math.NaN()
		}
		hi, err := strconv.ParseFloat(CleanNumeric(upper), 64)
		if err != nil {
			return math.NaN()
		}
		return (lo + hi) / 2
	}

	n, err := strconv.ParseFloat(CleanNumeric(s), 64)
	if err != nil || math.IsInf(n, 0) {
		return math.NaN()
	}
	return n
}

// ParseSalary parses a wage such as "€12,500 p/w". Placeholders and blanks are zero.
func ParseSalary(value string) (int64, error) {
	s := strings.TrimSpace(value)
	if s == "" || s == "-" || strings.EqualFold(s, "nan") {
		return 0, nil
	}
	n, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &ParseError{Value: value, Message: "salary is negative"}
	}
	return int64(n), nil
}
