package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	payPeriodPattern    = regexp.MustCompile(`(?i)\s*\bp/[amw]\b`)
	currencyPattern     = regexp.MustCompile(`[€$£]`)
	unitSuffixPattern   = regexp.MustCompile(`^(.*?\d)\s*(km|cm|kg|m)$`)
	abbreviationPattern = regexp.MustCompile(`^(\d*\.?\d+)\s*([KkM])$`)
)

// CleanNumeric strips currency symbols, percent signs, units, thousands separators and
// pay-period suffixes, and expands K/M abbreviations, leaving a string ready for numeric
// coercion. Already clean numeric strings are returned unchanged.
func CleanNumeric(value string) string {
	s := strings.TrimSpace(value)
	s = payPeriodPattern.ReplaceAllString(s, "")
	s = currencyPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "%", "")
	s = strings.TrimSpace(s)

	if m := unitSuffixPattern.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	if m := abbreviationPattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			mult := 1e3
			if m[2] == "M" {
				mult = 1e6
			}
			s = strconv.FormatFloat(math.Round(n*mult), 'f', -1, 64)
		}
	}

	return s
}

// ParseNumber cleans value and parses it as a float.
func ParseNumber(value string) (float64, error) {
	cleaned := CleanNumeric(value)
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &ParseError{Value: value, Message: "not a number", Cause: err}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, &ParseError{Value: value, Message: "not a finite number"}
	}
	return n, nil
}

// ParseHeight parses a height in metres; centimetre values are converted.
func ParseHeight(value string) (float64, error) {
	n, err := ParseNumber(value)
	if err != nil {
		return 0, err
	}
	if strings.HasSuffix(strings.TrimSpace(value), "cm") {
		return n / 100, nil
	}
	return n, nil
}
