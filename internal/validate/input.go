package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrDollarFormat = errors.New("cost must be digits with optional decimal point and up to two decimals (e.g., 12 or 3.50)")
	ErrNumberFormat = errors.New("number must be digits with optional decimals (e.g., 3 or 0.75)")
)

var (
	dollarPattern = regexp.MustCompile(`^\d+(\.\d{0,2})?$`)
	numberPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// ParseDollar parses an amount with at most two decimals.
func ParseDollar(s string) (float64, error) {
	if !dollarPattern.MatchString(s) {
		return 0, ErrDollarFormat
	}
	return strconv.ParseFloat(strings.TrimSuffix(s, "."), 64)
}

// ParseWeight parses a split weight. A blank weight is zero.
func ParseWeight(s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	if !numberPattern.MatchString(s) {
		return 0, ErrNumberFormat
	}
	return strconv.ParseFloat(s, 64)
}

// ParseWeights parses a comma-separated weight list, e.g. "1,1,0" or "2,,1".
func ParseWeights(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, len(parts))
	for i, part := range parts {
		w, err := ParseWeight(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}
