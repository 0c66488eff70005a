// Package moneyfmt parses and formats monetary amounts the way users type
// them: both comma- and dot-decimal notations are accepted, with or without
// thousands separators.
package moneyfmt

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// Parse converts a user-entered amount to a float64 rounded to two decimals.
//
//	"10,50"    -> 10.50
//	"10.50"    -> 10.50
//	"1.234,56" -> 1234.56
//	"1,234.56" -> 1234.56
//
// When both separators appear, the one further right is the decimal separator
// and the other is treated as a thousands separator. Spaces are ignored.
// Empty input is an error.
func Parse(value string) (float64, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, " ", "")

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		if strings.Count(s, ",") > 1 {
			return 0, ErrInvalidAmount
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	f, _ := d.Round(2).Float64()
	return f, nil
}

// Format renders an amount with exactly two decimal places.
func Format(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
