// Package currencyutils parses the amount notations found in bank exports.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// number is what must remain once signs, parentheses and currency markers
// have been peeled off the edges of a cell.
var number = regexp.MustCompile(`^[0-9.,]*[0-9][0-9.,]*$`)

// separators are dropped anywhere in a cell: "1 234,56", "1'234.56".
var separators = strings.NewReplacer(" ", "", "'", "", "’", "", "\u00a0", "", "\u202f", "")

// ParseAmount parses an amount cell into a signed decimal.
//
// Accepted notations include "$1,234.56", "1.234,56 €", "CHF 1'234.56",
// "-45", "45-" and the accounting negatives "(45.00)" and "$(45.00)". An
// empty or whitespace-only string parses to zero. Anything other than digits
// and separators between the first and last digit is rejected, so dates and
// exponents are not read as amounts.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	s := strings.TrimSpace(amountStr)
	if s == "" {
		return decimal.Zero, nil
	}

	core, negative, err := peel(separators.Replace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	if !number.MatchString(core) {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': not a number", amountStr)
	}

	amount, err := decimal.NewFromString(StandardizeAmount(core))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// peel strips signs, one pair of parentheses, currency symbols and currency
// codes from both ends of s and returns what is left.
func peel(s string) (string, bool, error) {
	runes := []rune(s)
	start, end := 0, len(runes)
	signs := 0
	open, closed, negative := false, false, false

left:
	for ; start < end; start++ {
		switch r := runes[start]; {
		case r == '(' && !open:
			open = true
		case r == '-' || r == '−':
			negative = !negative
			signs++
		case r == '+':
			signs++
		case !isCurrencyMarker(r):
			break left
		}
	}

right:
	for ; end > start; end-- {
		switch r := runes[end-1]; {
		case r == ')' && !closed:
			closed = true
		case r == '-' || r == '−':
			negative = !negative
			signs++
		case !isCurrencyMarker(r):
			break right
		}
	}

	switch {
	case start == end:
		return "", false, fmt.Errorf("no digits")
	case open != closed:
		return "", false, fmt.Errorf("unbalanced parentheses")
	case signs > 1:
		return "", false, fmt.Errorf("more than one sign")
	case open && signs > 0:
		return "", false, fmt.Errorf("sign inside parentheses")
	case open:
		negative = true
	}
	return string(runes[start:end]), negative, nil
}

// isCurrencyMarker matches currency symbols and the letters of ISO codes.
func isCurrencyMarker(r rune) bool {
	return unicode.Is(unicode.Sc, r) || unicode.IsLetter(r)
}

// ParseMagnitude parses a debit or credit cell as a non-negative value.
func ParseMagnitude(amountStr string) (decimal.Decimal, error) {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Abs(), nil
}

// StandardizeAmount removes thousands separators from an unsigned run of
// digits, dots and commas so decimal.NewFromString can parse it. Both
// "1,234.56" and "1.234,56" become "1234.56"; a lone comma followed by at most
// two digits is read as the decimal separator.
func StandardizeAmount(amountStr string) string {
	hasComma := strings.Contains(amountStr, ",")
	hasDot := strings.Contains(amountStr, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case hasComma:
		parts := strings.Split(amountStr, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	case strings.Count(amountStr, ".") > 1:
		// 1.234.567 uses dots as thousands separators
		amountStr = strings.ReplaceAll(amountStr, ".", "")
	}

	return strings.Trim(amountStr, ".")
}

// FormatAmount renders an amount with two decimals and an optional currency code.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := amount.StringFixed(2)
	if currency == "" {
		return formatted
	}
	return strings.ToUpper(currency) + " " + formatted
}
