package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrFormat reports a token that matches neither the money nor the date
// shape. Callers recover by treating the field as absent, never as zero.
var ErrFormat = errors.New("unrecognized numeric or date format")

var (
	// MoneyRegex matches es-AR formatted amounts, with or without "."
	// thousands separators, optional leading sign or trailing debit suffix.
	// A decimal comma is mandatory so CUITs and dates never read as money.
	MoneyRegex = regexp.MustCompile(`[-+]?\d+(?:\.\d{3})*,\d{2}-?`)

	// DateRegex matches dd/mm/yyyy and dd-mm-yy shapes.
	DateRegex = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)

	// CUITRegex matches an 11-digit Argentine tax id, dashes optional.
	CUITRegex = regexp.MustCompile(`\b\d{2}-?\d{8}-?\d\b`)

	spaceRegex  = regexp.MustCompile(`\s+`)
	amountShape = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})*,\d{1,2}$|^\d+,\d{1,2}$`)
)

// ParseMoney parses a locale amount like "1.234,56" into a decimal, tolerant
// of a leading "$", surrounding spaces and the trailing debit suffix "-".
// The suffix carries direction, not sign; the result is the magnitude with
// only a leading sign applied.
func ParseMoney(text string) (decimal.Decimal, error) {
	t := strings.TrimSpace(text)
	t = strings.ReplaceAll(t, " ", "")
	t = strings.ReplaceAll(t, "$", "")
	t = strings.TrimSuffix(t, "-")
	if t == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", ErrFormat)
	}

	neg := false
	switch t[0] {
	case '-':
		neg = true
		t = t[1:]
	case '+':
		t = t[1:]
	}

	if !amountShape.MatchString(t) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrFormat, text)
	}

	t = strings.ReplaceAll(t, ".", "")
	t = strings.ReplaceAll(t, ",", ".")
	amount, err := decimal.NewFromString(t)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrFormat, text)
	}
	if neg {
		amount = amount.Neg()
	}
	return amount, nil
}

var dateLayouts = []string{"2/1/2006", "2-1-2006", "2/1/06", "2-1-06"}

// ParseDate parses a dd/mm/yyyy (or dd-mm-yy) date string.
func ParseDate(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if dt, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return dt, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrFormat, value)
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold uppercases a line and strips diacritics so rule patterns match
// "Débito", "DEBITO" and "débito" alike.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToUpper(folded)
}

// NormalizeSpace collapses runs of whitespace into single spaces.
func NormalizeSpace(s string) string {
	return strings.TrimSpace(spaceRegex.ReplaceAllString(s, " "))
}

// FirstCUIT returns the first CUIT in the text with dashes removed, or "".
func FirstCUIT(text string) string {
	m := CUITRegex.FindString(text)
	if m == "" {
		return ""
	}
	return strings.ReplaceAll(m, "-", "")
}
