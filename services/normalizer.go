package services

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"fairhuur/models"
)

// isoLayout matches the UTC timestamps the listings document is written in.
const isoLayout = "2006-01-02T15:04:05.000Z"

var (
	postedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}

	dutch = message.NewPrinter(language.Dutch)
)

// NormalizeText turns any field value into a trimmed, lower-cased string.
func NormalizeText(v any) string {
	return strings.ToLower(strings.TrimSpace(textOf(v)))
}

func textOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case models.Text:
		return string(x)
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// CoerceNumber converts a loosely typed value into a finite number. The bool
// result is false when the value is missing, blank, non-numeric or not finite.
func CoerceNumber(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case json.Number:
		return parseNumber(x.String())
	case string:
		return parseNumber(x)
	case models.Text:
		return parseNumber(string(x))
	default:
		return 0, false
	}
	return finite(f)
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		return finite(f)
	}
	if !hasRadixPrefix(s) || strings.Contains(s, "_") {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return float64(n), true
	}
	return 0, false
}

// hasRadixPrefix reports a 0x, 0o or 0b integer literal.
func hasRadixPrefix(s string) bool {
	if len(s) < 3 || s[0] != '0' {
		return false
	}
	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// numberOr is CoerceNumber with a fallback for absent values.
func numberOr(v any, fallback float64) float64 {
	if f, ok := CoerceNumber(v); ok {
		return f
	}
	return fallback
}

// SameCalendarDay compares the YYYY-MM-DD prefix of two ISO timestamps.
func SameCalendarDay(isoA, isoB string) bool {
	if isoA == "" || isoB == "" {
		return false
	}
	return datePrefix(isoA) == datePrefix(isoB)
}

func datePrefix(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// ISOString renders t the way the listings document stores timestamps.
func ISOString(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParsePostedAt parses a postedAt value. Zone-less values are taken as UTC.
func ParsePostedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range postedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatCurrency renders a price as euros with Dutch grouping, or "" when
// the value is not a number.
func FormatCurrency(v any) string {
	f, ok := CoerceNumber(v)
	if !ok {
		return ""
	}
	return FormatAmount(f)
}

// FormatAmount renders a known amount with up to three decimals.
func FormatAmount(f float64) string {
	return "€" + dutch.Sprint(number.Decimal(f, number.MaxFractionDigits(3)))
}

// FormatDate renders a posted timestamp as a Dutch short date (d-m-yyyy).
func FormatDate(s string) string {
	t, ok := ParsePostedAt(s)
	if !ok {
		return ""
	}
	return t.Format("2-1-2006")
}

// IsActive applies the ingestion rule: a missing flag means active, anything
// else follows JavaScript truthiness.
func IsActive(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return true
		}
		return f != 0
	case string:
		return x != ""
	default:
		return true
	}
}
