package schema

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	numberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)
	intPattern    = regexp.MustCompile(`-?\d+`)
	compactDate   = regexp.MustCompile(`^\d{8}$`)
	isoPrefix     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// ParseQuantity extracts the first numeric substring of s, after
// stripping spaces and treating a decimal comma as a decimal point.
// Unparseable values coerce to zero.
func ParseQuantity(s string) decimal.Decimal {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	m := numberPattern.FindString(cleaned)
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseStatusCode extracts the first integer substring of a textual
// status value. Nil when the value carries no digits.
func ParseStatusCode(s string) *int {
	m := intPattern.FindString(strings.TrimSpace(s))
	if m == "" {
		return nil
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &n
}

var isoLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
}

var dayFirstLayouts = []string{
	"02-01-2006 15:04:05",
	"02-01-2006",
	"02/01/2006 15:04:05",
	"02/01/2006",
	"02.01.2006",
	"2/1/2006",
}

// ParseTime interprets a timestamp cell: compact numeric dates
// (YYYYMMDD) first, then ISO forms, then day-first European forms.
// Unparseable values coerce to an absent timestamp.
func ParseTime(s string) *time.Time {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil
	}
	if compactDate.MatchString(v) {
		if t, err := time.Parse("20060102", v); err == nil {
			return &t
		}
	}
	layouts := dayFirstLayouts
	if isoPrefix.MatchString(v) {
		layouts = isoLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	// fallback pass with the other family
	other := isoLayouts
	if isoPrefix.MatchString(v) {
		other = dayFirstLayouts
	}
	for _, layout := range other {
		if t, err := time.Parse(layout, v); err == nil {
			return &t
		}
	}
	return nil
}
