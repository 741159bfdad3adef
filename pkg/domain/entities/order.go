package entities

import (
	"github.com/shopspring/decimal"
)

// OrderLine represents one outgoing order row after column resolution
type OrderLine struct {
	Article    string
	Quantity   decimal.Decimal
	OrderID    string
	LineID     string
	StatusCode *int
	// Raw holds the original input row so reports can echo the caller's
	// columns unchanged.
	Raw []string
}

// HasStatus reports whether the line carries a parsable status code
func (l OrderLine) HasStatus() bool {
	return l.StatusCode != nil
}

// StatusEquals reports whether the line's status code equals code.
// Lines without a status never match.
func (l OrderLine) StatusEquals(code int) bool {
	return l.StatusCode != nil && *l.StatusCode == code
}
