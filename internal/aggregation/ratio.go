package aggregation

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PercentageOf returns part/whole*100, or zero when whole is zero
func PercentageOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

// PerUnitShare returns part/whole, or zero when whole is zero. It answers
// "of every unit spent, how much went to this group".
func PerUnitShare(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole)
}

// Change is a period-over-period comparison. HasBaseline is false when the
// previous value was zero, in which case Percentage is reported as 100.
type Change struct {
	Percentage  decimal.Decimal `json:"percentage"`
	HasBaseline bool            `json:"hasBaseline"`
}

// PercentageChange compares current against previous
func PercentageChange(current, previous decimal.Decimal) Change {
	if previous.IsZero() {
		return Change{Percentage: hundred, HasBaseline: false}
	}
	return Change{
		Percentage:  current.Sub(previous).Mul(hundred).Div(previous.Abs()),
		HasBaseline: true,
	}
}

// Share is a group total together with its part of the grand total
type Share struct {
	GroupTotal
	Percentage decimal.Decimal `json:"percentage"`
	PerUnit    decimal.Decimal `json:"perUnit"`
}

// MarshalJSON flattens the embedded group total and writes numbers unquoted
func (s Share) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string      `json:"key"`
		TotalAmount json.Number `json:"totalAmount"`
		Count       int         `json:"count"`
		Percentage  json.Number `json:"percentage"`
		PerUnit     json.Number `json:"perUnit"`
	}{
		Key:         s.Key,
		TotalAmount: json.Number(s.TotalAmount.String()),
		Count:       s.Count,
		Percentage:  json.Number(s.Percentage.StringFixed(2)),
		PerUnit:     json.Number(s.PerUnit.StringFixed(2)),
	})
}

// Breakdown derives every group's share of the result's grand total, in
// the result's order
func Breakdown(r Result) []Share {
	shares := make([]Share, 0, len(r.Summary))
	for _, g := range r.Summary {
		shares = append(shares, Share{
			GroupTotal: g,
			Percentage: PercentageOf(g.TotalAmount, r.TotalAmount),
			PerUnit:    PerUnitShare(g.TotalAmount, r.TotalAmount),
		})
	}
	return shares
}
