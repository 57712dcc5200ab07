package aggregation

import (
	"github.com/shopspring/decimal"
)

// BudgetStatus classifies how much of a budget has been used
type BudgetStatus string

const (
	StatusOnTrack     BudgetStatus = "on track"
	StatusApproaching BudgetStatus = "approaching limit"
	StatusAlmostOver  BudgetStatus = "almost over"
	StatusOverBudget  BudgetStatus = "over budget"
)

// Default usage thresholds, in percent
const (
	DefaultOnTrackBelow    = 70
	DefaultApproachingUpTo = 90
	DefaultAlmostOverUpTo  = 100
)

// Thresholds are the usage percentages separating the budget statuses:
// below OnTrackBelow is on track, up to ApproachingUpTo is approaching,
// up to AlmostOverUpTo is almost over and anything above is over budget.
type Thresholds struct {
	OnTrackBelow    decimal.Decimal
	ApproachingUpTo decimal.Decimal
	AlmostOverUpTo  decimal.Decimal
}

// DefaultThresholds returns 70/90/100
func DefaultThresholds() Thresholds {
	return Thresholds{
		OnTrackBelow:    decimal.NewFromInt(DefaultOnTrackBelow),
		ApproachingUpTo: decimal.NewFromInt(DefaultApproachingUpTo),
		AlmostOverUpTo:  decimal.NewFromInt(DefaultAlmostOverUpTo),
	}
}

// Classify maps a usage percentage to a status
func (t Thresholds) Classify(usage decimal.Decimal) BudgetStatus {
	switch {
	case usage.LessThan(t.OnTrackBelow):
		return StatusOnTrack
	case usage.LessThanOrEqual(t.ApproachingUpTo):
		return StatusApproaching
	case usage.LessThanOrEqual(t.AlmostOverUpTo):
		return StatusAlmostOver
	default:
		return StatusOverBudget
	}
}

// BudgetLine is the budgeted amount for one category in the active period
type BudgetLine struct {
	Category string
	Amount   decimal.Decimal
}

// BudgetProgress compares one budget against what was spent.
// Remaining goes negative once the budget is exceeded; only
// DisplayPercentage is capped at 100.
type BudgetProgress struct {
	Category          string          `json:"category"`
	Budget            decimal.Decimal `json:"budget"`
	Spent             decimal.Decimal `json:"spent"`
	Remaining         decimal.Decimal `json:"remaining"`
	UsagePercentage   decimal.Decimal `json:"usagePercentage"`
	DisplayPercentage decimal.Decimal `json:"displayPercentage"`
	Status            BudgetStatus    `json:"status"`
}

// CompareBudgets produces one entry per budget line, in input order.
// Categories that were spent on but have no budget are left out.
func CompareBudgets(lines []BudgetLine, spending Result, t Thresholds) []BudgetProgress {
	progress := make([]BudgetProgress, 0, len(lines))

	for _, line := range lines {
		group, _ := spending.Total(line.Category)
		usage := PercentageOf(group.TotalAmount, line.Amount)

		display := usage
		if display.GreaterThan(hundred) {
			display = hundred
		}

		progress = append(progress, BudgetProgress{
			Category:          line.Category,
			Budget:            line.Amount,
			Spent:             group.TotalAmount,
			Remaining:         line.Amount.Sub(group.TotalAmount),
			UsagePercentage:   usage,
			DisplayPercentage: display,
			Status:            t.Classify(usage),
		})
	}

	return progress
}
