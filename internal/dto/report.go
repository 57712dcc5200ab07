package dto

import (
	"github.com/11Jagan/Expense-Tracker/internal/aggregation"

	"github.com/shopspring/decimal"
)

// ExpenseSummaryResponse is the monthly expense summary. MonthlyIncome is
// the income recorded in the month, or the user's declared monthly income
// when nothing was recorded.
type ExpenseSummaryResponse struct {
	Summary         []aggregation.GroupTotal `json:"summary"`
	TotalAmount     decimal.Decimal          `json:"totalAmount"`
	Count           int                      `json:"count"`
	MonthlyIncome   decimal.Decimal          `json:"monthlyIncome"`
	RemainingBudget decimal.Decimal          `json:"remainingBudget"`
	Year            int                      `json:"year"`
	Month           int                      `json:"month"`
}

type IncomeSummaryResponse struct {
	Summary     []aggregation.GroupTotal `json:"summary"`
	TotalAmount decimal.Decimal          `json:"totalAmount"`
	Count       int                      `json:"count"`
	Year        int                      `json:"year"`
	Month       int                      `json:"month"`
}

// BudgetStatusResponse compares every budget of a month against its spend
type BudgetStatusResponse struct {
	Year           int                          `json:"year"`
	Month          int                          `json:"month"`
	Budgets        []aggregation.BudgetProgress `json:"budgets"`
	TotalBudget    decimal.Decimal              `json:"totalBudget"`
	TotalSpent     decimal.Decimal              `json:"totalSpent"`
	TotalRemaining decimal.Decimal              `json:"totalRemaining"`
}

// DashboardQuery selects the dashboard window: a named period or an
// explicit startDate/endDate pair
type DashboardQuery struct {
	Period    string `query:"period" validate:"omitempty,oneof=weekly monthly yearly"`
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// PeriodTotals are the expense and income totals of the window before the
// dashboard's, with the change relative to them
type PeriodTotals struct {
	TotalExpenses decimal.Decimal    `json:"totalExpenses"`
	TotalIncome   decimal.Decimal    `json:"totalIncome"`
	ExpenseChange aggregation.Change `json:"expenseChange"`
	IncomeChange  aggregation.Change `json:"incomeChange"`
}

type DashboardResponse struct {
	Period           string              `json:"period"`
	TotalExpenses    decimal.Decimal     `json:"totalExpenses"`
	TotalIncome      decimal.Decimal     `json:"totalIncome"`
	NetBalance       decimal.Decimal     `json:"netBalance"`
	SavingsRate      decimal.Decimal     `json:"savingsRate"`
	ExpenseCount     int                 `json:"expenseCount"`
	IncomeCount      int                 `json:"incomeCount"`
	ExpenseBreakdown []aggregation.Share `json:"expenseBreakdown"`
	IncomeBreakdown  []aggregation.Share `json:"incomeBreakdown"`
	Previous         *PeriodTotals       `json:"previous,omitempty"`
}

// TrendQuery picks how many months the trend covers. Zero means the default.
type TrendQuery struct {
	Months int `query:"months" validate:"omitempty,gte=1,lte=24"`
}

// TrendPoint holds one calendar month of a trend
type TrendPoint struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Label      string          `json:"label"`
	Expenses   decimal.Decimal `json:"expenses"`
	Income     decimal.Decimal `json:"income"`
	NetBalance decimal.Decimal `json:"netBalance"`
}

type TrendResponse struct {
	Months int          `json:"months"`
	Points []TrendPoint `json:"points"`
}

// DemoDataResponse reports how many records the generator created
type DemoDataResponse struct {
	Expenses      int             `json:"expenses"`
	Incomes       int             `json:"incomes"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	Days          int             `json:"days"`
}
