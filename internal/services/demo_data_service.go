package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/models"
	"github.com/11Jagan/Expense-Tracker/internal/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultDemoDays  = 30
	MaxDemoDays      = 365
	DefaultDemoCount = 50
	MaxDemoCount     = 500

	salaryDay       = 1
	salaryHour      = 9
	billPaymentHour = 14
	dayStartHour    = 7
	dayEndHour      = 22
)

var ErrInvalidDemoParameters = errors.New("days must be 1-365 and count 1-500")

// amountRange is the inclusive range a generated amount is drawn from
type amountRange struct {
	min, max float64
}

// merchant pairs a payee with the category its expenses are filed under
type merchant struct {
	name     string
	category string
}

var demoAmountRanges = map[string]amountRange{
	models.CategoryFood:           {8, 60},
	models.CategoryGroceries:      {15, 250},
	models.CategoryShopping:       {25, 450},
	models.CategoryTransport:      {5, 80},
	models.CategoryEntertainment:  {10, 90},
	models.CategoryUtilities:      {40, 250},
	models.CategoryHomeRentOrLoan: {800, 2500},
	models.CategoryHealthcare:     {20, 300},
	models.CategoryEducation:      {30, 200},
	models.CategoryGym:            {25, 70},
	models.CategoryPersonal:       {10, 120},
}

var demoMerchants = []merchant{
	{"Corner Bistro", models.CategoryFood},
	{"Noodle House", models.CategoryFood},
	{"Morning Coffee", models.CategoryFood},
	{"Fresh Market", models.CategoryGroceries},
	{"Green Grocer", models.CategoryGroceries},
	{"Wholesale Club", models.CategoryGroceries},
	{"City Mall", models.CategoryShopping},
	{"Online Store", models.CategoryShopping},
	{"Metro Transit", models.CategoryTransport},
	{"Ride Share", models.CategoryTransport},
	{"Fuel Station", models.CategoryTransport},
	{"Cinema", models.CategoryEntertainment},
	{"Streaming Service", models.CategoryEntertainment},
	{"Pharmacy", models.CategoryHealthcare},
	{"Bookshop", models.CategoryEducation},
	{"Hair Salon", models.CategoryPersonal},
}

// monthly bills are paid once per calendar month on a random day
var demoBills = []merchant{
	{"Rent", models.CategoryHomeRentOrLoan},
	{"Electricity Bill", models.CategoryUtilities},
	{"Internet Bill", models.CategoryUtilities},
	{"Gym Membership", models.CategoryGym},
}

type demoDataService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	incomeRepo  repositories.IncomeRepositoryInterface
	enabled     bool
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
	now         func() time.Time

	mu    sync.Mutex
	faker *gofakeit.Faker
}

// NewDemoDataService creates the demo data generator. It refuses to run
// unless enabled, which the server sets only in development.
func NewDemoDataService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	incomeRepo repositories.IncomeRepositoryInterface,
	enabled bool,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
	now func() time.Time,
) DemoDataServiceInterface {
	return newDemoDataService(expenseRepo, incomeRepo, enabled, metrics, logger, now, gofakeit.New(0))
}

func newDemoDataService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	incomeRepo repositories.IncomeRepositoryInterface,
	enabled bool,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
	now func() time.Time,
	faker *gofakeit.Faker,
) *demoDataService {
	return &demoDataService{
		expenseRepo: expenseRepo,
		incomeRepo:  incomeRepo,
		enabled:     enabled,
		metrics:     metrics,
		logger:      logger,
		now:         clockOrDefault(now),
		faker:       faker,
	}
}

// Generate creates count random expenses spread over the last days days,
// monthly bills, a monthly salary and some freelance income for the user.
// Zero days or count use the defaults.
func (s *demoDataService) Generate(ctx context.Context, userID uuid.UUID, days, count int) (*dto.DemoDataResponse, error) {
	if !s.enabled {
		return nil, ErrNotAvailable
	}
	if days == 0 {
		days = DefaultDemoDays
	}
	if count == 0 {
		count = DefaultDemoCount
	}
	if days < 1 || days > MaxDemoDays || count < 1 || count > MaxDemoCount {
		return nil, ErrInvalidDemoParameters
	}

	end := s.now().UTC()
	start := end.AddDate(0, 0, -days)

	s.mu.Lock()
	expenses := s.generateExpenses(userID, start, end, count)
	expenses = append(expenses, s.generateBills(userID, start, end)...)
	incomes := s.generateSalary(userID, start, end)
	incomes = append(incomes, s.generateFreelance(userID, start, end, max(count/10, 1))...)
	s.mu.Unlock()

	if err := s.expenseRepo.CreateBatch(expenses); err != nil {
		return nil, fmt.Errorf("failed to store demo expenses: %w", err)
	}
	if err := s.incomeRepo.CreateBatch(incomes); err != nil {
		return nil, fmt.Errorf("failed to store demo income: %w", err)
	}

	s.metrics.IncrementCounter(MetricDemoDataRecords, map[string]string{"kind": "expense"})
	s.metrics.IncrementCounter(MetricDemoDataRecords, map[string]string{"kind": "income"})

	resp := &dto.DemoDataResponse{
		Expenses:      len(expenses),
		Incomes:       len(incomes),
		TotalExpenses: decimal.Zero,
		TotalIncome:   decimal.Zero,
		Days:          days,
	}
	for _, e := range expenses {
		resp.TotalExpenses = resp.TotalExpenses.Add(e.Amount)
	}
	for _, i := range incomes {
		resp.TotalIncome = resp.TotalIncome.Add(i.Amount)
	}

	s.logger.Info("demo data generated",
		"user_id", userID,
		"days", days,
		"expenses", resp.Expenses,
		"incomes", resp.Incomes)

	return resp, nil
}

func (s *demoDataService) generateExpenses(userID uuid.UUID, start, end time.Time, count int) []models.Expense {
	expenses := make([]models.Expense, 0, count)
	for i := 0; i < count; i++ {
		m := demoMerchants[s.faker.Number(0, len(demoMerchants)-1)]
		expenses = append(expenses, models.Expense{
			UserID:             userID,
			Title:              truncateTitle(m.name + " - " + s.faker.ProductName()),
			Amount:             s.amountFor(m.category),
			Category:           m.category,
			Date:               s.timestamp(start, end),
			Description:        s.faker.Sentence(6),
			RecurringFrequency: models.FrequencyNone,
		})
	}
	return expenses
}

func (s *demoDataService) generateBills(userID uuid.UUID, start, end time.Time) []models.Expense {
	var bills []models.Expense
	for month := firstOfMonth(start); !month.After(end); month = month.AddDate(0, 1, 0) {
		for _, bill := range demoBills {
			day := s.faker.Number(1, 28)
			date := time.Date(month.Year(), month.Month(), day, billPaymentHour, 0, 0, 0, time.UTC)
			if date.Before(start) || date.After(end) {
				continue
			}
			bills = append(bills, models.Expense{
				UserID:             userID,
				Title:              bill.name,
				Amount:             s.amountFor(bill.category),
				Category:           bill.category,
				Date:               date,
				IsRecurring:        true,
				RecurringFrequency: models.FrequencyMonthly,
			})
		}
	}
	return bills
}

// generateSalary pays one fixed salary on the first of every month inside
// the window
func (s *demoDataService) generateSalary(userID uuid.UUID, start, end time.Time) []models.Income {
	employer := s.faker.Company()
	amount := decimal.NewFromFloat(s.faker.Price(2000, 8000)).Round(0)

	var incomes []models.Income
	for month := firstOfMonth(start); !month.After(end); month = month.AddDate(0, 1, 0) {
		date := time.Date(month.Year(), month.Month(), salaryDay, salaryHour, 0, 0, 0, time.UTC)
		if date.Before(start) || date.After(end) {
			continue
		}
		income := models.NewIncome(userID, truncateTitle("Salary - "+employer), amount)
		income.Date = date
		incomes = append(incomes, *income)
	}
	return incomes
}

func (s *demoDataService) generateFreelance(userID uuid.UUID, start, end time.Time, count int) []models.Income {
	incomes := make([]models.Income, 0, count)
	for i := 0; i < count; i++ {
		source := models.SourceFreelance
		if s.faker.Bool() {
			source = s.faker.RandomString([]string{models.SourceBusiness, models.SourceInvestment, models.SourceGift})
		}
		income := models.NewIncome(userID, truncateTitle(source+" - "+s.faker.Company()), decimal.NewFromFloat(s.faker.Price(50, 1500)).Round(2))
		income.Source = source
		income.Date = s.timestamp(start, end)
		income.IsRecurring = false
		income.RecurringFrequency = models.FrequencyNone
		incomes = append(incomes, *income)
	}
	return incomes
}

func (s *demoDataService) amountFor(category string) decimal.Decimal {
	r, ok := demoAmountRanges[category]
	if !ok {
		r = amountRange{10, 100}
	}
	return decimal.NewFromFloat(s.faker.Price(r.min, r.max)).Round(2)
}

// timestamp picks a day in [start, end] and a time during waking hours,
// clamped to end
func (s *demoDataService) timestamp(start, end time.Time) time.Time {
	span := int(end.Sub(start).Hours() / 24)
	day := start.AddDate(0, 0, s.faker.Number(0, max(span, 0)))
	t := time.Date(day.Year(), day.Month(), day.Day(),
		s.faker.Number(dayStartHour, dayEndHour), s.faker.Number(0, 59), 0, 0, time.UTC)
	if t.After(end) {
		return end
	}
	if t.Before(start) {
		return start
	}
	return t
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) > models.MaxTitleLength {
		return string(runes[:models.MaxTitleLength])
	}
	return title
}
