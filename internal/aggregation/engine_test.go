package aggregation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type EngineTestSuite struct {
	suite.Suite
	ownerID uuid.UUID
	march   []Record
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.ownerID = uuid.New()
	s.march = []Record{
		s.record("Food", "100", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)),
		s.record("Food", "50", time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)),
		s.record("Transport", "30", time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)),
	}
}

func (s *EngineTestSuite) record(key, amount string, at time.Time) Record {
	return Record{
		ID:         uuid.New(),
		OwnerID:    s.ownerID,
		Amount:     decimal.RequireFromString(amount),
		GroupKey:   key,
		OccurredAt: at,
	}
}

func (s *EngineTestSuite) assertDecimal(expected string, actual decimal.Decimal) {
	s.T().Helper()
	s.True(decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func (s *EngineTestSuite) TestGroupAndSum_MarchScenario() {
	filtered, err := FilterRecords(s.march, CalendarMonth(2024, time.March), time.Now())
	s.Require().NoError(err)

	result := GroupAndSum(filtered)

	s.Require().Len(result.Summary, 2)
	s.Equal("Food", result.Summary[0].Key)
	s.assertDecimal("150", result.Summary[0].TotalAmount)
	s.Equal(2, result.Summary[0].Count)
	s.Equal("Transport", result.Summary[1].Key)
	s.assertDecimal("30", result.Summary[1].TotalAmount)
	s.Equal(1, result.Summary[1].Count)
	s.assertDecimal("180", result.TotalAmount)
	s.Equal(3, result.Count)
}

func (s *EngineTestSuite) TestGroupAndSum_EmptyWindow() {
	result, err := Aggregate(s.march, CalendarMonth(2024, time.April), time.Now())
	s.Require().NoError(err)

	s.Empty(result.Summary)
	s.True(result.TotalAmount.IsZero())
	s.Equal(0, result.Count)

	body, err := json.Marshal(result)
	s.Require().NoError(err)
	s.JSONEq(`{"summary":[],"totalAmount":0,"count":0}`, string(body))
}

func (s *EngineTestSuite) TestGroupAndSum_TieKeepsFirstSeenOrder() {
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		s.record("Food", "60", day),
		s.record("Gift", "100", day),
		s.record("Food", "40", day),
	}

	result := GroupAndSum(records)

	s.Require().Len(result.Summary, 2)
	s.Equal("Food", result.Summary[0].Key)
	s.Equal("Gift", result.Summary[1].Key)

	reversed := []Record{records[1], records[0], records[2]}
	result = GroupAndSum(reversed)
	s.Equal("Gift", result.Summary[0].Key)
	s.Equal("Food", result.Summary[1].Key)
}

func (s *EngineTestSuite) TestGroupAndSum_MissingKeyUsesFallback() {
	records := []Record{
		s.record("", "12.50", time.Now()),
		s.record("Food", "5", time.Now()),
		s.record("", "2.50", time.Now()),
	}

	result := GroupAndSum(records)

	s.Require().Len(result.Summary, 2)
	s.Equal(FallbackKey, result.Summary[0].Key)
	s.assertDecimal("15", result.Summary[0].TotalAmount)
	s.Equal(2, result.Summary[0].Count)
}

func (s *EngineTestSuite) TestGroupAndSum_DoesNotMutateInput() {
	records := []Record{
		s.record("Transport", "1", time.Now()),
		s.record("Food", "500", time.Now()),
	}
	before := make([]Record, len(records))
	copy(before, records)

	_ = GroupAndSum(records)

	s.Equal(before, records)
}

func (s *EngineTestSuite) TestGroupAndSum_SumAndCountInvariants() {
	keys := []string{"Food", "Transport", "Shopping", "Utilities", ""}
	for run := 0; run < 20; run++ {
		n := gofakeit.IntRange(0, 60)
		records := make([]Record, 0, n)
		expected := decimal.Zero
		for i := 0; i < n; i++ {
			amount := decimal.NewFromFloat(gofakeit.Price(0, 2000)).Round(2)
			expected = expected.Add(amount)
			records = append(records, Record{
				Amount:     amount,
				GroupKey:   keys[gofakeit.IntRange(0, len(keys)-1)],
				OccurredAt: gofakeit.Date(),
			})
		}

		result := GroupAndSum(records)

		groupSum := decimal.Zero
		groupCount := 0
		for _, g := range result.Summary {
			groupSum = groupSum.Add(g.TotalAmount)
			groupCount += g.Count
		}

		s.True(expected.Equal(result.TotalAmount))
		s.True(groupSum.Equal(result.TotalAmount))
		s.Equal(len(records), result.Count)
		s.Equal(result.Count, groupCount)

		for i := 1; i < len(result.Summary); i++ {
			s.False(result.Summary[i].TotalAmount.GreaterThan(result.Summary[i-1].TotalAmount))
		}
	}
}

func (s *EngineTestSuite) TestGroupAndSum_Deterministic() {
	first, err := json.Marshal(GroupAndSum(s.march))
	s.Require().NoError(err)
	second, err := json.Marshal(GroupAndSum(s.march))
	s.Require().NoError(err)

	s.Equal(string(first), string(second))
}

func (s *EngineTestSuite) TestAggregate_SameResultWhenPrefiltered() {
	records := append([]Record{}, s.march...)
	records = append(records,
		s.record("Food", "999", time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC)),
		s.record("Rent", "700", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)),
	)
	period := CalendarMonth(2024, time.March)

	viaFilter, err := Aggregate(records, period, time.Now())
	s.Require().NoError(err)
	prefiltered, err := Aggregate(s.march, period, time.Now())
	s.Require().NoError(err)

	a, _ := json.Marshal(viaFilter)
	b, _ := json.Marshal(prefiltered)
	s.Equal(string(b), string(a))
	s.Equal(string(b), mustJSON(s.T(), GroupAndSum(s.march)))
}

func (s *EngineTestSuite) TestAggregate_InvalidRangePropagates() {
	start := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	_, err := Aggregate(s.march, Range(start, end), time.Now())

	s.ErrorIs(err, ErrInvalidRange)
}

func (s *EngineTestSuite) TestResult_MarshalJSON() {
	body, err := json.Marshal(GroupAndSum(s.march))
	s.Require().NoError(err)

	s.JSONEq(`{
		"summary": [
			{"key": "Food", "totalAmount": 150, "count": 2},
			{"key": "Transport", "totalAmount": 30, "count": 1}
		],
		"totalAmount": 180,
		"count": 3
	}`, string(body))
}

func (s *EngineTestSuite) TestResult_Total() {
	result := GroupAndSum(s.march)

	food, ok := result.Total("Food")
	s.True(ok)
	s.assertDecimal("150", food.TotalAmount)

	missing, ok := result.Total("Gym")
	s.False(ok)
	s.True(missing.TotalAmount.IsZero())
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(body)
}
