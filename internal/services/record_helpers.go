package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/11Jagan/Expense-Tracker/internal/aggregation"
	"github.com/11Jagan/Expense-Tracker/internal/dto"
	"github.com/11Jagan/Expense-Tracker/internal/events"
	"github.com/11Jagan/Expense-Tracker/internal/models"

	"github.com/google/uuid"
)

const queryDateLayout = "2006-01-02"

// buildRecordFilters turns list query parameters into repository filters.
// startDate/endDate win over year/month; a lone bound filters one side only.
// endDate covers its whole day.
func buildRecordFilters(userID uuid.UUID, q *dto.RecordQuery, keyColumn string) (models.RecordFilters, error) {
	filters := models.RecordFilters{UserID: userID, Key: q.Key}

	switch {
	case q.StartDate != "" || q.EndDate != "":
		if q.StartDate != "" {
			start, err := time.Parse(queryDateLayout, q.StartDate)
			if err != nil {
				return filters, ErrInvalidDate
			}
			filters.StartDate = &start
		}
		if q.EndDate != "" {
			end, err := time.Parse(queryDateLayout, q.EndDate)
			if err != nil {
				return filters, ErrInvalidDate
			}
			end = aggregation.EndOfDay(end)
			filters.EndDate = &end
		}
		if filters.StartDate != nil && filters.EndDate != nil && filters.StartDate.After(*filters.EndDate) {
			return filters, ErrInvalidRange
		}
	case q.Year != 0 && q.Month >= 1 && q.Month <= 12:
		w := aggregation.MonthWindow(q.Year, time.Month(q.Month))
		filters.StartDate = &w.Start
		filters.EndDate = &w.End
	}

	sort, err := models.ParseSort(q.Sort, keyColumn)
	if err != nil {
		return filters, fmt.Errorf("%w: %v", ErrInvalidSort, err)
	}
	filters.Sort = sort

	limit := q.Limit
	if limit <= 0 {
		limit = models.DefaultPageLimit
	}
	limit = min(limit, models.MaxPageLimit)
	page := max(q.Page, 1)

	filters.Limit = limit
	filters.Offset = (page - 1) * limit
	return filters, nil
}

// recordNotifier publishes record events and counts mutations. Publishing
// never fails the mutation that triggered it.
type recordNotifier struct {
	publisher events.Publisher
	metrics   MetricsRecorderInterface
	logger    *slog.Logger
	now       func() time.Time
}

func (n *recordNotifier) notify(ctx context.Context, kind events.RecordKind, action events.Action, record aggregation.Record) {
	n.metrics.IncrementCounter(MetricRecordMutation, map[string]string{
		"kind":   string(kind),
		"action": string(action),
	})

	event := events.RecordEvent{
		Kind:       kind,
		Action:     action,
		RecordID:   record.ID,
		UserID:     record.OwnerID,
		Amount:     record.Amount,
		Key:        record.GroupKey,
		OccurredAt: record.OccurredAt,
		EmittedAt:  n.now().UTC(),
	}

	if err := n.publisher.PublishRecordEvent(ctx, event); err != nil {
		n.metrics.IncrementCounter(MetricRecordEventError, map[string]string{"kind": string(kind)})
		n.logger.Error("failed to publish record event",
			"error", err,
			"kind", kind,
			"action", action,
			"record_id", record.ID,
			"user_id", record.OwnerID)
	}
}

func clockOrDefault(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
