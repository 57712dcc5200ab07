package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	DefaultSort      = "-date"
)

// sortColumns maps the public sort field names to columns
var sortColumns = map[string]string{
	"date":       "date",
	"amount":     "amount",
	"title":      "title",
	"category":   "category",
	"source":     "source",
	"createdAt":  "created_at",
	"created_at": "created_at",
}

// SortField is one column of an ORDER BY
type SortField struct {
	Column     string
	Descending bool
}

// String renders the field as an ORDER BY fragment
func (s SortField) String() string {
	if s.Descending {
		return s.Column + " DESC"
	}
	return s.Column + " ASC"
}

// ParseSort parses a comma separated sort expression such as "-date,amount".
// A leading '-' means descending. keyColumn is "category" or "source" and is
// the only grouping column accepted for the record type being listed.
func ParseSort(expr, keyColumn string) ([]SortField, error) {
	if strings.TrimSpace(expr) == "" {
		expr = DefaultSort
	}

	var fields []SortField
	for _, raw := range strings.Split(expr, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		desc := strings.HasPrefix(raw, "-")
		name := strings.TrimPrefix(raw, "-")

		column, ok := sortColumns[name]
		if !ok || ((column == "category" || column == "source") && column != keyColumn) {
			return nil, fmt.Errorf("unsupported sort field: %s", name)
		}
		fields = append(fields, SortField{Column: column, Descending: desc})
	}

	if len(fields) == 0 {
		return []SortField{{Column: "date", Descending: true}}, nil
	}
	return fields, nil
}

// RecordFilters contains filtering, sorting and paging options for expense
// and income queries. Key filters the category for expenses and the source
// for income.
type RecordFilters struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Key       string
	Sort      []SortField
	Offset    int
	Limit     int
}

// Page converts offset/limit back into a 1-based page number
func (f RecordFilters) Page() int {
	if f.Limit <= 0 {
		return 1
	}
	return f.Offset/f.Limit + 1
}

// PageCount returns how many pages total items span at the filter's limit
func (f RecordFilters) PageCount(total int64) int {
	if f.Limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(f.Limit) - 1) / int64(f.Limit))
}
