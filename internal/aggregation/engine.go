package aggregation

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// GroupTotal is one row of an aggregation: the summed amount and the number
// of records sharing a key
type GroupTotal struct {
	Key         string          `json:"key"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int             `json:"count"`
}

// Result holds group totals sorted by amount (largest first) together with
// the grand total and the number of contributing records
type Result struct {
	Summary     []GroupTotal    `json:"summary"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int             `json:"count"`
}

// Total returns the group total for key, or zero when the key is absent
func (r Result) Total(key string) (GroupTotal, bool) {
	for _, g := range r.Summary {
		if g.Key == key {
			return g, true
		}
	}
	return GroupTotal{Key: key, TotalAmount: decimal.Zero}, false
}

// GroupAndSum groups records by key in a single pass. Groups are ordered by
// total descending; equal totals keep the order in which their key was first
// seen. Records without a key are counted under FallbackKey.
func GroupAndSum(records []Record) Result {
	index := make(map[string]int, len(records))
	groups := make([]GroupTotal, 0)
	total := decimal.Zero

	for _, r := range records {
		key := r.key()
		i, seen := index[key]
		if !seen {
			i = len(groups)
			index[key] = i
			groups = append(groups, GroupTotal{Key: key, TotalAmount: decimal.Zero})
		}
		groups[i].TotalAmount = groups[i].TotalAmount.Add(r.Amount)
		groups[i].Count++
		total = total.Add(r.Amount)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].TotalAmount.GreaterThan(groups[b].TotalAmount)
	})

	return Result{
		Summary:     groups,
		TotalAmount: total,
		Count:       len(records),
	}
}

// Aggregate filters records into the period and groups what remains
func Aggregate(records []Record, p *Period, now time.Time) (Result, error) {
	filtered, err := FilterRecords(records, p, now)
	if err != nil {
		return Result{}, err
	}
	return GroupAndSum(filtered), nil
}

type groupTotalJSON struct {
	Key         string      `json:"key"`
	TotalAmount json.Number `json:"totalAmount"`
	Count       int         `json:"count"`
}

// MarshalJSON writes amounts as JSON numbers rather than quoted strings
func (g GroupTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal(groupTotalJSON{
		Key:         g.Key,
		TotalAmount: json.Number(g.TotalAmount.String()),
		Count:       g.Count,
	})
}

// MarshalJSON writes {"summary":[...],"totalAmount":n,"count":n}. An empty
// result serializes its summary as [] rather than null.
func (r Result) MarshalJSON() ([]byte, error) {
	summary := r.Summary
	if summary == nil {
		summary = []GroupTotal{}
	}
	return json.Marshal(struct {
		Summary     []GroupTotal `json:"summary"`
		TotalAmount json.Number  `json:"totalAmount"`
		Count       int          `json:"count"`
	}{
		Summary:     summary,
		TotalAmount: json.Number(r.TotalAmount.String()),
		Count:       r.Count,
	})
}
