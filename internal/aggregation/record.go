package aggregation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FallbackKey is used for records that arrive without a group key.
const FallbackKey = "Uncategorized"

// Record is a single dated monetary entry: an expense grouped by category
// or an income grouped by source. OccurredAt is the only timestamp the
// engine looks at.
type Record struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Amount     decimal.Decimal
	GroupKey   string
	OccurredAt time.Time
	Note       string
}

func (r Record) key() string {
	if r.GroupKey == "" {
		return FallbackKey
	}
	return r.GroupKey
}
