package entity

import "time"

// Defaults for a record that has never been reviewed.
const (
	DefaultEase     = 2.5
	MinimumEase     = 1.3
	InitialInterval = 0
)

// SRSRecord is the persisted spaced-repetition state for one vocabulary
// item. It is mutated exclusively by the review engine; everything else
// treats it as read-only.
type SRSRecord struct {
	ItemID       int64
	Ease         float64
	IntervalDays int
	Repetitions  int
	LastReviewAt *time.Time
	NextReviewAt *time.Time
}

// NewSRSRecord returns the default "never reviewed" record for an item.
// A nil NextReviewAt means the item is due immediately.
func NewSRSRecord(itemID int64) SRSRecord {
	return SRSRecord{
		ItemID:       itemID,
		Ease:         DefaultEase,
		IntervalDays: InitialInterval,
	}
}

// Reviewed reports whether the item has been reviewed at least once.
func (r SRSRecord) Reviewed() bool {
	return r.LastReviewAt != nil
}
