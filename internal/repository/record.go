package repository

import (
	"context"

	"github.com/eslsoft/lexrev/internal/entity"
)

// RecordRepository persists per-item spaced repetition records. It is the
// single writer-of-record shared by the scheduler and live quiz sessions.
type RecordRepository interface {
	// Get returns the record for an item, or the default "never reviewed"
	// record when none has been stored yet.
	Get(ctx context.Context, itemID int64) (entity.SRSRecord, error)
	Put(ctx context.Context, rec entity.SRSRecord) error
	List(ctx context.Context) ([]entity.SRSRecord, error)
	ListByItems(ctx context.Context, itemIDs []int64) ([]entity.SRSRecord, error)
	// Delete wipes an item's familiarity back to defaults.
	Delete(ctx context.Context, itemID int64) error
}
