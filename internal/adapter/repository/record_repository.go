package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/lexrev/internal/entity"
	"github.com/eslsoft/lexrev/internal/repository"
)

type recordRow struct {
	ItemID       int64      `db:"item_id"`
	Ease         float64    `db:"ease"`
	IntervalDays int        `db:"interval_days"`
	Repetitions  int        `db:"repetitions"`
	LastReviewAt *time.Time `db:"last_review_at"`
	NextReviewAt *time.Time `db:"next_review_at"`
}

func (r recordRow) toEntity() entity.SRSRecord {
	return entity.SRSRecord{
		ItemID:       r.ItemID,
		Ease:         r.Ease,
		IntervalDays: r.IntervalDays,
		Repetitions:  r.Repetitions,
		LastReviewAt: r.LastReviewAt,
		NextReviewAt: r.NextReviewAt,
	}
}

type recordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository constructs the sql-backed review record store.
func NewRecordRepository(db *sqlx.DB) repository.RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Get(ctx context.Context, itemID int64) (entity.SRSRecord, error) {
	var row recordRow
	query := r.db.Rebind(`
		SELECT item_id, ease, interval_days, repetitions, last_review_at, next_review_at
		FROM srs_records WHERE item_id = ?`)
	err := r.db.GetContext(ctx, &row, query, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		// Never reviewed yet: due immediately with default ease.
		return entity.NewSRSRecord(itemID), nil
	}
	if err != nil {
		return entity.SRSRecord{}, fmt.Errorf("get srs record: %w", err)
	}
	return row.toEntity(), nil
}

func (r *recordRepository) Put(ctx context.Context, rec entity.SRSRecord) error {
	query := r.db.Rebind(`
		INSERT INTO srs_records (item_id, ease, interval_days, repetitions, last_review_at, next_review_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (item_id) DO UPDATE SET
			ease = excluded.ease,
			interval_days = excluded.interval_days,
			repetitions = excluded.repetitions,
			last_review_at = excluded.last_review_at,
			next_review_at = excluded.next_review_at`)
	_, err := r.db.ExecContext(ctx, query,
		rec.ItemID, rec.Ease, rec.IntervalDays, rec.Repetitions, rec.LastReviewAt, rec.NextReviewAt)
	if err != nil {
		return fmt.Errorf("put srs record: %w", err)
	}
	return nil
}

func (r *recordRepository) List(ctx context.Context) ([]entity.SRSRecord, error) {
	var rows []recordRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT item_id, ease, interval_days, repetitions, last_review_at, next_review_at
		FROM srs_records ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("list srs records: %w", err)
	}
	out := make([]entity.SRSRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *recordRepository) ListByItems(ctx context.Context, itemIDs []int64) ([]entity.SRSRecord, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`
		SELECT item_id, ease, interval_days, repetitions, last_review_at, next_review_at
		FROM srs_records WHERE item_id IN (?) ORDER BY item_id`, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("build record query: %w", err)
	}
	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list srs records by items: %w", err)
	}
	out := make([]entity.SRSRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *recordRepository) Delete(ctx context.Context, itemID int64) error {
	query := r.db.Rebind(`DELETE FROM srs_records WHERE item_id = ?`)
	if _, err := r.db.ExecContext(ctx, query, itemID); err != nil {
		return fmt.Errorf("delete srs record: %w", err)
	}
	return nil
}
