package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/lexrev/internal/entity"
	"github.com/eslsoft/lexrev/internal/repository"
	"github.com/eslsoft/lexrev/internal/srs"
)

// ReviewUsecase decides which items are due for review and projects the
// upcoming review load. Time is always an explicit parameter so callers
// stay deterministic in tests.
type ReviewUsecase interface {
	SelectDue(ctx context.Context, now time.Time) ([]int64, error)
	Forecast(ctx context.Context, now time.Time, horizonDays int) ([]int, error)
	// BuildSample picks up to limit items from a list for a quiz session:
	// due items first in scheduling order, never-studied items after.
	BuildSample(ctx context.Context, listID int64, limit int, now time.Time) ([]entity.VocabularyItem, error)
	// ResetItem wipes an item's familiarity back to the defaults.
	ResetItem(ctx context.Context, itemID int64) error
}

// NewReviewUsecase wires the repositories with default behaviour.
func NewReviewUsecase(records repository.RecordRepository, vocab repository.VocabularyRepository) ReviewUsecase {
	return &reviewUsecase{records: records, vocab: vocab}
}

type reviewUsecase struct {
	records repository.RecordRepository
	vocab   repository.VocabularyRepository
}

func (u *reviewUsecase) SelectDue(ctx context.Context, now time.Time) ([]int64, error) {
	records, err := u.dueRecords(ctx, now)
	if err != nil {
		return nil, err
	}

	// Never-reviewed items first, then the hardest (lowest ease), then the
	// most overdue. Item id breaks remaining ties so the order is stable.
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Reviewed() != b.Reviewed() {
			return !a.Reviewed()
		}
		if a.Ease != b.Ease {
			return a.Ease < b.Ease
		}
		switch {
		case a.NextReviewAt == nil && b.NextReviewAt != nil:
			return true
		case a.NextReviewAt != nil && b.NextReviewAt == nil:
			return false
		case a.NextReviewAt != nil && b.NextReviewAt != nil && !a.NextReviewAt.Equal(*b.NextReviewAt):
			return a.NextReviewAt.Before(*b.NextReviewAt)
		}
		return a.ItemID < b.ItemID
	})

	return lo.Map(records, func(rec entity.SRSRecord, _ int) int64 {
		return rec.ItemID
	}), nil
}

func (u *reviewUsecase) Forecast(ctx context.Context, now time.Time, horizonDays int) ([]int, error) {
	if horizonDays <= 0 {
		return []int{}, nil
	}
	counts := make([]int, horizonDays)

	records, err := u.knownRecords(ctx)
	if err != nil {
		return nil, err
	}

	today := startOfDay(now)
	for _, rec := range records {
		day := 0
		if rec.NextReviewAt != nil {
			day = int(startOfDay(*rec.NextReviewAt).Sub(today).Hours() / 24)
		}
		if day < 0 {
			// Overdue items pile onto today.
			day = 0
		}
		if day < horizonDays {
			counts[day]++
		}
	}
	return counts, nil
}

func (u *reviewUsecase) BuildSample(ctx context.Context, listID int64, limit int, now time.Time) ([]entity.VocabularyItem, error) {
	if limit <= 0 {
		return nil, nil
	}
	items, err := u.vocab.ListByList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	ids := lo.Map(items, func(it entity.VocabularyItem, _ int) int64 { return it.ID })
	records, err := u.records.ListByItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	byItem := lo.SliceToMap(records, func(rec entity.SRSRecord) (int64, entity.SRSRecord) {
		return rec.ItemID, rec
	})

	// Items without a stored record have never been studied; they share
	// the due pool with a nil schedule.
	var due, rest []entity.VocabularyItem
	for _, item := range items {
		rec, ok := byItem[item.ID]
		if !ok || srs.IsDue(rec.NextReviewAt, now) {
			due = append(due, item)
		} else {
			rest = append(rest, item)
		}
	}

	sample := append(due, rest...)
	if len(sample) > limit {
		sample = sample[:limit]
	}
	return sample, nil
}

func (u *reviewUsecase) ResetItem(ctx context.Context, itemID int64) error {
	return u.records.Delete(ctx, itemID)
}

func (u *reviewUsecase) dueRecords(ctx context.Context, now time.Time) ([]entity.SRSRecord, error) {
	records, err := u.knownRecords(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(records, func(rec entity.SRSRecord, _ int) bool {
		return srs.IsDue(rec.NextReviewAt, now)
	}), nil
}

// knownRecords loads all records and silently drops those whose item no
// longer exists; the scheduler does not own referential integrity.
func (u *reviewUsecase) knownRecords(ctx context.Context) ([]entity.SRSRecord, error) {
	records, err := u.records.List(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := u.vocab.ListItemIDs(ctx)
	if err != nil {
		return nil, err
	}
	known := lo.SliceToMap(ids, func(id int64) (int64, struct{}) {
		return id, struct{}{}
	})
	return lo.Filter(records, func(rec entity.SRSRecord, _ int) bool {
		_, ok := known[rec.ItemID]
		return ok
	}), nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
