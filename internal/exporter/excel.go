// Package exporter writes a vocabulary list and its review state back
// out as a spreadsheet, the mirror of the importer's fixed layout.
package exporter

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"

	"github.com/eslsoft/lexrev/internal/entity"
	"github.com/eslsoft/lexrev/internal/repository"
	"github.com/eslsoft/lexrev/internal/srs"
)

const sheetName = "Sheet1"

var header = []any{
	"word", "translation", "source_lang", "target_lang",
	"familiarity", "ease", "interval_days", "repetitions", "next_review",
}

// Exporter dumps a word list with its per-item scheduling state.
type Exporter struct {
	vocab   repository.VocabularyRepository
	records repository.RecordRepository
}

// New constructs an exporter over the vocabulary and record stores.
func New(vocab repository.VocabularyRepository, records repository.RecordRepository) *Exporter {
	return &Exporter{vocab: vocab, records: records}
}

// ExportList writes every item of a list, one row per item, to an xlsx
// file at path. Items never reviewed export with default scheduling
// state. Returns the number of item rows written.
func (ex *Exporter) ExportList(ctx context.Context, listID int64, path string) (int, error) {
	items, err := ex.vocab.ListByList(ctx, listID)
	if err != nil {
		return 0, fmt.Errorf("list items: %w", err)
	}

	ids := lo.Map(items, func(item entity.VocabularyItem, _ int) int64 { return item.ID })
	recs, err := ex.records.ListByItems(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("list records: %w", err)
	}
	byItem := lo.SliceToMap(recs, func(rec entity.SRSRecord) (int64, entity.SRSRecord) {
		return rec.ItemID, rec
	})

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	for i, item := range items {
		rec, ok := byItem[item.ID]
		if !ok {
			rec = entity.NewSRSRecord(item.ID)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := f.SetSheetRow(sheetName, cell, itemRow(item, rec)); err != nil {
			return 0, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("save spreadsheet: %w", err)
	}
	return len(items), nil
}

func itemRow(item entity.VocabularyItem, rec entity.SRSRecord) *[]any {
	nextReview := ""
	if rec.NextReviewAt != nil {
		nextReview = rec.NextReviewAt.Format("2006-01-02")
	}
	return &[]any{
		item.Text, item.Translation, item.SourceLang, item.TargetLang,
		srs.Classify(rec.Ease), rec.Ease, rec.IntervalDays, rec.Repetitions, nextReview,
	}
}
