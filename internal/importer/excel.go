// Package importer loads vocabulary lists from spreadsheet files into
// the store so quiz sessions have something to sample.
package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/eslsoft/lexrev/internal/entity"
	"github.com/eslsoft/lexrev/internal/repository"
)

// Options defines how a spreadsheet is read. Columns follow the fixed
// layout word | translation | source language | target language.
type Options struct {
	SheetName  string
	SkipHeader bool
}

// DefaultOptions returns the layout most exported word lists use.
func DefaultOptions() Options {
	return Options{SheetName: "Sheet1", SkipHeader: true}
}

// Result summarizes one import run.
type Result struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer writes spreadsheet rows into the vocabulary store.
type Importer struct {
	vocab repository.VocabularyRepository
}

// New constructs an importer over the vocabulary repository.
func New(vocab repository.VocabularyRepository) *Importer {
	return &Importer{vocab: vocab}
}

// ImportFile reads an xlsx file and creates one vocabulary item per row
// inside the named list. Rows with an empty word or translation are
// skipped and reported, not fatal.
func (im *Importer) ImportFile(ctx context.Context, path, listName string, opts Options) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(opts.SheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", opts.SheetName, err)
	}

	list, err := im.vocab.EnsureList(ctx, listName)
	if err != nil {
		return nil, fmt.Errorf("ensure list %q: %w", listName, err)
	}

	result := &Result{}
	for i, row := range rows {
		if i == 0 && opts.SkipHeader {
			continue
		}
		result.TotalProcessed++

		item := rowToItem(row, list.ID)
		if item.Text == "" || item.Translation == "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: word and translation are required", i+1))
			continue
		}

		if _, err := im.vocab.Create(ctx, &item); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Created++
	}
	return result, nil
}

func rowToItem(row []string, listID int64) entity.VocabularyItem {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	return entity.VocabularyItem{
		ListID:      listID,
		Text:        cell(0),
		Translation: cell(1),
		SourceLang:  cell(2),
		TargetLang:  cell(3),
	}
}
