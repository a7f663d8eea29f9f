package repository

import (
	"context"

	"github.com/eslsoft/lexrev/internal/entity"
)

// VocabularyRepository provides read access to the items a user studies
// plus the write path used by list imports. The scheduling core itself
// never mutates items.
type VocabularyRepository interface {
	Create(ctx context.Context, item *entity.VocabularyItem) (*entity.VocabularyItem, error)
	GetByID(ctx context.Context, id int64) (*entity.VocabularyItem, error)
	ListByList(ctx context.Context, listID int64) ([]entity.VocabularyItem, error)
	// ListItemIDs returns the ids of every known item; the scheduler uses
	// it to drop records whose item has been deleted.
	ListItemIDs(ctx context.Context) ([]int64, error)
	EnsureList(ctx context.Context, name string) (*entity.WordList, error)
	GetList(ctx context.Context, id int64) (*entity.WordList, error)
}
