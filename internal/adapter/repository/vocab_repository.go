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

type itemRow struct {
	ID          int64     `db:"id"`
	ListID      int64     `db:"list_id"`
	Text        string    `db:"text"`
	Translation string    `db:"translation"`
	SourceLang  string    `db:"source_lang"`
	TargetLang  string    `db:"target_lang"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r itemRow) toEntity() entity.VocabularyItem {
	return entity.VocabularyItem{
		ID:          r.ID,
		ListID:      r.ListID,
		Text:        r.Text,
		Translation: r.Translation,
		SourceLang:  r.SourceLang,
		TargetLang:  r.TargetLang,
		CreatedAt:   r.CreatedAt,
	}
}

type vocabRepository struct {
	db *sqlx.DB
}

// NewVocabularyRepository constructs the sql-backed vocabulary store.
func NewVocabularyRepository(db *sqlx.DB) repository.VocabularyRepository {
	return &vocabRepository{db: db}
}

func (r *vocabRepository) Create(ctx context.Context, item *entity.VocabularyItem) (*entity.VocabularyItem, error) {
	item.Normalize(time.Now())

	id, err := r.insertReturningID(ctx, `
		INSERT INTO vocabulary_items (list_id, text, translation, source_lang, target_lang, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.ListID, item.Text, item.Translation, item.SourceLang, item.TargetLang, item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create vocabulary item: %w", err)
	}

	created := *item
	created.ID = id
	return &created, nil
}

func (r *vocabRepository) GetByID(ctx context.Context, id int64) (*entity.VocabularyItem, error) {
	var row itemRow
	query := r.db.Rebind(`
		SELECT id, list_id, text, translation, source_lang, target_lang, created_at
		FROM vocabulary_items WHERE id = ?`)
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vocabulary item: %w", err)
	}
	item := row.toEntity()
	return &item, nil
}

func (r *vocabRepository) ListByList(ctx context.Context, listID int64) ([]entity.VocabularyItem, error) {
	var rows []itemRow
	query := r.db.Rebind(`
		SELECT id, list_id, text, translation, source_lang, target_lang, created_at
		FROM vocabulary_items WHERE list_id = ? ORDER BY id`)
	if err := r.db.SelectContext(ctx, &rows, query, listID); err != nil {
		return nil, fmt.Errorf("list vocabulary items: %w", err)
	}
	out := make([]entity.VocabularyItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *vocabRepository) ListItemIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, `SELECT id FROM vocabulary_items ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list vocabulary item ids: %w", err)
	}
	return ids, nil
}

func (r *vocabRepository) EnsureList(ctx context.Context, name string) (*entity.WordList, error) {
	var row struct {
		ID        int64     `db:"id"`
		Name      string    `db:"name"`
		CreatedAt time.Time `db:"created_at"`
	}
	query := r.db.Rebind(`SELECT id, name, created_at FROM word_lists WHERE name = ?`)
	err := r.db.GetContext(ctx, &row, query, name)
	if err == nil {
		return &entity.WordList{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find word list: %w", err)
	}

	now := time.Now()
	id, err := r.insertReturningID(ctx, `
		INSERT INTO word_lists (name, created_at) VALUES (?, ?)`, name, now)
	if err != nil {
		return nil, fmt.Errorf("create word list: %w", err)
	}
	return &entity.WordList{ID: id, Name: name, CreatedAt: now}, nil
}

func (r *vocabRepository) GetList(ctx context.Context, id int64) (*entity.WordList, error) {
	var row struct {
		ID        int64     `db:"id"`
		Name      string    `db:"name"`
		CreatedAt time.Time `db:"created_at"`
	}
	query := r.db.Rebind(`SELECT id, name, created_at FROM word_lists WHERE id = ?`)
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get word list: %w", err)
	}
	return &entity.WordList{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}, nil
}

// insertReturningID hides the driver split on generated keys: postgres
// needs RETURNING, sqlite reports LastInsertId.
func (r *vocabRepository) insertReturningID(ctx context.Context, query string, args ...interface{}) (int64, error) {
	if r.db.DriverName() == "postgres" {
		var id int64
		err := r.db.GetContext(ctx, &id, r.db.Rebind(query+" RETURNING id"), args...)
		return id, err
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
