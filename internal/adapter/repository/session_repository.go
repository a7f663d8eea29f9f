package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eslsoft/lexrev/internal/entity"
	"github.com/eslsoft/lexrev/internal/repository"
)

type sessionRow struct {
	ID                  string    `db:"id"`
	ListID              int64     `db:"list_id"`
	Mode                string    `db:"mode"`
	StartedAt           time.Time `db:"started_at"`
	DurationMs          int64     `db:"duration_ms"`
	FirstAttemptCorrect int       `db:"first_attempt_correct"`
	TotalItems          int       `db:"total_items"`
}

type answerRow struct {
	SessionID string `db:"session_id"`
	ItemID    int64  `db:"item_id"`
	Grade     int    `db:"grade"`
	Attempt   int    `db:"attempt"`
}

type sessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs the sql-backed session log.
func NewSessionRepository(db *sqlx.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Append(ctx context.Context, rec *entity.QuizSessionRecord) error {
	mode, err := rec.Mode.MarshalText()
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session append: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertSession := tx.Rebind(`
		INSERT INTO quiz_sessions (id, list_id, mode, started_at, duration_ms, first_attempt_correct, total_items)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err = tx.ExecContext(ctx, insertSession,
		rec.ID, rec.ListID, string(mode), rec.StartedAt, rec.Duration.Milliseconds(),
		rec.FirstAttemptCorrect, rec.TotalItems)
	if err != nil {
		return fmt.Errorf("insert quiz session: %w", err)
	}

	insertAnswer := tx.Rebind(`
		INSERT INTO quiz_answers (session_id, item_id, grade, attempt)
		VALUES (?, ?, ?, ?)`)
	for _, a := range rec.Answers {
		if _, err := tx.ExecContext(ctx, insertAnswer, rec.ID, a.ItemID, int(a.Grade), a.Attempt); err != nil {
			return fmt.Errorf("insert quiz answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session append: %w", err)
	}
	return nil
}

func (r *sessionRepository) List(ctx context.Context, since *time.Time) ([]entity.QuizSessionRecord, error) {
	query := `
		SELECT id, list_id, mode, started_at, duration_ms, first_attempt_correct, total_items
		FROM quiz_sessions`
	var args []interface{}
	if since != nil {
		query += ` WHERE started_at >= ?`
		args = append(args, *since)
	}
	query += ` ORDER BY started_at, id`

	var rows []sessionRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list quiz sessions: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	sessions := make([]entity.QuizSessionRecord, 0, len(rows))
	index := make(map[string]int, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		var mode entity.QuizMode
		if err := mode.UnmarshalText([]byte(row.Mode)); err != nil {
			return nil, err
		}
		index[row.ID] = len(sessions)
		ids = append(ids, row.ID)
		sessions = append(sessions, entity.QuizSessionRecord{
			ID:                  row.ID,
			ListID:              row.ListID,
			Mode:                mode,
			StartedAt:           row.StartedAt,
			Duration:            time.Duration(row.DurationMs) * time.Millisecond,
			FirstAttemptCorrect: row.FirstAttemptCorrect,
			TotalItems:          row.TotalItems,
		})
	}

	answerQuery, answerArgs, err := sqlx.In(`
		SELECT session_id, item_id, grade, attempt
		FROM quiz_answers WHERE session_id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build answer query: %w", err)
	}
	var answers []answerRow
	if err := r.db.SelectContext(ctx, &answers, r.db.Rebind(answerQuery), answerArgs...); err != nil {
		return nil, fmt.Errorf("list quiz answers: %w", err)
	}
	for _, a := range answers {
		i, ok := index[a.SessionID]
		if !ok {
			continue
		}
		sessions[i].Answers = append(sessions[i].Answers, entity.AnswerRecord{
			ItemID:  a.ItemID,
			Grade:   entity.Grade(a.Grade),
			Attempt: a.Attempt,
		})
	}
	return sessions, nil
}
