package repository

import (
	"context"
	"time"

	"github.com/eslsoft/lexrev/internal/entity"
)

// SessionRepository is the append-only log of finished quiz sessions.
type SessionRepository interface {
	Append(ctx context.Context, rec *entity.QuizSessionRecord) error
	// List returns sessions in chronological order. A nil since returns
	// the full history.
	List(ctx context.Context, since *time.Time) ([]entity.QuizSessionRecord, error)
}
