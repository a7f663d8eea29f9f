package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	adapterrepo "github.com/eslsoft/lexrev/internal/adapter/repository"
	"github.com/eslsoft/lexrev/internal/infrastructure/config"
	"github.com/eslsoft/lexrev/internal/infrastructure/database"
	"github.com/eslsoft/lexrev/internal/infrastructure/logger"
	"github.com/eslsoft/lexrev/internal/repository"
	"github.com/eslsoft/lexrev/internal/usecase"
)

// Container aggregates the application dependencies.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	DB     *sqlx.DB

	Records  repository.RecordRepository
	Sessions repository.SessionRepository
	Vocab    repository.VocabularyRepository

	Review usecase.ReviewUsecase
	Stats  usecase.StatsUsecase
}

// Initialize loads configuration, opens the store and wires the
// usecases. The returned cleanup closes the database.
func Initialize() (*Container, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}

	db, cleanup, err := database.NewConnection(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect store: %w", err)
	}

	records := adapterrepo.NewRecordRepository(db)
	sessions := adapterrepo.NewSessionRepository(db)
	vocab := adapterrepo.NewVocabularyRepository(db)

	return &Container{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Records:  records,
		Sessions: sessions,
		Vocab:    vocab,
		Review:   usecase.NewReviewUsecase(records, vocab),
		Stats:    usecase.NewStatsUsecase(sessions),
	}, cleanup, nil
}

// NewSession builds a learning session bound to the container's store.
func (c *Container) NewSession() *usecase.LearningSession {
	return usecase.NewLearningSession(c.Records, c.Sessions)
}
