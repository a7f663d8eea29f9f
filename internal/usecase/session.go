package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/eslsoft/lexrev/internal/entity"
	"github.com/eslsoft/lexrev/internal/repository"
	"github.com/eslsoft/lexrev/internal/srs"
)

// GraduationThreshold is the number of uninterrupted correct answers an
// item needs before it may leave the active queue.
const GraduationThreshold = 2

// LearningSession drives one interactive quiz to completion. Items cycle
// through a FIFO queue: a correct answer moves an item toward graduation,
// anything else sends it to the back of the queue with its streak reset.
// A requeued item always goes to the tail, so no item is presented twice
// in a row.
//
// A session belongs to exactly one caller. Methods must not be invoked
// concurrently on the same instance.
type LearningSession struct {
	records  repository.RecordRepository
	sessions repository.SessionRepository
	clock    func() time.Time

	mode     entity.QuizMode
	listID   int64
	queue    []*entity.WordProgress
	finished []*entity.WordProgress
	answers  []entity.AnswerRecord

	firstAttemptCorrect int
	totalItems          int
	startedAt           time.Time
	done                bool
}

// NewLearningSession builds an idle session bound to the store. Call
// Start before submitting answers.
func NewLearningSession(records repository.RecordRepository, sessions repository.SessionRepository) *LearningSession {
	return &LearningSession{
		records:  records,
		sessions: sessions,
		clock:    time.Now,
	}
}

// Start seeds the active queue with one WordProgress per sampled item and
// resets all session counters.
func (s *LearningSession) Start(items []entity.VocabularyItem, listID int64, mode entity.QuizMode) error {
	if len(items) == 0 {
		return entity.ErrEmptySession
	}
	if !mode.IsValid() {
		return entity.ErrInvalidMode
	}

	s.mode = mode
	s.listID = listID
	s.queue = make([]*entity.WordProgress, 0, len(items))
	for _, item := range items {
		s.queue = append(s.queue, &entity.WordProgress{Item: item, State: entity.WordNew})
	}
	s.finished = nil
	s.answers = nil
	s.firstAttemptCorrect = 0
	s.totalItems = len(items)
	s.startedAt = s.clock()
	s.done = false
	return nil
}

// Current returns the item at the head of the active queue, the one the
// learner is being asked about right now.
func (s *LearningSession) Current() (entity.WordProgress, error) {
	if len(s.queue) == 0 {
		return entity.WordProgress{}, entity.ErrNoActiveSession
	}
	return *s.queue[0], nil
}

// SubmitAnswer grades the head of the active queue. The persisted review
// record is always updated through the store first; if that write fails
// the queue is left untouched and the error propagates, so storage and
// session state never diverge. The returned progress reflects the item
// after the answer.
func (s *LearningSession) SubmitAnswer(ctx context.Context, grade entity.Grade) (entity.WordProgress, error) {
	if s.done || len(s.queue) == 0 {
		return entity.WordProgress{}, entity.ErrNoActiveSession
	}
	grade = entity.ClampGrade(float64(grade))
	now := s.clock()
	head := s.queue[0]

	rec, err := s.records.Get(ctx, head.Item.ID)
	if err != nil {
		return entity.WordProgress{}, fmt.Errorf("load review record: %w", err)
	}
	if err := s.records.Put(ctx, srs.Review(rec, grade, now)); err != nil {
		return entity.WordProgress{}, fmt.Errorf("store review record: %w", err)
	}

	// First-attempt accounting happens before the attempt counter moves.
	if head.Attempts == 0 && grade.Passed() {
		s.firstAttemptCorrect++
	}
	s.answers = append(s.answers, entity.AnswerRecord{
		ItemID:  head.Item.ID,
		Grade:   grade,
		Attempt: head.Attempts + 1,
	})

	s.queue = s.queue[1:]
	if grade.Passed() {
		head.ConsecutiveCorrect++
		if head.ConsecutiveCorrect >= GraduationThreshold {
			head.State = entity.WordGraduated
			s.finished = append(s.finished, head)
		} else {
			head.State = entity.WordLearning
			s.queue = append(s.queue, head)
		}
	} else {
		head.ConsecutiveCorrect = 0
		head.State = entity.WordLearning
		s.queue = append(s.queue, head)
	}
	head.Attempts++
	head.LastGrade = grade

	return *head, nil
}

// SubmitBucket answers with the coarse three-way self-assessment used by
// the flashcard protocol.
func (s *LearningSession) SubmitBucket(ctx context.Context, bucket entity.AnswerBucket) (entity.WordProgress, error) {
	return s.SubmitAnswer(ctx, bucket.Grade())
}

// SubmitChoice answers the forced-choice protocols: the given answer is
// compared against the current item, an exact match counts as known and
// anything else as unknown. "Not sure" is unreachable here.
func (s *LearningSession) SubmitChoice(ctx context.Context, answer string) (entity.WordProgress, error) {
	current, err := s.Current()
	if err != nil {
		return entity.WordProgress{}, err
	}
	bucket := entity.BucketUnknown
	if answer == s.expectedAnswer(current.Item) {
		bucket = entity.BucketKnown
	}
	return s.SubmitBucket(ctx, bucket)
}

// expectedAnswer is the string a forced-choice answer is compared with.
// Reverse mode shows the translation and asks for the word; the other
// modes ask for the translation.
func (s *LearningSession) expectedAnswer(item entity.VocabularyItem) string {
	if s.mode == entity.ModeReverse {
		return item.Text
	}
	return item.Translation
}

// IsComplete reports whether every sampled item has graduated.
func (s *LearningSession) IsComplete() bool {
	return len(s.queue) == 0 && len(s.finished) > 0
}

// Finish appends the immutable session record to the store. It is valid
// only once the session is complete; afterwards the session rejects all
// further calls.
func (s *LearningSession) Finish(ctx context.Context) (*entity.QuizSessionRecord, error) {
	if s.done {
		return nil, entity.ErrSessionFinished
	}
	if !s.IsComplete() {
		return nil, entity.ErrSessionIncomplete
	}

	rec := &entity.QuizSessionRecord{
		ID:                  uuid.NewString(),
		ListID:              s.listID,
		Mode:                s.mode,
		StartedAt:           s.startedAt,
		Duration:            s.clock().Sub(s.startedAt),
		FirstAttemptCorrect: s.firstAttemptCorrect,
		TotalItems:          s.totalItems,
		Answers:             s.answers,
	}
	if err := s.sessions.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("append session record: %w", err)
	}
	s.done = true
	return rec, nil
}

// Remaining is the number of items still in the active queue.
func (s *LearningSession) Remaining() int { return len(s.queue) }

// Graduated is the number of items that left the queue.
func (s *LearningSession) Graduated() int { return len(s.finished) }
