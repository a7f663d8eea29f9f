package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eslsoft/lexrev/internal/entity"
)

var sessionStart = time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, items ...entity.VocabularyItem) (*LearningSession, *fakeRecordRepo, *fakeSessionRepo) {
	t.Helper()
	records := newFakeRecordRepo()
	sessions := newFakeSessionRepo()
	s := NewLearningSession(records, sessions)
	s.clock = func() time.Time { return sessionStart }
	if len(items) > 0 {
		if err := s.Start(items, 1, entity.ModeFlashcard); err != nil {
			t.Fatalf("start session: %v", err)
		}
	}
	return s, records, sessions
}

func item(id int64, text, translation string) entity.VocabularyItem {
	return entity.VocabularyItem{ID: id, ListID: 1, Text: text, Translation: translation}
}

func TestStartRequiresItems(t *testing.T) {
	s, _, _ := newTestSession(t)
	if err := s.Start(nil, 1, entity.ModeFlashcard); !errors.Is(err, entity.ErrEmptySession) {
		t.Fatalf("err = %v, want ErrEmptySession", err)
	}
}

func TestStartRejectsUnknownMode(t *testing.T) {
	s, _, _ := newTestSession(t)
	if err := s.Start([]entity.VocabularyItem{item(1, "cat", "kot")}, 1, entity.QuizMode(42)); !errors.Is(err, entity.ErrInvalidMode) {
		t.Fatalf("err = %v, want ErrInvalidMode", err)
	}
}

func TestSingleItemGraduatesAfterTwoKnown(t *testing.T) {
	s, _, _ := newTestSession(t, item(1, "cat", "kot"))
	ctx := context.Background()

	progress, err := s.SubmitBucket(ctx, entity.BucketKnown)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if progress.State != entity.WordLearning || progress.ConsecutiveCorrect != 1 {
		t.Fatalf("after 1st answer: state=%s consecutive=%d", progress.State, progress.ConsecutiveCorrect)
	}
	if s.IsComplete() {
		t.Fatal("session complete after a single correct answer")
	}

	progress, err = s.SubmitBucket(ctx, entity.BucketKnown)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if progress.State != entity.WordGraduated {
		t.Fatalf("state = %s, want graduated", progress.State)
	}
	if !s.IsComplete() {
		t.Fatal("session should be complete")
	}

	rec, err := s.Finish(ctx)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if rec.FirstAttemptCorrect != 1 || rec.TotalItems != 1 {
		t.Errorf("firstAttemptCorrect=%d totalItems=%d, want 1 and 1", rec.FirstAttemptCorrect, rec.TotalItems)
	}
	if len(rec.Answers) != 2 {
		t.Errorf("answers = %d, want 2", len(rec.Answers))
	}
}

func TestTwoItemRetrySequence(t *testing.T) {
	a, b := item(1, "cat", "kot"), item(2, "dog", "pies")
	s, _, _ := newTestSession(t, a, b)
	ctx := context.Background()

	// A fails on its first attempt and requeues behind B.
	if _, err := s.SubmitBucket(ctx, entity.BucketUnknown); err != nil {
		t.Fatalf("submit: %v", err)
	}
	current, _ := s.Current()
	if current.Item.ID != b.ID {
		t.Fatalf("head = item %d, want %d", current.Item.ID, b.ID)
	}

	// B correct once; head cycles back to A.
	if _, err := s.SubmitBucket(ctx, entity.BucketKnown); err != nil {
		t.Fatalf("submit: %v", err)
	}
	current, _ = s.Current()
	if current.Item.ID != a.ID {
		t.Fatalf("head = item %d, want %d", current.Item.ID, a.ID)
	}

	// A correct once, then B graduates on its second consecutive correct.
	if _, err := s.SubmitBucket(ctx, entity.BucketKnown); err != nil {
		t.Fatalf("submit: %v", err)
	}
	progress, err := s.SubmitBucket(ctx, entity.BucketKnown)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if progress.Item.ID != b.ID || progress.State != entity.WordGraduated {
		t.Fatalf("item %d state %s, want item %d graduated", progress.Item.ID, progress.State, b.ID)
	}

	// A graduates with its second consecutive correct after the failure.
	progress, err = s.SubmitBucket(ctx, entity.BucketKnown)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if progress.Item.ID != a.ID || progress.State != entity.WordGraduated {
		t.Fatalf("item %d state %s, want item %d graduated", progress.Item.ID, progress.State, a.ID)
	}
	if !s.IsComplete() {
		t.Fatal("session should be complete")
	}

	rec, err := s.Finish(ctx)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	// A failed its first attempt; B was correct on its first attempt.
	if rec.FirstAttemptCorrect != 1 {
		t.Errorf("firstAttemptCorrect = %d, want 1", rec.FirstAttemptCorrect)
	}
	if rec.TotalItems != 2 {
		t.Errorf("totalItems = %d, want 2", rec.TotalItems)
	}
}

func TestQueuePlusGraduatedIsConstant(t *testing.T) {
	items := []entity.VocabularyItem{item(1, "a", "1"), item(2, "b", "2"), item(3, "c", "3")}
	s, _, _ := newTestSession(t, items...)
	ctx := context.Background()

	buckets := []entity.AnswerBucket{
		entity.BucketUnknown, entity.BucketKnown, entity.BucketUnsure,
		entity.BucketKnown, entity.BucketKnown, entity.BucketKnown,
		entity.BucketKnown, entity.BucketKnown, entity.BucketKnown,
	}
	for i, bucket := range buckets {
		if s.IsComplete() {
			break
		}
		if _, err := s.SubmitBucket(ctx, bucket); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		if got := s.Remaining() + s.Graduated(); got != len(items) {
			t.Fatalf("after submit %d: remaining+graduated = %d, want %d", i, got, len(items))
		}
	}
}

func TestUnsureResetsStreakAndRequeues(t *testing.T) {
	s, _, _ := newTestSession(t, item(1, "cat", "kot"))
	ctx := context.Background()

	if _, err := s.SubmitBucket(ctx, entity.BucketKnown); err != nil {
		t.Fatalf("submit: %v", err)
	}
	progress, err := s.SubmitBucket(ctx, entity.BucketUnsure)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if progress.ConsecutiveCorrect != 0 {
		t.Errorf("consecutiveCorrect = %d, want 0", progress.ConsecutiveCorrect)
	}
	if progress.State != entity.WordLearning {
		t.Errorf("state = %s, want learning", progress.State)
	}
	if s.IsComplete() {
		t.Error("session must not complete without graduation")
	}
}

func TestSubmitAnswerPersistsRecord(t *testing.T) {
	s, records, _ := newTestSession(t, item(1, "cat", "kot"))
	ctx := context.Background()

	if _, err := s.SubmitBucket(ctx, entity.BucketKnown); err != nil {
		t.Fatalf("submit: %v", err)
	}

	rec, err := records.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if rec.Repetitions != 1 || rec.IntervalDays != 1 {
		t.Errorf("record = %+v, want repetitions 1 interval 1", rec)
	}
	if rec.LastReviewAt == nil || !rec.LastReviewAt.Equal(sessionStart) {
		t.Errorf("lastReviewAt = %v, want %v", rec.LastReviewAt, sessionStart)
	}
}

func TestFailedPutLeavesQueueUntouched(t *testing.T) {
	s, records, _ := newTestSession(t, item(1, "cat", "kot"))
	ctx := context.Background()

	storeErr := errors.New("disk full")
	records.putErr = storeErr
	if _, err := s.SubmitAnswer(ctx, entity.GradeDifficult); !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}

	current, err := s.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if current.Attempts != 0 || current.ConsecutiveCorrect != 0 || current.State != entity.WordNew {
		t.Errorf("progress advanced despite failed write: %+v", current)
	}
	if s.Remaining() != 1 {
		t.Errorf("remaining = %d, want 1", s.Remaining())
	}
}

func TestSubmitOnFinishedSession(t *testing.T) {
	s, _, _ := newTestSession(t, item(1, "cat", "kot"))
	ctx := context.Background()

	for !s.IsComplete() {
		if _, err := s.SubmitBucket(ctx, entity.BucketKnown); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if _, err := s.SubmitBucket(ctx, entity.BucketKnown); !errors.Is(err, entity.ErrNoActiveSession) {
		t.Fatalf("err = %v, want ErrNoActiveSession", err)
	}
}

func TestFinishBeforeComplete(t *testing.T) {
	s, _, _ := newTestSession(t, item(1, "cat", "kot"))
	if _, err := s.Finish(context.Background()); !errors.Is(err, entity.ErrSessionIncomplete) {
		t.Fatalf("err = %v, want ErrSessionIncomplete", err)
	}
}

func TestFinishTwice(t *testing.T) {
	s, _, _ := newTestSession(t, item(1, "cat", "kot"))
	ctx := context.Background()
	for !s.IsComplete() {
		if _, err := s.SubmitBucket(ctx, entity.BucketKnown); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	if _, err := s.Finish(ctx); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if _, err := s.Finish(ctx); !errors.Is(err, entity.ErrSessionFinished) {
		t.Fatalf("err = %v, want ErrSessionFinished", err)
	}
}

func TestForcedChoiceProtocol(t *testing.T) {
	s, records, _ := newTestSession(t, item(1, "cat", "kot"))
	if err := s.Start([]entity.VocabularyItem{item(1, "cat", "kot")}, 1, entity.ModeMultipleChoice); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctx := context.Background()

	// Wrong pick counts as "didn't know".
	progress, err := s.SubmitChoice(ctx, "pies")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if progress.LastGrade != entity.BucketUnknown.Grade() {
		t.Errorf("grade = %d, want %d", progress.LastGrade, entity.BucketUnknown.Grade())
	}
	rec, _ := records.Get(ctx, 1)
	if rec.Repetitions != 0 {
		t.Errorf("repetitions = %d, want 0 after failure", rec.Repetitions)
	}

	// Exact match counts as "knew it".
	progress, err = s.SubmitChoice(ctx, "kot")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if progress.LastGrade != entity.BucketKnown.Grade() {
		t.Errorf("grade = %d, want %d", progress.LastGrade, entity.BucketKnown.Grade())
	}
}

func TestReverseModeComparesWordText(t *testing.T) {
	s, _, _ := newTestSession(t, item(1, "cat", "kot"))
	if err := s.Start([]entity.VocabularyItem{item(1, "cat", "kot")}, 1, entity.ModeReverse); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctx := context.Background()

	progress, err := s.SubmitChoice(ctx, "cat")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if progress.LastGrade != entity.BucketKnown.Grade() {
		t.Errorf("grade = %d, want known", progress.LastGrade)
	}
}

func TestFinishRecordFields(t *testing.T) {
	s, _, sessions := newTestSession(t, item(1, "cat", "kot"))
	ctx := context.Background()

	finishTime := sessionStart.Add(3 * time.Minute)
	answered := 0
	s.clock = func() time.Time {
		if answered >= 2 {
			return finishTime
		}
		return sessionStart
	}

	for !s.IsComplete() {
		if _, err := s.SubmitBucket(ctx, entity.BucketKnown); err != nil {
			t.Fatalf("submit: %v", err)
		}
		answered++
	}
	rec, err := s.Finish(ctx)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}

	if rec.ID == "" {
		t.Error("record id is empty")
	}
	if rec.Mode != entity.ModeFlashcard || rec.ListID != 1 {
		t.Errorf("mode=%s list=%d, want flashcard list 1", rec.Mode, rec.ListID)
	}
	if !rec.StartedAt.Equal(sessionStart) {
		t.Errorf("startedAt = %v, want %v", rec.StartedAt, sessionStart)
	}
	if rec.Duration != 3*time.Minute {
		t.Errorf("duration = %v, want 3m", rec.Duration)
	}
	if len(sessions.log) != 1 {
		t.Fatalf("session log has %d entries, want 1", len(sessions.log))
	}
}
