package entity

import (
	"encoding"
	"fmt"
	"time"
)

// QuizMode identifies the presentation protocol a session ran with.
type QuizMode int

const (
	ModeFlashcard      QuizMode = iota + 1 // self-graded flashcards
	ModeMultipleChoice                     // forced choice among options
	ModeReverse                            // translation -> word lookup
)

var (
	quizModeNames = [...]string{ModeFlashcard: "flashcard", ModeMultipleChoice: "multiple_choice", ModeReverse: "reverse"}

	quizModeByName = map[string]QuizMode{
		"flashcard":       ModeFlashcard,
		"multiple_choice": ModeMultipleChoice,
		"reverse":         ModeReverse,
	}
)

var (
	_ fmt.Stringer             = QuizMode(0)
	_ encoding.TextMarshaler   = QuizMode(0)
	_ encoding.TextUnmarshaler = (*QuizMode)(nil)
)

// IsValid reports whether m is a known quiz mode.
func (m QuizMode) IsValid() bool {
	return m >= ModeFlashcard && m <= ModeReverse
}

func (m QuizMode) String() string {
	if m.IsValid() {
		return quizModeNames[m]
	}
	return fmt.Sprintf("QuizMode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m QuizMode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(m))
	}
	return []byte(quizModeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *QuizMode) UnmarshalText(text []byte) error {
	v, ok := quizModeByName[string(text)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidMode, text)
	}
	*m = v
	return nil
}

// ParseQuizMode resolves a mode name such as "flashcard".
func ParseQuizMode(name string) (QuizMode, error) {
	var m QuizMode
	if err := m.UnmarshalText([]byte(name)); err != nil {
		return 0, err
	}
	return m, nil
}

// AnswerRecord is one graded answer inside a finished session.
type AnswerRecord struct {
	ItemID  int64
	Grade   Grade
	Attempt int
}

// QuizSessionRecord is the immutable log entry a finished session appends
// to the store. Analytics consume it; nothing ever updates it.
type QuizSessionRecord struct {
	ID                  string
	ListID              int64
	Mode                QuizMode
	StartedAt           time.Time
	Duration            time.Duration
	FirstAttemptCorrect int
	TotalItems          int
	Answers             []AnswerRecord
}
