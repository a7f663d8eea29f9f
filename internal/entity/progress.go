package entity

import "fmt"

// WordState is the in-session learning stage of an item. It is independent
// of the persisted familiarity level: an item can graduate out of today's
// quiz while its long-term ease stays low, and the other way round.
type WordState int

const (
	WordNew       WordState = iota + 1 // sampled, not yet answered
	WordLearning                       // answered at least once
	WordGraduated                      // left the active queue
)

var wordStateNames = [...]string{WordNew: "new", WordLearning: "learning", WordGraduated: "graduated"}

func (s WordState) String() string {
	if s >= WordNew && s <= WordGraduated {
		return wordStateNames[s]
	}
	return fmt.Sprintf("WordState(%d)", int(s))
}

// WordProgress tracks one sampled item for the lifetime of a single quiz
// session. It is never persisted.
type WordProgress struct {
	Item               VocabularyItem
	State              WordState
	Attempts           int
	ConsecutiveCorrect int
	LastGrade          Grade
}
