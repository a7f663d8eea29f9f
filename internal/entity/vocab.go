package entity

import "time"

// VocabularyItem is a single word or phrase a user studies. The scheduling
// core never mutates items; it only keys its review records by item ID.
type VocabularyItem struct {
	ID          int64
	ListID      int64
	Text        string
	Translation string
	SourceLang  string
	TargetLang  string
	CreatedAt   time.Time
}

// WordList groups vocabulary items for sampling quiz batches.
type WordList struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Normalize ensures defaults before persistence.
func (v *VocabularyItem) Normalize(now time.Time) {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	if v.SourceLang == "" {
		v.SourceLang = "en"
	}
}
