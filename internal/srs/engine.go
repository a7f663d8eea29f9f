// Package srs implements the SM-2 spaced repetition algorithm over
// per-item review records. All functions are pure: time enters as an
// explicit parameter and nothing here touches storage.
package srs

import (
	"math"
	"time"

	"github.com/eslsoft/lexrev/internal/entity"
)

// Familiarity thresholds on the ease factor. Each boundary belongs to
// the upper tier, e.g. ease 2.0 classifies as level 3.
var familiarityBounds = [...]float64{1.7, 2.0, 2.3, 2.6}

// Review applies one graded recall to a record and returns the next
// record. The input is not modified. Grades outside [0, 5] are clamped,
// never rejected.
func Review(rec entity.SRSRecord, grade entity.Grade, now time.Time) entity.SRSRecord {
	grade = entity.ClampGrade(float64(grade))

	next := rec
	if grade.Passed() {
		next.Ease = nextEase(rec.Ease, grade)
		next.Repetitions = rec.Repetitions + 1
		switch next.Repetitions {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Ceil(float64(rec.IntervalDays) * next.Ease))
		}
	} else {
		// Failed recall: restart the repetition ladder and penalise ease.
		next.Ease = math.Max(entity.MinimumEase, rec.Ease-0.2)
		next.Repetitions = 0
		next.IntervalDays = 1
	}

	reviewedAt := now
	due := now.AddDate(0, 0, next.IntervalDays)
	next.LastReviewAt = &reviewedAt
	next.NextReviewAt = &due
	return next
}

// nextEase is the canonical SM-2 ease update for a successful recall,
// floored at the minimum ease.
func nextEase(ease float64, grade entity.Grade) float64 {
	q := float64(grade)
	ease += 0.1 - (5-q)*(0.08+(5-q)*0.02)
	return math.Max(entity.MinimumEase, ease)
}

// Classify maps an ease factor onto the 1-5 familiarity scale. The level
// is always derived from ease, never stored on its own.
func Classify(ease float64) int {
	for i, bound := range familiarityBounds {
		if ease < bound {
			return i + 1
		}
	}
	return len(familiarityBounds) + 1
}

// IsDue reports whether an item scheduled for nextReviewAt should be
// reviewed at now. A nil schedule means never reviewed, due immediately.
func IsDue(nextReviewAt *time.Time, now time.Time) bool {
	return nextReviewAt == nil || !nextReviewAt.After(now)
}
