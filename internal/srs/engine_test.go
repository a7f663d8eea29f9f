package srs

import (
	"math"
	"testing"
	"time"

	"github.com/eslsoft/lexrev/internal/entity"
)

const epsilon = 1e-9

var reviewTime = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %.6f, want %.6f", name, got, want)
	}
}

// sameRecord compares records field by field; the date fields are
// pointers, so whole-struct equality would compare identity, not time.
func sameRecord(a, b entity.SRSRecord) bool {
	return a.ItemID == b.ItemID &&
		a.Ease == b.Ease &&
		a.IntervalDays == b.IntervalDays &&
		a.Repetitions == b.Repetitions &&
		sameTime(a.LastReviewAt, b.LastReviewAt) &&
		sameTime(a.NextReviewAt, b.NextReviewAt)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func TestReviewFirstPerfectAnswer(t *testing.T) {
	rec := entity.NewSRSRecord(1)
	next := Review(rec, entity.GradePerfect, reviewTime)

	if next.Repetitions != 1 {
		t.Errorf("repetitions = %d, want 1", next.Repetitions)
	}
	if next.IntervalDays != 1 {
		t.Errorf("interval = %d, want 1", next.IntervalDays)
	}
	if next.Ease <= entity.DefaultEase {
		t.Errorf("ease = %.4f, want > %.2f", next.Ease, entity.DefaultEase)
	}
	assertFloat(t, "ease", next.Ease, 2.6)
}

func TestReviewIntervalTiers(t *testing.T) {
	rec := entity.NewSRSRecord(1)

	// First success: one day.
	rec = Review(rec, entity.GradeHesitation, reviewTime)
	if rec.IntervalDays != 1 {
		t.Fatalf("interval after 1st success = %d, want 1", rec.IntervalDays)
	}

	// Second success: six days.
	rec = Review(rec, entity.GradeHesitation, reviewTime.AddDate(0, 0, 1))
	if rec.IntervalDays != 6 {
		t.Fatalf("interval after 2nd success = %d, want 6", rec.IntervalDays)
	}

	// Third success: ceil(previous interval * new ease).
	prev := rec
	rec = Review(rec, entity.GradeHesitation, reviewTime.AddDate(0, 0, 7))
	want := int(math.Ceil(float64(prev.IntervalDays) * rec.Ease))
	if rec.IntervalDays != want {
		t.Fatalf("interval after 3rd success = %d, want %d", rec.IntervalDays, want)
	}
	if rec.IntervalDays < prev.IntervalDays {
		t.Fatalf("interval shrank from %d to %d", prev.IntervalDays, rec.IntervalDays)
	}
}

func TestReviewFailureResets(t *testing.T) {
	rec := entity.SRSRecord{ItemID: 1, Ease: 2.5, IntervalDays: 30, Repetitions: 5}

	for _, grade := range []entity.Grade{entity.GradeBlackout, entity.GradeIncorrect, entity.GradeFamiliar} {
		next := Review(rec, grade, reviewTime)
		if next.Repetitions != 0 {
			t.Errorf("grade %d: repetitions = %d, want 0", grade, next.Repetitions)
		}
		if next.IntervalDays != 1 {
			t.Errorf("grade %d: interval = %d, want 1", grade, next.IntervalDays)
		}
		assertFloat(t, "ease after failure", next.Ease, 2.3)
	}
}

func TestReviewEaseFloor(t *testing.T) {
	rec := entity.SRSRecord{ItemID: 1, Ease: entity.MinimumEase, IntervalDays: 1, Repetitions: 0}

	next := Review(rec, entity.GradeBlackout, reviewTime)
	assertFloat(t, "ease at floor after failure", next.Ease, entity.MinimumEase)
	if next.IntervalDays != 1 || next.Repetitions != 0 {
		t.Errorf("got interval=%d repetitions=%d, want 1 and 0", next.IntervalDays, next.Repetitions)
	}

	// Low-quality passes also must not push ease under the floor.
	next = Review(rec, entity.GradeDifficult, reviewTime)
	if next.Ease < entity.MinimumEase {
		t.Errorf("ease = %.4f dropped below floor", next.Ease)
	}
}

func TestReviewEaseNeverBelowFloor(t *testing.T) {
	for ease := 1.3; ease <= 3.0; ease += 0.1 {
		for grade := entity.GradeBlackout; grade <= entity.GradePerfect; grade++ {
			rec := entity.SRSRecord{ItemID: 1, Ease: ease, IntervalDays: 4, Repetitions: 3}
			next := Review(rec, grade, reviewTime)
			if next.Ease < entity.MinimumEase {
				t.Fatalf("ease %.2f grade %d: next ease %.4f below floor", ease, grade, next.Ease)
			}
		}
	}
}

func TestReviewClampsOutOfRangeGrades(t *testing.T) {
	rec := entity.NewSRSRecord(1)

	high := Review(rec, entity.Grade(9), reviewTime)
	perfect := Review(rec, entity.GradePerfect, reviewTime)
	if !sameRecord(high, perfect) {
		t.Errorf("grade 9 result differs from grade 5: %+v vs %+v", high, perfect)
	}

	low := Review(rec, entity.Grade(-3), reviewTime)
	blackout := Review(rec, entity.GradeBlackout, reviewTime)
	if !sameRecord(low, blackout) {
		t.Errorf("grade -3 result differs from grade 0: %+v vs %+v", low, blackout)
	}
}

func TestReviewIsDeterministic(t *testing.T) {
	rec := entity.NewSRSRecord(7)
	first := Review(rec, entity.GradeDifficult, reviewTime)
	second := Review(rec, entity.GradeDifficult, reviewTime)
	if !sameRecord(first, second) {
		t.Errorf("same input produced different records: %+v vs %+v", first, second)
	}
}

func TestReviewSetsDates(t *testing.T) {
	rec := entity.NewSRSRecord(1)
	next := Review(rec, entity.GradeDifficult, reviewTime)

	if next.LastReviewAt == nil || !next.LastReviewAt.Equal(reviewTime) {
		t.Fatalf("last review = %v, want %v", next.LastReviewAt, reviewTime)
	}
	wantDue := reviewTime.AddDate(0, 0, next.IntervalDays)
	if next.NextReviewAt == nil || !next.NextReviewAt.Equal(wantDue) {
		t.Fatalf("next review = %v, want %v", next.NextReviewAt, wantDue)
	}
}

func TestReviewDoesNotMutateInput(t *testing.T) {
	rec := entity.SRSRecord{ItemID: 1, Ease: 2.5, IntervalDays: 6, Repetitions: 2}
	saved := rec
	Review(rec, entity.GradeBlackout, reviewTime)
	if rec != saved {
		t.Errorf("input record mutated: %+v", rec)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		ease float64
		want int
	}{
		{1.3, 1},
		{1.69, 1},
		{1.7, 2}, // boundary belongs to the upper tier
		{1.99, 2},
		{2.0, 3},
		{2.29, 3},
		{2.3, 4},
		{2.5, 4},
		{2.6, 5},
		{3.2, 5},
	}
	for _, tt := range tests {
		if got := Classify(tt.ease); got != tt.want {
			t.Errorf("Classify(%.2f) = %d, want %d", tt.ease, got, tt.want)
		}
	}
}

func TestIsDue(t *testing.T) {
	past := reviewTime.Add(-time.Hour)
	future := reviewTime.Add(time.Hour)

	if !IsDue(nil, reviewTime) {
		t.Error("nil schedule should be due immediately")
	}
	if !IsDue(&past, reviewTime) {
		t.Error("past schedule should be due")
	}
	if !IsDue(&reviewTime, reviewTime) {
		t.Error("schedule equal to now should be due")
	}
	if IsDue(&future, reviewTime) {
		t.Error("future schedule should not be due")
	}
}
