package entity

import "math"

// Grade is the quality of a recall on the canonical 0-5 SM-2 scale.
type Grade int

const (
	GradeBlackout   Grade = 0 // complete failure to recall
	GradeIncorrect  Grade = 1 // wrong, but the answer was recognised
	GradeFamiliar   Grade = 2 // wrong, yet the answer felt familiar
	GradeDifficult  Grade = 3 // correct with significant effort
	GradeHesitation Grade = 4 // correct after some hesitation
	GradePerfect    Grade = 5 // correct without hesitation
)

// PassThreshold separates failed from successful recalls: grades at or
// above it count as correct.
const PassThreshold = GradeDifficult

// ClampGrade maps an arbitrary response quality onto the canonical scale.
// Values are rounded to the nearest integer and clamped to [0, 5]; the
// engine is total over all inputs, out-of-range grades are never rejected.
func ClampGrade(quality float64) Grade {
	g := Grade(math.Round(quality))
	if g < GradeBlackout {
		return GradeBlackout
	}
	if g > GradePerfect {
		return GradePerfect
	}
	return g
}

// Passed reports whether the grade counts as a successful recall.
func (g Grade) Passed() bool {
	return g >= PassThreshold
}

// AnswerBucket is the coarse three-way self-assessment exposed by the
// direct-grade quiz protocol. Buckets map onto canonical grades; the
// full six-point scale stays internal to the engine.
type AnswerBucket int

const (
	BucketUnknown AnswerBucket = iota // "didn't know"
	BucketUnsure                      // "not sure"
	BucketKnown                       // "knew it"
)

// Grade converts the bucket to its canonical engine grade.
func (b AnswerBucket) Grade() Grade {
	switch b {
	case BucketKnown:
		return GradeDifficult
	case BucketUnsure:
		return GradeFamiliar
	default:
		return GradeIncorrect
	}
}
