package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/eslsoft/lexrev/internal/entity"
	"github.com/eslsoft/lexrev/internal/repository"
)

// StreakSummary describes the user's study-day streaks.
type StreakSummary struct {
	Current       int
	Longest       int
	LastStudyDate *time.Time
}

// DailyCount is one day of a zero-filled daily series.
type DailyCount struct {
	Day     time.Time
	Correct int
	Total   int
}

// AccuracySummary aggregates answer correctness over a trailing window.
type AccuracySummary struct {
	OverallPct float64
	Daily      []DailyCount
}

// GradeDistribution counts answers per canonical grade, indexed 0-5.
type GradeDistribution [6]int

// DailyDuration is one day of study time.
type DailyDuration struct {
	Day   time.Time
	Total time.Duration
}

// StudyTimeSummary aggregates session durations over a trailing window.
type StudyTimeSummary struct {
	Total      time.Duration
	PerSession time.Duration
	Daily      []DailyDuration
}

// Streaks derives streak metrics from the session log. A streak day is
// any calendar day with at least one session; the current streak keeps
// counting if the last study day is today or yesterday, so an unstudied
// today does not break it. An empty log yields all zeros.
func Streaks(sessions []entity.QuizSessionRecord, now time.Time) StreakSummary {
	if len(sessions) == 0 {
		return StreakSummary{}
	}

	days := make(map[time.Time]struct{}, len(sessions))
	var last time.Time
	for _, s := range sessions {
		days[startOfDay(s.StartedAt)] = struct{}{}
		if s.StartedAt.After(last) {
			last = s.StartedAt
		}
	}

	ordered := lo.Keys(days)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })

	longest, run := 1, 1
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].AddDate(0, 0, 1).Equal(ordered[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	current := 0
	cursor := startOfDay(now)
	if _, ok := days[cursor]; !ok {
		// Today not yet studied; yesterday still continues the streak.
		cursor = cursor.AddDate(0, 0, -1)
	}
	for {
		if _, ok := days[cursor]; !ok {
			break
		}
		current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return StreakSummary{Current: current, Longest: longest, LastStudyDate: &last}
}

// Accuracy reports overall and per-day answer correctness for sessions
// inside the trailing window. The daily series is zero-filled, oldest
// day first.
func Accuracy(sessions []entity.QuizSessionRecord, now time.Time, windowDays int) AccuracySummary {
	sessions = windowed(sessions, now, windowDays)

	byDay := make(map[time.Time]DailyCount)
	correct, total := 0, 0
	for _, s := range sessions {
		day := startOfDay(s.StartedAt)
		count := byDay[day]
		for _, a := range s.Answers {
			count.Total++
			total++
			if a.Grade.Passed() {
				count.Correct++
				correct++
			}
		}
		byDay[day] = count
	}

	summary := AccuracySummary{Daily: dailySeries(byDay, now, windowDays)}
	if total > 0 {
		summary.OverallPct = 100 * float64(correct) / float64(total)
	}
	return summary
}

// QualityDistribution counts answers per grade inside the trailing window.
func QualityDistribution(sessions []entity.QuizSessionRecord, now time.Time, windowDays int) GradeDistribution {
	var dist GradeDistribution
	for _, s := range windowed(sessions, now, windowDays) {
		for _, a := range s.Answers {
			if a.Grade >= entity.GradeBlackout && a.Grade <= entity.GradePerfect {
				dist[a.Grade]++
			}
		}
	}
	return dist
}

// StudyTime aggregates recorded session durations inside the trailing
// window. Sessions without a duration count as zero.
func StudyTime(sessions []entity.QuizSessionRecord, now time.Time, windowDays int) StudyTimeSummary {
	sessions = windowed(sessions, now, windowDays)

	total := lo.SumBy(sessions, func(s entity.QuizSessionRecord) time.Duration {
		return s.Duration
	})

	byDay := make(map[time.Time]time.Duration)
	for _, s := range sessions {
		byDay[startOfDay(s.StartedAt)] += s.Duration
	}

	summary := StudyTimeSummary{Total: total}
	if len(sessions) > 0 {
		summary.PerSession = total / time.Duration(len(sessions))
	}

	if windowDays > 0 {
		start := startOfDay(now).AddDate(0, 0, -(windowDays - 1))
		for i := 0; i < windowDays; i++ {
			day := start.AddDate(0, 0, i)
			summary.Daily = append(summary.Daily, DailyDuration{Day: day, Total: byDay[day]})
		}
	} else {
		days := lo.Keys(byDay)
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
		for _, day := range days {
			summary.Daily = append(summary.Daily, DailyDuration{Day: day, Total: byDay[day]})
		}
	}
	return summary
}

// windowed keeps sessions whose calendar day falls inside the trailing
// window ending today. A non-positive window keeps the full history.
func windowed(sessions []entity.QuizSessionRecord, now time.Time, windowDays int) []entity.QuizSessionRecord {
	if windowDays <= 0 {
		return sessions
	}
	cutoff := startOfDay(now).AddDate(0, 0, -(windowDays - 1))
	return lo.Filter(sessions, func(s entity.QuizSessionRecord, _ int) bool {
		return !s.StartedAt.Before(cutoff)
	})
}

func dailySeries(byDay map[time.Time]DailyCount, now time.Time, windowDays int) []DailyCount {
	var series []DailyCount
	if windowDays > 0 {
		start := startOfDay(now).AddDate(0, 0, -(windowDays - 1))
		for i := 0; i < windowDays; i++ {
			day := start.AddDate(0, 0, i)
			count := byDay[day]
			count.Day = day
			series = append(series, count)
		}
		return series
	}
	days := lo.Keys(byDay)
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	for _, day := range days {
		count := byDay[day]
		count.Day = day
		series = append(series, count)
	}
	return series
}

// StatsUsecase exposes the session-log analytics behind the store for
// callers that do not hold the log themselves.
type StatsUsecase interface {
	Streaks(ctx context.Context, now time.Time) (StreakSummary, error)
	Accuracy(ctx context.Context, now time.Time, windowDays int) (AccuracySummary, error)
	QualityDistribution(ctx context.Context, now time.Time, windowDays int) (GradeDistribution, error)
	StudyTime(ctx context.Context, now time.Time, windowDays int) (StudyTimeSummary, error)
}

// NewStatsUsecase wires the session repository with the pure aggregators.
func NewStatsUsecase(sessions repository.SessionRepository) StatsUsecase {
	return &statsUsecase{sessions: sessions}
}

type statsUsecase struct {
	sessions repository.SessionRepository
}

func (u *statsUsecase) Streaks(ctx context.Context, now time.Time) (StreakSummary, error) {
	log, err := u.sessions.List(ctx, nil)
	if err != nil {
		return StreakSummary{}, err
	}
	return Streaks(log, now), nil
}

func (u *statsUsecase) Accuracy(ctx context.Context, now time.Time, windowDays int) (AccuracySummary, error) {
	log, err := u.sessions.List(ctx, nil)
	if err != nil {
		return AccuracySummary{}, err
	}
	return Accuracy(log, now, windowDays), nil
}

func (u *statsUsecase) QualityDistribution(ctx context.Context, now time.Time, windowDays int) (GradeDistribution, error) {
	log, err := u.sessions.List(ctx, nil)
	if err != nil {
		return GradeDistribution{}, err
	}
	return QualityDistribution(log, now, windowDays), nil
}

func (u *statsUsecase) StudyTime(ctx context.Context, now time.Time, windowDays int) (StudyTimeSummary, error) {
	log, err := u.sessions.List(ctx, nil)
	if err != nil {
		return StudyTimeSummary{}, err
	}
	return StudyTime(log, now, windowDays), nil
}
