package service

import (
	"math"
	"time"

	"echo-bloom/internal/domain"
)

const (
	baseWellnessScore    = 50
	firstEchoMoodWeight  = 20
	runningMoodWeight    = 30
	streakWellnessBonus  = 2
	weekWarriorEchoes    = 7
	gratitudeGuruMinimum = 5
)

// ApplyEcho calcula el perfil resultante de sumar un echo al estado previo.
// prior nil significa primer echo del usuario. prior nunca se modifica.
func ApplyEcho(prior *domain.WellnessProfile, echo domain.Echo) domain.WellnessProfile {
	at := echo.CreatedAt.UTC()
	isGratitude := echo.SeedType == domain.SeedTypeGratitude

	var next domain.WellnessProfile
	if prior == nil {
		next = domain.WellnessProfile{
			UserID:             echo.UserID,
			TotalEchoes:        1,
			MonthlyReflections: 1,
			MoodAverage:        echo.MoodScore,
			CurrentStreak:      1,
			LongestStreak:      1,
			WellnessScore:      clampScore(baseWellnessScore + int(math.Round(echo.MoodScore*firstEchoMoodWeight))),
			Achievements:       []string{},
			LastEchoAt:         at,
			CreatedAt:          at,
		}
		if isGratitude {
			next.GratitudeCount = 1
		}
	} else {
		next = prior.Clone()
		oldCount := next.TotalEchoes
		next.TotalEchoes = oldCount + 1
		next.MonthlyReflections = nextMonthlyCount(next.MonthlyReflections, next.LastEchoAt, at)
		if isGratitude {
			next.GratitudeCount++
		}
		next.MoodAverage = (next.MoodAverage*float64(oldCount) + echo.MoodScore) / float64(next.TotalEchoes)
		next.CurrentStreak = nextStreak(next.CurrentStreak, next.LastEchoAt, at)
		if next.CurrentStreak > next.LongestStreak {
			next.LongestStreak = next.CurrentStreak
		}
		if at.After(next.LastEchoAt) {
			next.LastEchoAt = at
		}
		next.WellnessScore = WellnessScore(next.MoodAverage, next.CurrentStreak)
	}
	next.UpdatedAt = at

	grantAchievements(&next)
	return next
}

// WellnessScore combina promedio de animo y racha en [0,100].
func WellnessScore(moodAverage float64, streak int) int {
	return clampScore(baseWellnessScore + int(math.Round(moodAverage*runningMoodWeight)) + streak*streakWellnessBonus)
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// nextStreak aplica la politica por dia calendario UTC respecto del ultimo echo.
func nextStreak(current int, last, at time.Time) int {
	if last.IsZero() {
		return 1
	}
	days := daysBetween(last, at)
	switch {
	case days < 0:
		// echo con fecha anterior al ultimo registrado: no reescribe la racha
		return current
	case days == 0:
		if current < 1 {
			return 1
		}
		return current
	case days == 1:
		return current + 1
	default:
		return 1
	}
}

func nextMonthlyCount(current int, last, at time.Time) int {
	if last.IsZero() {
		return current + 1
	}
	last = last.UTC()
	if at.Year() != last.Year() || at.Month() != last.Month() {
		if at.After(last) {
			return 1
		}
	}
	return current + 1
}

func daysBetween(from, to time.Time) int {
	return int(utcDay(to).Sub(utcDay(from)).Hours() / 24)
}

func utcDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func grantAchievements(p *domain.WellnessProfile) {
	grant := func(id string) {
		if !p.HasAchievement(id) {
			p.Achievements = append(p.Achievements, id)
		}
	}
	if p.TotalEchoes == 1 {
		grant(domain.AchievementFirstBloom)
	}
	if p.TotalEchoes == weekWarriorEchoes {
		grant(domain.AchievementWeekWarrior)
	}
	if p.GratitudeCount >= gratitudeGuruMinimum {
		grant(domain.AchievementGratitudeGuru)
	}
}
