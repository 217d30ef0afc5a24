package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"echo-bloom/internal/domain"
)

const (
	analyticsWindow        = 30 * 24 * time.Hour
	trendWindow            = 7 * 24 * time.Hour
	maxEmotionDistribution = 10
	trendCompareSpan       = 3
	trendDeltaThreshold    = 0.2
	strongStreakDays       = 7
	buildingStreakDays     = 3
	flourishingEchoCount   = 30
	dayLayout              = "2006-01-02"
)

// AnalyticsInput reune todo lo necesario para calcular un reporte sin tocar storage.
type AnalyticsInput struct {
	UserID   string
	Echoes   []domain.Echo // ultimos 30 dias, cualquier orden
	Profile  domain.WellnessProfile
	Activity domain.ActivityCounts // conteos de 30 dias
	Now      time.Time
}

// ComputeAnalytics arma el reporte historico. Es pura: mismo input, mismo reporte.
func ComputeAnalytics(in AnalyticsInput) domain.AnalyticsReport {
	now := in.Now.UTC()
	echoes := sortedByCreation(in.Echoes)

	thirty := dailyMoodSeries(echoes)
	seven := trailingDays(thirty, now.Add(-trendWindow))
	distribution := emotionDistribution(echoes)
	stats := activityStats(in.Activity)

	report := domain.AnalyticsReport{
		UserID: in.UserID,
		Profile: domain.ProfileSnapshot{
			WellnessScore:  in.Profile.WellnessScore,
			CurrentStreak:  in.Profile.CurrentStreak,
			LongestStreak:  in.Profile.LongestStreak,
			TotalEchoes:    in.Profile.TotalEchoes,
			GratitudeCount: in.Profile.GratitudeCount,
			Achievements:   nonNilTags(in.Profile.Achievements),
		},
		MoodTrends: domain.MoodTrends{
			SevenDays:      seven,
			ThirtyDays:     thirty,
			CurrentAverage: roundTo(meanMood(seven), 2),
		},
		EmotionDistribution: distribution,
		ActivityStats:       stats,
		WellnessTrajectory:  wellnessTrajectory(echoes),
		GeneratedAt:         now,
	}
	report.Insights = buildInsights(distribution, in.Activity, seven, in.Profile.CurrentStreak, len(echoes))
	return report
}

func sortedByCreation(echoes []domain.Echo) []domain.Echo {
	out := make([]domain.Echo, len(echoes))
	copy(out, echoes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func dailyMoodSeries(echoes []domain.Echo) []domain.DailyMood {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, e := range echoes {
		key := e.CreatedAt.UTC().Format(dayLayout)
		sums[key] += e.MoodScore
		counts[key]++
	}
	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)

	series := make([]domain.DailyMood, 0, len(days))
	for _, day := range days {
		series = append(series, domain.DailyMood{
			Date:      day,
			MoodScore: sums[day] / float64(counts[day]),
			EchoCount: counts[day],
		})
	}
	return series
}

// trailingDays conserva los dias cuya medianoche UTC no es anterior a since.
func trailingDays(series []domain.DailyMood, since time.Time) []domain.DailyMood {
	out := make([]domain.DailyMood, 0, len(series))
	for _, d := range series {
		day, err := time.Parse(dayLayout, d.Date)
		if err != nil {
			continue
		}
		if !day.Before(since) {
			out = append(out, d)
		}
	}
	return out
}

func meanMood(series []domain.DailyMood) float64 {
	if len(series) == 0 {
		return 0
	}
	total := 0.0
	for _, d := range series {
		total += d.MoodScore
	}
	return total / float64(len(series))
}

func emotionDistribution(echoes []domain.Echo) []domain.EmotionShare {
	var order []string
	counts := make(map[string]int)
	total := 0
	for _, e := range echoes {
		for _, tag := range e.EmotionTags {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
			total++
		}
	}
	if total == 0 {
		return []domain.EmotionShare{}
	}

	shares := make([]domain.EmotionShare, 0, len(order))
	for _, tag := range order {
		shares = append(shares, domain.EmotionShare{
			Emotion:    tag,
			Count:      counts[tag],
			Percentage: roundTo(float64(counts[tag])/float64(total)*100, 1),
		})
	}
	// Estable: a igual conteo gana la emocion vista primero.
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})
	if len(shares) > maxEmotionDistribution {
		shares = shares[:maxEmotionDistribution]
	}
	return shares
}

func activityStats(counts domain.ActivityCounts) domain.ActivityStats {
	return domain.ActivityStats{
		Breathing: counts[domain.ActivityBreathing],
		Journal:   counts[domain.ActivityJournal],
		Gratitude: counts[domain.ActivityGratitude],
		Grounding: counts[domain.ActivityGrounding],
		Total:     counts.Total(),
	}
}

func wellnessTrajectory(echoes []domain.Echo) []domain.WeeklyWellness {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, e := range echoes {
		year, week := e.CreatedAt.UTC().ISOWeek()
		key := fmt.Sprintf("%04d-W%02d", year, week)
		sums[key] += (e.MoodScore + 1) * 50
		counts[key]++
	}
	weeks := make([]string, 0, len(counts))
	for week := range counts {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)

	out := make([]domain.WeeklyWellness, 0, len(weeks))
	for _, week := range weeks {
		out = append(out, domain.WeeklyWellness{
			Week:          week,
			WellnessScore: roundTo(sums[week]/float64(counts[week]), 1),
		})
	}
	return out
}

func buildInsights(distribution []domain.EmotionShare, activity domain.ActivityCounts, seven []domain.DailyMood, streak, echoCount int) []string {
	insights := []string{}

	if len(distribution) > 0 {
		top := distribution[0]
		insights = append(insights, fmt.Sprintf("Your most frequent emotion this month is '%s' (%.1f%% of the time)", top.Emotion, top.Percentage))
	}

	if kind, n := mostUsedActivity(activity); n > 0 {
		insights = append(insights, fmt.Sprintf("You've been most engaged with %s exercises (%d sessions)", kind, n))
	}

	if len(seven) >= 2 {
		recent, earlier := trendHalves(seven)
		switch {
		case recent > earlier+trendDeltaThreshold:
			insights = append(insights, "Your mood has been improving over the past week - keep up the great work! 🌟")
		case recent < earlier-trendDeltaThreshold:
			insights = append(insights, "Your mood has dipped recently. Consider trying a breathing or grounding exercise.")
		}
	}

	switch {
	case streak >= strongStreakDays:
		insights = append(insights, fmt.Sprintf("Amazing! You're on a %d-day streak! 🔥", streak))
	case streak >= buildingStreakDays:
		insights = append(insights, fmt.Sprintf("You're building momentum with a %d-day streak! Keep going!", streak))
	}

	switch {
	case echoCount >= flourishingEchoCount:
		insights = append(insights, fmt.Sprintf("You've created %d echoes this month - your garden is flourishing! 🌸", echoCount))
	case echoCount == 0:
		insights = append(insights, "Start your wellness journey by creating your first echo today!")
	}

	return insights
}

// trendHalves promedia los ultimos y los primeros min(3, n/2) dias; las dos ventanas nunca se solapan.
func trendHalves(seven []domain.DailyMood) (recent, earlier float64) {
	span := trendCompareSpan
	if half := len(seven) / 2; half < span {
		span = half
	}
	return meanMood(seven[len(seven)-span:]), meanMood(seven[:span])
}

// mostUsedActivity desempata por el orden de domain.ActivityKinds.
func mostUsedActivity(counts domain.ActivityCounts) (domain.ActivityKind, int) {
	var best domain.ActivityKind
	most := 0
	for _, kind := range domain.ActivityKinds {
		if counts[kind] > most {
			best, most = kind, counts[kind]
		}
	}
	return best, most
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

func nonNilTags(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
