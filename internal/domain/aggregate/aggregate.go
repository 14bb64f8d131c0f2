// Package aggregate computes the time-bucketed series and totals used by
// display logic. Aggregates are recomputed per call, never persisted.
package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/javy001/trainingplanner/internal/domain/calendar"
	"github.com/javy001/trainingplanner/internal/domain/model"
	"github.com/javy001/trainingplanner/internal/domain/sport"
)

// Metric selects which workout quantity is aggregated.
type Metric int

const (
	// MetricDuration aggregates hours.
	MetricDuration Metric = iota
	// MetricDistance aggregates miles.
	MetricDistance
)

// String returns the wire name of the metric.
func (m Metric) String() string {
	if m == MetricDistance {
		return "distance"
	}
	return "duration"
}

// ParseMetric maps a wire name to a Metric. Duration is the default for
// an empty string.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "duration":
		return MetricDuration, nil
	case "distance":
		return MetricDistance, nil
	default:
		return MetricDuration, fmt.Errorf("unknown metric: %s", s)
	}
}

func (m Metric) value(w model.Workout) float64 {
	if m == MetricDistance {
		return w.DistanceMiles
	}
	return w.DurationHours
}

// DailySeriesPoint is one cumulative sample for a (day, sport) pair.
type DailySeriesPoint struct {
	Day        time.Time   `json:"day"`
	DayLabel   string      `json:"day_label"`
	Sport      sport.Sport `json:"-"`
	SportName  string      `json:"sport"`
	Cumulative float64     `json:"cumulative"`
}

// CumulativeSeries computes, for each day in days and each sport, the
// running total of metric across the days processed so far. Day N's value
// for a sport is the sum of that sport's daily totals for days 1..N, so
// the per-sport sequence is non-decreasing. Points are ordered by day
// position, sports in their fixed order within a day.
func CumulativeSeries(workouts []model.Workout, metric Metric, days []time.Time) []DailySeriesPoint {
	running := make(map[sport.Sport]float64, len(sport.All()))
	points := make([]DailySeriesPoint, 0, len(days)*len(sport.All()))
	for _, day := range days {
		for _, s := range sport.All() {
			for _, w := range workouts {
				if w.Sport == s && calendar.SameDay(w.Date, day) {
					running[s] += metric.value(w)
				}
			}
			points = append(points, DailySeriesPoint{
				Day:        day,
				DayLabel:   calendar.DayLabel(day),
				Sport:      s,
				SportName:  s.String(),
				Cumulative: running[s],
			})
		}
	}
	return points
}

// WeeklyTotal is the plain (not cumulative) sum of a metric for one
// Monday-start week, with a per-sport breakdown.
type WeeklyTotal struct {
	WeekStart time.Time          `json:"week_start"`
	Label     string             `json:"label"`
	Total     float64            `json:"total"`
	BySport   map[string]float64 `json:"by_sport"`
}

// WeeklyTotals computes one entry per week overlapping [start, end],
// ascending by week start, zero-filling weeks without workouts. A workout
// counts toward the week its date's Monday falls in; workouts whose week
// start lies outside [weekStart(start), end] are ignored.
func WeeklyTotals(workouts []model.Workout, metric Metric, start, end time.Time) []WeeklyTotal {
	weeks := calendar.WeekStarts(start, end)
	totals := make([]WeeklyTotal, len(weeks))
	// Weeks are keyed by calendar date, not time.Time, so a workout whose
	// timestamp carries a different offset still lands in its week.
	index := make(map[string]int, len(weeks))
	for i, week := range weeks {
		totals[i] = WeeklyTotal{
			WeekStart: week,
			Label:     calendar.WeekLabel(week),
			BySport:   zeroSportTotals(),
		}
		index[weekKey(week)] = i
	}

	for _, w := range workouts {
		i, ok := index[weekKey(calendar.MondayOfWeek(w.Date))]
		if !ok {
			continue
		}
		v := metric.value(w)
		totals[i].Total += v
		if w.Sport.Supported() {
			totals[i].BySport[w.Sport.String()] += v
		}
	}
	return totals
}

func weekKey(week time.Time) string {
	return week.Format("2006-01-02")
}

// SportTotals sums metric per sport across the given workouts.
func SportTotals(workouts []model.Workout, metric Metric) map[string]float64 {
	totals := zeroSportTotals()
	for _, w := range workouts {
		if w.Sport.Supported() {
			totals[w.Sport.String()] += metric.value(w)
		}
	}
	return totals
}

// WeekSummary describes one week of training: hours per sport and total.
type WeekSummary struct {
	WeekStart  time.Time          `json:"week_start"`
	WeekEnd    time.Time          `json:"week_end"`
	TotalHours float64            `json:"total_hours"`
	BySport    map[string]float64 `json:"hours_by_sport"`
	Workouts   int                `json:"workouts"`
}

// SummarizeWeek computes the summary for the week containing day.
func SummarizeWeek(workouts []model.Workout, day time.Time) WeekSummary {
	start := calendar.MondayOfWeek(day)
	end := calendar.SundayOfWeek(day)
	summary := WeekSummary{
		WeekStart: start,
		WeekEnd:   end,
		BySport:   zeroSportTotals(),
	}
	for _, w := range workouts {
		if w.Date.Before(start) || w.Date.After(end) {
			continue
		}
		summary.TotalHours += w.DurationHours
		summary.Workouts++
		if w.Sport.Supported() {
			summary.BySport[w.Sport.String()] += w.DurationHours
		}
	}
	return summary
}

func zeroSportTotals() map[string]float64 {
	totals := make(map[string]float64, len(sport.All()))
	for _, s := range sport.All() {
		totals[s.String()] = 0
	}
	return totals
}
