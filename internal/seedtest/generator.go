package seedtest

import (
	"context"
	"crypto/rand"
	"math"
	"math/big"
	"time"

	"github.com/javy001/trainingplanner/internal/domain/calendar"
	"github.com/javy001/trainingplanner/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
)

// Plausible training ranges per sport.
const (
	runMinHours   = 0.5
	runHoursRange = 1.5
	runPaceMPH    = 6.0

	rideMinHours   = 1.0
	rideHoursRange = 3.0
	ridePaceMPH    = 15.0

	swimMinHours   = 0.3
	swimHoursRange = 1.0
	swimPaceMPH    = 2.0
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

var seedSports = []string{"running", "cycling", "swimming"}

var seedNotes = []string{
	"easy effort",
	"tempo",
	"intervals",
	"long session",
	"recovery",
	"",
}

// generateWorkouts creates plausible training weeks ending this week.
func generateWorkouts(ctx context.Context, config *Config, stats *Stats) []WorkoutPayload {
	logger.Get().Info(ctx, "generating workouts",
		logger.Int("weeks", config.Weeks),
		logger.Int("perWeek", config.PerWeek),
	)

	thisMonday := calendar.MondayOfWeek(time.Now())
	workouts := make([]WorkoutPayload, 0, config.Weeks*config.PerWeek)

	for week := 0; week < config.Weeks; week++ {
		weekStart := thisMonday.AddDate(0, 0, -7*week)
		for i := 0; i < config.PerWeek; i++ {
			day := weekStart.AddDate(0, 0, int(getRandomFloat()*7))
			workouts = append(workouts, randomWorkout(day))
		}
	}

	stats.WorkoutsGenerated = len(workouts)
	return workouts
}

func randomWorkout(day time.Time) WorkoutPayload {
	sport := seedSports[int(getRandomFloat()*float64(len(seedSports)))%len(seedSports)]

	var hours, pace float64
	switch sport {
	case "running":
		hours = runMinHours + getRandomFloat()*runHoursRange
		pace = runPaceMPH
	case "cycling":
		hours = rideMinHours + getRandomFloat()*rideHoursRange
		pace = ridePaceMPH
	default:
		hours = swimMinHours + getRandomFloat()*swimHoursRange
		pace = swimPaceMPH
	}

	return WorkoutPayload{
		Date:     day.Format("2006-01-02"),
		Sport:    sport,
		Duration: roundTo(hours, 2),
		Distance: roundTo(hours*pace, 2),
		Notes:    seedNotes[int(getRandomFloat()*float64(len(seedNotes)))%len(seedNotes)],
	}
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
