package seedtest

import (
	"fmt"
	"os"
	"time"

	"github.com/javy001/trainingplanner/internal/domain/calendar"
	"github.com/javy001/trainingplanner/pkg/logger"
)

// SetupLogging initializes the logger for CLI use.
func SetupLogging() error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// weekRangeStart returns the Monday of the earliest seeded week.
func weekRangeStart(weeks int) time.Time {
	return calendar.MondayOfWeek(time.Now()).AddDate(0, 0, -7*(weeks-1))
}

// weekRangeEnd returns the Sunday of the current week.
func weekRangeEnd() time.Time {
	return calendar.SundayOfWeek(time.Now())
}

// ShowHelp prints usage information for the seed tool.
func ShowHelp() {
	os.Stdout.WriteString(`Training Planner Seed Tool
==========================

Fills a running training planner instance with plausible workouts and
verifies they are visible through the read API.

Usage:
  go run cmd/seed-workouts/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -weeks int
        Number of past weeks to fill (default 4)
  -per-week int
        Workouts per week (default 6)
  -workers int
        Number of concurrent workers (default 4)
  -timeout duration
        HTTP request timeout (default 30s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed-workouts/main.go

  # Seed a whole season
  go run cmd/seed-workouts/main.go -weeks 12 -per-week 8

  # Seed a remote instance with verbose output
  go run cmd/seed-workouts/main.go -url http://planner:8080 -verbose
`)
}
