package seedtest

import "time"

// Config holds configuration for the seed run.
type Config struct {
	BaseURL string        // Base URL of the service
	Weeks   int           // Number of past weeks to fill
	PerWeek int           // Workouts per week
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Enable verbose logging
}

// WorkoutPayload mirrors the POST /workouts request schema.
type WorkoutPayload struct {
	Date     string  `json:"date"`
	Sport    string  `json:"sport"`
	Duration float64 `json:"duration_hours"`
	Distance float64 `json:"distance_miles"`
	Notes    string  `json:"notes"`
}

// Stats holds seed run statistics.
type Stats struct {
	WorkoutsGenerated int
	WorkoutsCreated   int
	WorkoutsFailed    int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
