package seedtest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/javy001/trainingplanner/pkg/logger"
)

// Run executes the complete seed run: health check, generation,
// submission and verification.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting workout seed run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("weeks", config.Weeks),
		logger.Int("perWeek", config.PerWeek),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
	)

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	workouts := generateWorkouts(ctx, config, stats)

	if err := submitWorkouts(ctx, config, workouts, stats); err != nil {
		return fmt.Errorf("workout submission failed: %w", err)
	}

	if err := verifyResults(ctx, config, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	logger.Get().Info(ctx, "seed run completed",
		logger.Int("generated", stats.WorkoutsGenerated),
		logger.Int("created", stats.WorkoutsCreated),
		logger.Int("failed", stats.WorkoutsFailed),
		logger.String("duration", stats.Duration.String()),
	)

	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}
