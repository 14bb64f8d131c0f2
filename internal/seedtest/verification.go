package seedtest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/javy001/trainingplanner/pkg/logger"
)

// statsResponse mirrors the GET /stats schema.
type statsResponse struct {
	WorkoutCount int `json:"workout_count"`
}

// weeklyTotal mirrors one entry of the GET /aggregates/weekly schema.
type weeklyTotal struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// verifyResults checks the seeded workouts are visible through the
// service's read surface.
func verifyResults(ctx context.Context, config *Config, stats *Stats) error {
	logger.Get().Info(ctx, "verifying seeded workouts")

	client := newHTTPClient(config.Timeout)

	resp, err := client.Get(ctx, config.BaseURL+"/stats")
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read stats: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stats request failed with status: %d", resp.StatusCode)
	}

	var s statsResponse
	if err := json.Unmarshal(body, &s); err != nil {
		return fmt.Errorf("failed to parse stats: %w", err)
	}

	if s.WorkoutCount < stats.WorkoutsCreated {
		return fmt.Errorf("expected at least %d workouts, service reports %d",
			stats.WorkoutsCreated, s.WorkoutCount)
	}

	logger.Get().Info(ctx, "workout count verified",
		logger.Int("created", stats.WorkoutsCreated),
		logger.Int("reported", s.WorkoutCount),
	)

	if config.Verbose {
		return logWeeklyTotals(ctx, config, client)
	}
	return nil
}

func logWeeklyTotals(ctx context.Context, config *Config, client *HTTPClient) error {
	start := weekRangeStart(config.Weeks)
	url := fmt.Sprintf("%s/aggregates/weekly?start=%s&end=%s",
		config.BaseURL, start.Format("2006-01-02"), weekRangeEnd().Format("2006-01-02"))

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to fetch weekly totals: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read weekly totals: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weekly totals request failed with status: %d", resp.StatusCode)
	}

	var totals []weeklyTotal
	if err := json.Unmarshal(body, &totals); err != nil {
		return fmt.Errorf("failed to parse weekly totals: %w", err)
	}

	for _, total := range totals {
		logger.Get().Info(ctx, "weekly total",
			logger.String("week", total.Label),
			logger.Float64("hours", total.Total),
		)
	}
	return nil
}
