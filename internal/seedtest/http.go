package seedtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/javy001/trainingplanner/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitWorkouts submits workouts concurrently using a worker pool.
func submitWorkouts(ctx context.Context, config *Config, workouts []WorkoutPayload, stats *Stats) error {
	logger.Get().Info(ctx, "submitting workouts",
		logger.Int("count", len(workouts)),
		logger.Int("workers", config.Workers),
	)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/workouts"

	var (
		created int64
		failed  int64
	)

	workoutChan := make(chan WorkoutPayload, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for payload := range workoutChan {
				select {
				case <-ctx.Done():
					return
				default:
					if submitSingleWorkout(ctx, client, url, payload, config.Verbose) {
						atomic.AddInt64(&created, 1)
					} else {
						atomic.AddInt64(&failed, 1)
					}
				}
			}
		}()
	}

	go func() {
		defer close(workoutChan)
		for _, payload := range workouts {
			select {
			case <-ctx.Done():
				return
			case workoutChan <- payload:
			}
		}
	}()

	wg.Wait()

	stats.WorkoutsCreated = int(atomic.LoadInt64(&created))
	stats.WorkoutsFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "workout submission completed",
		logger.Int("created", stats.WorkoutsCreated),
		logger.Int("failed", stats.WorkoutsFailed),
	)

	if stats.WorkoutsFailed > 0 {
		return fmt.Errorf("%d workouts failed to submit", stats.WorkoutsFailed)
	}
	return nil
}

// submitSingleWorkout submits one workout and reports success.
func submitSingleWorkout(ctx context.Context, client *HTTPClient, url string, payload WorkoutPayload, verbose bool) bool {
	resp, err := client.Post(ctx, url, payload)
	if err != nil {
		return false
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return false
	}

	if resp.StatusCode != http.StatusCreated {
		if verbose {
			logger.Get().Warn(ctx, "workout rejected",
				logger.Int("status", resp.StatusCode),
				logger.String("body", string(body)),
			)
		}
		return false
	}
	return true
}
