package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/javy001/trainingplanner/internal/domain/model"
	"github.com/javy001/trainingplanner/internal/domain/sport"
)

const defaultFetchTimeout = 30 * time.Second

// bridgeRecord mirrors the JSON shape served by the health-export bridge.
type bridgeRecord struct {
	ID             string    `json:"id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	ActivityType   string    `json:"activity_type"`
	DistanceMeters float64   `json:"distance_meters"`
	SourceName     string    `json:"source_name"`
}

// HTTPProvider fetches workout records from a health-export bridge over
// HTTP. The bridge serves GET {base}/workouts?start=...&end=... with
// RFC3339 bounds and responds with a JSON record array.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// HTTPOption applies a configuration option to the HTTPProvider.
type HTTPOption func(*HTTPProvider)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(p *HTTPProvider) {
		if client != nil {
			p.client = client
		}
	}
}

// NewHTTPProvider creates a provider reading from the bridge at baseURL.
func NewHTTPProvider(baseURL string, opts ...HTTPOption) *HTTPProvider {
	p := &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultFetchTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchWorkouts fetches the range [start, end]. Transport failures and
// 5xx responses map to ErrUnavailable; 401/403 map to ErrAuthorization.
// Records with activity types outside the supported set are discarded,
// and the result is sorted ascending by start time.
func (p *HTTPProvider) FetchWorkouts(ctx context.Context, start, end time.Time) ([]model.ExternalWorkoutRecord, error) {
	const op = "source.fetch_workouts"

	q := url.Values{}
	q.Set("start", start.Format(time.RFC3339))
	q.Set("end", end.Format(time.RFC3339))
	endpoint := fmt.Sprintf("%s/workouts?%s", p.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s: %w: status %d", op, ErrAuthorization, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%s: %w: status %d", op, ErrUnavailable, resp.StatusCode)
	}

	var raw []bridgeRecord
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}

	records := make([]model.ExternalWorkoutRecord, 0, len(raw))
	for _, r := range raw {
		s := sport.FromActivityType(r.ActivityType)
		if !s.Supported() {
			continue
		}
		records = append(records, model.ExternalWorkoutRecord{
			ExternalID:     r.ID,
			StartTime:      r.StartTime,
			EndTime:        r.EndTime,
			Sport:          s,
			DistanceMeters: r.DistanceMeters,
			SourceProvider: r.SourceName,
		})
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].StartTime.Before(records[j].StartTime)
	})
	return records, nil
}
