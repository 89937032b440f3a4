package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/ironcycle/internal/history"
	"github.com/meltforce/ironcycle/internal/models"
)

// HTTPClient implements DataSource by calling the IronCycle REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// data lives on the remote server (accessed over Tailscale). The API
// key is only needed for log_set; reads are open.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: *HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet && c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, data)
	}

	return data, nil
}

func (c *HTTPClient) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *HTTPClient) ActiveMesocycle(ctx context.Context) (*models.Mesocycle, error) {
	body, err := c.get(ctx, "/api/v1/mesocycles/active")
	if err != nil {
		return nil, err
	}

	var meso models.Mesocycle
	if err := json.Unmarshal(body, &meso); err != nil {
		return nil, fmt.Errorf("httpclient: decode mesocycle: %w", err)
	}
	return &meso, nil
}

func (c *HTTPClient) NextWeekTargets(ctx context.Context, mesocycleID uuid.UUID, weekNumber int) ([]models.WeekTargets, error) {
	path := fmt.Sprintf("/api/v1/mesocycles/%s/weeks/%d/targets", mesocycleID, weekNumber)
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var targets []models.WeekTargets
	if err := json.Unmarshal(body, &targets); err != nil {
		return nil, fmt.Errorf("httpclient: decode week targets: %w", err)
	}
	return targets, nil
}

func (c *HTTPClient) Workout(ctx context.Context, workoutID uuid.UUID) (*models.Workout, []models.WorkoutSet, error) {
	body, err := c.get(ctx, "/api/v1/workouts/"+workoutID.String())
	if err != nil {
		return nil, nil, err
	}

	var resp struct {
		Workout *models.Workout     `json:"workout"`
		Sets    []models.WorkoutSet `json:"sets"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("httpclient: decode workout: %w", err)
	}
	return resp.Workout, resp.Sets, nil
}

func (c *HTTPClient) ExerciseHistory(ctx context.Context, exerciseID uuid.UUID) (*history.ExerciseHistory, error) {
	body, err := c.get(ctx, "/api/v1/exercises/"+exerciseID.String()+"/history")
	if err != nil {
		return nil, err
	}

	var h history.ExerciseHistory
	if err := json.Unmarshal(body, &h); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercise history: %w", err)
	}
	return &h, nil
}

func (c *HTTPClient) ListExercises(ctx context.Context) ([]models.Exercise, error) {
	body, err := c.get(ctx, "/api/v1/exercises")
	if err != nil {
		return nil, err
	}

	var exercises []models.Exercise
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("httpclient: decode exercises: %w", err)
	}
	return exercises, nil
}

func (c *HTTPClient) LogSet(ctx context.Context, setID uuid.UUID, reps int, weight float64) (*models.WorkoutSet, error) {
	payload, err := json.Marshal(map[string]any{"reps": reps, "weight": weight})
	if err != nil {
		return nil, fmt.Errorf("httpclient: encode log request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/api/v1/sets/"+setID.String()+"/log", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var set models.WorkoutSet
	if err := json.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("httpclient: decode set: %w", err)
	}
	return &set, nil
}
