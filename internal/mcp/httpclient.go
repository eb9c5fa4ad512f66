package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/workoutlog"
)

var errNotFound = errors.New("not found")

// HTTPClient implements DataSource by calling the liftlog REST API.
// Used when the MCP binary runs next to an already running liftlog server.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	return c.do(req, path, http.StatusOK)
}

func (c *HTTPClient) post(ctx context.Context, path string, v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("httpclient: encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, http.StatusCreated)
}

func (c *HTTPClient) do(req *http.Request, path string, want int) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	switch resp.StatusCode {
	case want:
		return body, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("httpclient: %s: %w", path, errNotFound)
	case http.StatusBadRequest:
		return nil, fmt.Errorf("httpclient: %s rejected: %s", path, apiError(body))
	default:
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, apiError(body))
	}
}

// apiError extracts the message of an {"error": "..."} body.
func apiError(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}

func decodeJSON[T any](body []byte, what string) (T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("httpclient: decode %s: %w", what, err)
	}
	return v, nil
}

func exercisePath(id, suffix string) string {
	return "/api/v1/exercises/" + url.PathEscape(id) + suffix
}

func (c *HTTPClient) ListExercises(ctx context.Context, category, query string, favoritesOnly bool) ([]models.Exercise, error) {
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	if query != "" {
		params.Set("q", query)
	}
	if favoritesOnly {
		params.Set("favorites", "true")
	}

	body, err := c.get(ctx, "/api/v1/exercises", params)
	if err != nil {
		return nil, err
	}
	return decodeJSON[[]models.Exercise](body, "exercises")
}

func (c *HTTPClient) ListSets(ctx context.Context, exerciseID string) ([]models.WorkoutSet, error) {
	body, err := c.get(ctx, exercisePath(exerciseID, "/sets"), nil)
	if err != nil {
		return nil, err
	}
	return decodeJSON[[]models.WorkoutSet](body, "sets")
}

func (c *HTTPClient) PersonalRecords(ctx context.Context, exerciseID string) (*models.PersonalRecords, error) {
	body, err := c.get(ctx, exercisePath(exerciseID, "/records"), nil)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeJSON[*models.PersonalRecords](body, "personal records")
}

func (c *HTTPClient) LastSession(ctx context.Context, exerciseID string, includeToday bool) ([]models.WorkoutSet, error) {
	params := url.Values{}
	params.Set("include_today", strconv.FormatBool(includeToday))

	body, err := c.get(ctx, exercisePath(exerciseID, "/last-session"), params)
	if err != nil {
		return nil, err
	}
	return decodeJSON[[]models.WorkoutSet](body, "last session")
}

func (c *HTTPClient) History(ctx context.Context, exerciseID string) (*workoutlog.ExerciseHistory, error) {
	body, err := c.get(ctx, exercisePath(exerciseID, "/history"), nil)
	if err != nil {
		return nil, err
	}
	return decodeJSON[*workoutlog.ExerciseHistory](body, "history")
}

func (c *HTTPClient) Favorites(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/api/v1/favorites", nil)
	if err != nil {
		return nil, err
	}
	return decodeJSON[[]string](body, "favorites")
}

// LogSet validates in locally so malformed sets never reach the server.
func (c *HTTPClient) LogSet(ctx context.Context, in models.NewSet) (*models.WorkoutSet, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	body, err := c.post(ctx, exercisePath(in.ExerciseID, "/sets"), in)
	if err != nil {
		return nil, err
	}
	return decodeJSON[*models.WorkoutSet](body, "set")
}
