package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"loopa-cli/internal/app/errors"
	"loopa-cli/internal/app/model"
)

// SessionCookie is the credential cookie the service expects on every request.
const SessionCookie = "session_id"

// Config represents configuration for the Loopa HTTP API client.
type Config struct {
	BaseURL       string            `yaml:"base_url"`       // Base URL of the API (e.g., "http://localhost:8080/api")
	Session       string            `yaml:"session"`        // Session cookie value
	Timeout       time.Duration     `yaml:"timeout"`        // Request timeout
	CustomHeaders map[string]string `yaml:"custom_headers"` // Custom HTTP headers
}

// Client is a thin JSON-over-HTTP client for the transcription service. All
// state synchronization lives in the task store and segment collection; the
// client itself is stateless and safe for concurrent use.
type Client struct {
	config Config
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a client for the given config, filling in defaults.
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:8080/api"
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.CustomHeaders == nil {
		config.CustomHeaders = make(map[string]string)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// newRequest builds a request with the session cookie and custom headers set.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.config.Session != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: c.config.Session})
	}
	for key, value := range c.config.CustomHeaders {
		req.Header.Set(key, value)
	}
	return req, nil
}

// do executes the request and maps any transport failure or non-2xx status to
// the single wire-contract error surface for the operation. The caller owns
// the response body on success.
func (c *Client) do(req *http.Request, failure *errors.Error) (*http.Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return nil, failure
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		c.logger.Debug("unexpected status",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode))
		return nil, failure
	}
	return resp, nil
}

// getJSON issues a GET and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}, failure *errors.Error) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return failure
	}
	resp, err := c.do(req, failure)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return failure
	}
	return nil
}

// putJSON issues a PUT with a JSON body, discarding the response.
func (c *Client) putJSON(ctx context.Context, path string, in interface{}, failure *errors.Error) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return failure
	}
	req, err := c.newRequest(ctx, http.MethodPut, path, bytes.NewReader(payload))
	if err != nil {
		return failure
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, failure)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// GetTask fetches the current server-side state of a task.
func (c *Client) GetTask(ctx context.Context, taskID string) (model.Task, error) {
	var task model.Task
	err := c.getJSON(ctx, "/tasks/"+taskID, &task, errors.ErrLoadTaskFailed)
	return task, err
}

// GetSegments fetches the full segment list for a terminal-success task.
func (c *Client) GetSegments(ctx context.Context, taskID string) ([]model.Segment, error) {
	var segments []model.Segment
	err := c.getJSON(ctx, "/tasks/"+taskID+"/segments", &segments, errors.ErrLoadSegmentsFailed)
	return segments, err
}

// UpdateSegmentText persists an edited segment text.
func (c *Client) UpdateSegmentText(ctx context.Context, taskID, segmentID, text string) error {
	body := struct {
		Text string `json:"text"`
	}{Text: text}
	return c.putJSON(ctx, fmt.Sprintf("/tasks/%s/segments/%s", taskID, segmentID), body, errors.ErrUpdateSegmentFailed)
}

// UpdateSpeakerName persists a renamed speaker.
func (c *Client) UpdateSpeakerName(ctx context.Context, taskID, speakerID, name string) error {
	body := struct {
		Name string `json:"name"`
	}{Name: name}
	return c.putJSON(ctx, fmt.Sprintf("/tasks/%s/speakers/%s", taskID, speakerID), body, errors.ErrUpdateSpeakerFailed)
}

// GetAudio streams the task's audio. The caller must close the reader.
func (c *Client) GetAudio(ctx context.Context, taskID string) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/tasks/"+taskID+"/audio", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to request audio")
	}
	resp, err := c.do(req, errors.New("failed to load audio"))
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// History lists the session's uploads, newest first.
func (c *Client) History(ctx context.Context) ([]model.HistoryItem, error) {
	var items []model.HistoryItem
	err := c.getJSON(ctx, "/history", &items, errors.ErrLoadHistoryFailed)
	return items, err
}

// DeleteTask removes a task and its stored artifacts.
func (c *Client) DeleteTask(ctx context.Context, taskID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/tasks/"+taskID, nil)
	if err != nil {
		return errors.ErrDeleteTaskFailed
	}
	resp, err := c.do(req, errors.ErrDeleteTaskFailed)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// ListProjects lists the session's projects.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	err := c.getJSON(ctx, "/projects", &projects, errors.ErrLoadProjectsFailed)
	return projects, err
}

// GetProject fetches a single project.
func (c *Client) GetProject(ctx context.Context, projectID string) (model.Project, error) {
	var project model.Project
	err := c.getJSON(ctx, "/projects/"+projectID, &project, errors.ErrLoadProjectFailed)
	return project, err
}

// CreateProject creates a project and returns the server's record of it.
func (c *Client) CreateProject(ctx context.Context, name string, description string) (model.Project, error) {
	body := struct {
		Name        string  `json:"name"`
		Description *string `json:"description,omitempty"`
	}{Name: name}
	if description != "" {
		body.Description = &description
	}

	var project model.Project
	payload, err := json.Marshal(body)
	if err != nil {
		return project, errors.ErrCreateProjectFailed
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/projects", bytes.NewReader(payload))
	if err != nil {
		return project, errors.ErrCreateProjectFailed
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, errors.ErrCreateProjectFailed)
	if err != nil {
		return project, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		return project, errors.ErrCreateProjectFailed
	}
	return project, nil
}

// DeleteProject removes a project. Cascading behavior is the server's concern.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/projects/"+projectID, nil)
	if err != nil {
		return errors.ErrDeleteProjectFailed
	}
	resp, err := c.do(req, errors.ErrDeleteProjectFailed)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// ProjectFiles lists the tasks attached to a project.
func (c *Client) ProjectFiles(ctx context.Context, projectID string) ([]model.HistoryItem, error) {
	var items []model.HistoryItem
	err := c.getJSON(ctx, "/projects/"+projectID+"/files", &items, errors.ErrLoadFilesFailed)
	return items, err
}
