package duui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"pipeline_monitor/config"
	"pipeline_monitor/models"
	"pipeline_monitor/pkg/logging"
	"strings"
)

var ErrNotFound = errors.New("resource not found")

// Client reads processes, their event logs, pipelines and documents from
// the pipeline backend's REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.DuuiAPIURL == "" {
		return nil, fmt.Errorf("empty DUUI_API_URL")
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.DuuiAPIURL, "/"),
		apiKey:     cfg.DuuiAPIKey,
		httpClient: &http.Client{Timeout: cfg.FetchTimeout},
	}, nil
}

type timelineResponse struct {
	Timeline []models.ProcessEvent `json:"timeline"`
}

type documentsResponse struct {
	Documents []models.Document `json:"documents"`
	Count     int               `json:"count"`
}

func (c *Client) GetProcess(ctx context.Context, id string) (*models.Process, error) {
	var process models.Process
	if err := c.get(ctx, "/processes/"+url.PathEscape(id), nil, &process); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, models.ErrProcessNotFound
		}
		return nil, err
	}
	return &process, nil
}

func (c *Client) GetEvents(ctx context.Context, processID string) ([]models.ProcessEvent, error) {
	var resp timelineResponse
	if err := c.get(ctx, "/processes/"+url.PathEscape(processID)+"/timeline", nil, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, models.ErrProcessNotFound
		}
		return nil, err
	}
	for i := range resp.Timeline {
		resp.Timeline[i].ProcessID = processID
	}
	return resp.Timeline, nil
}

func (c *Client) GetPipeline(ctx context.Context, id string) (*models.Pipeline, error) {
	var pipeline models.Pipeline
	if err := c.get(ctx, "/pipelines/"+url.PathEscape(id), nil, &pipeline); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, models.ErrPipelineNotFound
		}
		return nil, err
	}
	return &pipeline, nil
}

func (c *Client) GetDocuments(ctx context.Context, processID string) ([]models.Document, error) {
	query := url.Values{"process_id": {processID}}
	var resp documentsResponse
	if err := c.get(ctx, "/documents", query, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return resp.Documents, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logging.Logger.Warn("Error closing response body", "error", err)
		}
	}(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
