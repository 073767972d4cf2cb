// Package client provides an HTTP client for the chatbox backend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/raphaelgruber/chatbox-go/internal/chat"
	"github.com/raphaelgruber/chatbox-go/internal/metrics"
)

// Client talks to the chatbox backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a backend client. If baseURL is empty, uses the
// CHATBOX_SERVER_URL env var or defaults to localhost:8080. Timeout can be
// configured via CHATBOX_CLIENT_TIMEOUT (LLM-backed replies can be slow).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("CHATBOX_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	timeout := 2 * time.Minute
	if t := os.Getenv("CHATBOX_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend base URL the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// errorEnvelope is the backend's error response body.
type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Send posts a chat message and returns the bot's reply. Its signature
// matches chat.SendFunc so it can be injected into a chat container directly.
func (c *Client) Send(ctx context.Context, text string) (chat.Reply, error) {
	reqBody, err := json.Marshal(map[string]string{"message": text})
	if err != nil {
		return chat.Reply{}, fmt.Errorf("marshal request: %w", err)
	}

	var resp struct {
		Status   string `json:"status"`
		Response string `json:"response"`
	}
	if err := c.do(ctx, http.MethodPost, "/chat", bytes.NewReader(reqBody), &resp); err != nil {
		return chat.Reply{}, err
	}

	return chat.Reply{Text: resp.Response}, nil
}

// History fetches the server-side session history.
func (c *Client) History(ctx context.Context) ([]chat.Message, error) {
	var resp struct {
		Status  string         `json:"status"`
		History []chat.Message `json:"history"`
	}
	if err := c.do(ctx, http.MethodGet, "/chat/history", nil, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

// Clear discards the server-side session history.
func (c *Client) Clear(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/chat/clear", nil, nil)
}

// ListFiles returns the filenames of stored PDFs.
func (c *Client) ListFiles(ctx context.Context) ([]string, error) {
	var resp struct {
		Status string   `json:"status"`
		Files  []string `json:"files"`
	}
	if err := c.do(ctx, http.MethodGet, "/pdf/list", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Files, nil
}

// DeleteFile removes a stored PDF by name.
func (c *Client) DeleteFile(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/pdf/"+url.PathEscape(name), nil, nil)
}

// Stats fetches the backend's request statistics.
func (c *Client) Stats(ctx context.Context) (metrics.Snapshot, error) {
	var snap metrics.Snapshot
	if err := c.do(ctx, http.MethodGet, "/monitoring/stats", nil, &snap); err != nil {
		return metrics.Snapshot{}, err
	}
	return snap, nil
}

// do executes a request against the backend and decodes the JSON response
// into result when non-nil. Non-2xx responses are turned into errors carrying
// the server's message.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Message != "" {
			return fmt.Errorf("server error: %s", envelope.Message)
		}
		return fmt.Errorf("server error: %s - %s", resp.Status, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
