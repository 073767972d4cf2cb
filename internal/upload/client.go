package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Result is the parsed upload response, forwarded to the completion callback.
type Result struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Filename   string `json:"filename"`
	TextLength int    `json:"text_length"`
	FileSize   int64  `json:"file_size"`
}

// Client uploads PDF files to the backend's upload endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates an upload client for the given backend base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		endpoint: baseURL + "/pdf/upload",
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// Upload sends the file as a multipart request. onProgress, if non-nil, is
// called with 0-100 as the request body is consumed. Any failure, transport
// or HTTP, is reported with a "Failed to upload file" prefix.
func (c *Client) Upload(ctx context.Context, path string, onProgress func(percent int)) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to upload file: %w", err)
	}
	defer f.Close()

	// The server caps uploads at 16MB, so buffering the multipart body is
	// fine and gives an exact length for progress reporting.
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("Failed to upload file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("Failed to upload file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("Failed to upload file: %w", err)
	}

	pr := &progressReader{
		r:      bytes.NewReader(body.Bytes()),
		total:  int64(body.Len()),
		report: onProgress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, pr)
	if err != nil {
		return nil, fmt.Errorf("Failed to upload file: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = pr.total

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Failed to upload file: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("Failed to upload file: server returned %s: %s", resp.Status, serverMessage(respBody))
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("Failed to upload file: parse response: %w", err)
	}

	return &result, nil
}

// serverMessage extracts the error envelope message, falling back to the raw
// body.
func serverMessage(body []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	return string(body)
}

// progressReader reports consumption of the request body as a percentage.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report func(int)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.report != nil && p.total > 0 {
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		p.report(pct)
	}
	return n, err
}
