package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Client is a Provider backed by an HTTP recognition endpoint. The
// endpoint accepts a JSON body with a base64-encoded image and returns
// the recognized blocks with per-block confidences.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a recognition client for the given endpoint. The API
// key is optional; when set it is sent as a bearer token.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type recognizeRequest struct {
	Image string `json:"image"`
}

type recognizeResponse struct {
	Blocks []Block `json:"blocks"`
	Error  string  `json:"error,omitempty"`
}

// Recognize reads the image at the given path and submits it for text
// recognition.
func (c *Client) Recognize(ctx context.Context, imageRef string) (*Result, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("no recognition endpoint configured (set ocr.endpoint)")
	}

	data, err := os.ReadFile(imageRef)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	body, err := json.Marshal(recognizeRequest{
		Image: base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recognition request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read recognition response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recognition endpoint returned %d: %s", resp.StatusCode, string(payload))
	}

	var parsed recognizeResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse recognition response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("recognition failed: %s", parsed.Error)
	}

	return &Result{Blocks: parsed.Blocks}, nil
}

// Static is a Provider that returns a fixed result, for tests and offline
// use.
type Static struct {
	Result *Result
	Err    error
}

func (s *Static) Recognize(ctx context.Context, imageRef string) (*Result, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Result, nil
}
