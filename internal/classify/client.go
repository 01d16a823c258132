// Package classify talks to the remote headline classification service.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is the public deployment of the classification API.
	DefaultEndpoint = "https://validata-misinformation-detector.onrender.com/api/usercheck/title/"

	endpointEnvVar     = "NEWSGUARD_ENDPOINT"
	defaultHTTPTimeout = 60 * time.Second
	errorBodyLimit     = 512
)

// Request is the wire body sent to the classification endpoint.
type Request struct {
	Text string `json:"user_news"`
}

// Response is the decoded classification verdict.
type Response struct {
	Prediction    bool   `json:"prediction"`
	Analysis      string `json:"analysis,omitempty"`
	AnalysisError string `json:"analysis_error,omitempty"`
}

// Config describes how to build a Client.
type Config struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client classifies headlines.
type Client interface {
	Classify(ctx context.Context, req Request) (Response, error)
	Endpoint() string
}

// NewFromEnv resolves the endpoint from cfg, then NEWSGUARD_ENDPOINT, then the
// public default, and returns an HTTP-backed client.
func NewFromEnv(cfg Config) (Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		if env := strings.TrimSpace(os.Getenv(endpointEnvVar)); env != "" {
			endpoint = env
		} else {
			endpoint = DefaultEndpoint
		}
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid classification endpoint %q: %w", endpoint, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("classification endpoint %q must use http or https", endpoint)
	}
	return &httpClient{
		endpoint: endpoint,
		client:   pickHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}, nil
}

func pickHTTPClient(custom *http.Client, timeout time.Duration) *http.Client {
	if custom != nil {
		return custom
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &http.Client{Timeout: timeout}
}

type httpClient struct {
	endpoint string
	client   *http.Client
}

func (c *httpClient) Endpoint() string {
	return c.endpoint
}

func (c *httpClient) Classify(ctx context.Context, request Request) (Response, error) {
	buf, err := json.Marshal(request)
	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(buf))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		return Response{}, fmt.Errorf("classification API error: %s (%s)", resp.Status, strings.TrimSpace(string(body)))
	}

	return decodeResponse(resp.Body)
}

type wireResponse struct {
	Prediction    *bool   `json:"prediction"`
	Analysis      *string `json:"analysis"`
	AnalysisError *string `json:"analysis_error"`
}

func decodeResponse(reader io.Reader) (Response, error) {
	var wire wireResponse
	if err := json.NewDecoder(reader).Decode(&wire); err != nil {
		return Response{}, fmt.Errorf("failed to decode classification response: %w", err)
	}
	if wire.Prediction == nil {
		return Response{}, errors.New("classification response missing prediction")
	}
	// Any non-empty string counts, whitespace included.
	out := Response{Prediction: *wire.Prediction}
	if wire.Analysis != nil {
		out.Analysis = *wire.Analysis
	}
	if wire.AnalysisError != nil {
		out.AnalysisError = *wire.AnalysisError
	}
	return out, nil
}
