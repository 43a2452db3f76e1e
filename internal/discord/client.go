package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
)

const (
	apiTimeout     = 10 * time.Second
	apiMaxRetries  = 3
	apiRetryDelay  = 500 * time.Millisecond
	apiJitterMaxMs = 100

	headerRequestID = "X-Request-Id"
)

// DrawAPI is the subset of the LuckyDraw HTTP API the bot uses
type DrawAPI interface {
	StartSession(ctx context.Context, sessionID uuid.UUID) (*domain.SessionSummary, error)
	ListGroups(ctx context.Context, sessionID uuid.UUID) ([]string, error)
	DrawGroup(ctx context.Context, sessionID uuid.UUID, group string) (*domain.GroupDrawOutcome, error)
	DrawNext(ctx context.Context, sessionID uuid.UUID, group string) (*domain.PrizeDrawOutcome, error)
	Winners(ctx context.Context, sessionID uuid.UUID) ([]domain.WinnerRecord, error)
	Ping(ctx context.Context) error
}

// APIError is a non-2xx answer from the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API returned status: %d", e.StatusCode)
	}
	return "API error: " + e.Message
}

// APIClient handles communication with the LuckyDraw API
type APIClient struct {
	BaseURL string
	Client  *http.Client
	APIKey  string
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: apiTimeout,
		},
		APIKey: apiKey,
	}
}

// doRequest performs an HTTP request. Requests marked retryable are repeated
// with exponential backoff on transport failures and 5xx answers; draws are
// not, since a lost response may still have committed winners.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body interface{}, retryable bool) (*http.Response, error) {
	var reqBody []byte
	if body != nil {
		var err error
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	target := c.BaseURL + path
	attempts := 1
	if retryable {
		attempts += apiMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(rand.IntN(apiJitterMaxMs)) * time.Millisecond
			delay := apiRetryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			slog.Info(LogMsgRetryingRequest, "attempt", attempt, "path", path, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}
		if id := logger.GetRequestID(ctx); id != "" {
			req.Header.Set(headerRequestID, id)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn(LogMsgRequestFailed, "error", err, "attempt", attempt, "path", path)
			continue
		}

		if resp.StatusCode < http.StatusInternalServerError || !retryable {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn(LogMsgServerErrorRetrying, "status", resp.StatusCode, "attempt", attempt, "path", path)
	}

	if !retryable {
		return nil, lastErr
	}
	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// call runs a request and decodes a 2xx body into out
func (c *APIClient) call(ctx context.Context, method, path string, body, out interface{}, retryable bool) error {
	resp, err := c.doRequest(ctx, method, path, body, retryable)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var errResp struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &errResp); err == nil {
		apiErr.Message = errResp.Error
	}
	return apiErr
}

func sessionPath(sessionID uuid.UUID, suffix string) string {
	return "/api/v1/sessions/" + url.PathEscape(sessionID.String()) + suffix
}

// StartSession creates the session over the server's default datasets, or
// returns the existing one. Safe to repeat.
func (c *APIClient) StartSession(ctx context.Context, sessionID uuid.UUID) (*domain.SessionSummary, error) {
	req := map[string]interface{}{
		"session_id":           sessionID.String(),
		"use_default_datasets": true,
	}
	var summary domain.SessionSummary
	if err := c.call(ctx, http.MethodPost, "/api/v1/sessions", req, &summary, true); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListGroups returns the groups that still have prizes
func (c *APIClient) ListGroups(ctx context.Context, sessionID uuid.UUID) ([]string, error) {
	var resp struct {
		Groups []string `json:"groups"`
	}
	if err := c.call(ctx, http.MethodGet, sessionPath(sessionID, "/groups"), nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Groups, nil
}

// DrawGroup draws every remaining prize of group
func (c *APIClient) DrawGroup(ctx context.Context, sessionID uuid.UUID, group string) (*domain.GroupDrawOutcome, error) {
	var outcome domain.GroupDrawOutcome
	err := c.call(ctx, http.MethodPost, sessionPath(sessionID, "/draws"), map[string]string{"group": group}, &outcome, false)
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// DrawNext reveals the next prize of group
func (c *APIClient) DrawNext(ctx context.Context, sessionID uuid.UUID, group string) (*domain.PrizeDrawOutcome, error) {
	var outcome domain.PrizeDrawOutcome
	err := c.call(ctx, http.MethodPost, sessionPath(sessionID, "/draws/next"), map[string]string{"group": group}, &outcome, false)
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}

// Winners returns the full ledger
func (c *APIClient) Winners(ctx context.Context, sessionID uuid.UUID) ([]domain.WinnerRecord, error) {
	var resp struct {
		Winners []domain.WinnerRecord `json:"winners"`
	}
	if err := c.call(ctx, http.MethodGet, sessionPath(sessionID, "/winners"), nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Winners, nil
}

// Ping checks the API liveness endpoint once
func (c *APIClient) Ping(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/healthz", nil, nil, false)
}

// statusOf returns the HTTP status carried by err, or 0
func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
