// Package rest talks to the tutoring backend over its JSON REST API.
package rest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/revisahub/revisahub/internal/api"
	"github.com/revisahub/revisahub/internal/profile"
	"resty.dev/v3"
)

type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
	retryDelay       time.Duration
}

var _ api.Client = (*Client)(nil)

// NewClient creates a client for the backend rooted at baseURL, e.g. "http://localhost:8001/api".
// Only idempotent reads are retried; retryAttempts is the number of extra attempts.
func NewClient(baseURL string, timeout time.Duration, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")

	return &Client{
		httpClient:       client,
		maxRetryAttempts: retryAttempts,
		retryDelay:       500 * time.Millisecond,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// 5xx and rate limiting
	if strings.Contains(errStr, "response error 5") || strings.Contains(errStr, "response error 429") {
		return true
	}
	return false
}

func (client *Client) withRetry(ctx context.Context, operation string, fn func() error) error {
	return retry.Do(
		func() error {
			err := fn()
			if err == nil {
				return nil
			}
			if !isRetryableError(err) {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Debug("retrying backend call",
				"operation", operation,
				"attempt", n+1,
				"error", err)
		}),
	)
}

func checkResponse(response *resty.Response) error {
	if response.IsError() {
		return fmt.Errorf("%w: response error %d: %s",
			api.ErrUnexpectedStatus, response.StatusCode(), response.String())
	}
	return nil
}

func (client *Client) get(ctx context.Context, path string, pathParams map[string]string, result any) error {
	return client.withRetry(ctx, path, func() error {
		response, err := client.httpClient.R().
			SetContext(ctx).
			SetPathParams(pathParams).
			SetResult(result).
			Get(path)
		if err != nil {
			return fmt.Errorf("httpClient.Get(%s) > %w", path, err)
		}
		return checkResponse(response)
	})
}

func (client *Client) post(ctx context.Context, path string, body, result any) error {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		Post(path)
	if err != nil {
		return fmt.Errorf("httpClient.Post(%s) > %w", path, err)
	}
	return checkResponse(response)
}

// CreateProfile registers the onboarding answers and returns the stored profile.
func (client *Client) CreateProfile(ctx context.Context, answers profile.AnswerSet) (profile.Profile, error) {
	var result profile.Profile
	if err := client.post(ctx, "/profiles", answers, &result); err != nil {
		return profile.Profile{}, err
	}
	if result.ID == "" {
		return profile.Profile{}, fmt.Errorf("response has no profile id")
	}
	return result, nil
}

func (client *Client) GetProfile(ctx context.Context, profileID string) (profile.Profile, error) {
	var result profile.Profile
	if err := client.get(ctx, "/profiles/{profileId}", map[string]string{
		"profileId": profileID,
	}, &result); err != nil {
		return profile.Profile{}, err
	}
	return result, nil
}

func (client *Client) ListSessions(ctx context.Context, profileID string) ([]api.SessionSummary, error) {
	var result []api.SessionSummary
	if err := client.get(ctx, "/sessions/{profileId}", map[string]string{
		"profileId": profileID,
	}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (client *Client) SessionMessages(ctx context.Context, profileID, sessionID string) ([]api.HistoryMessage, error) {
	var result []api.HistoryMessage
	if err := client.get(ctx, "/sessions/{profileId}/{sessionId}/messages", map[string]string{
		"profileId": profileID,
		"sessionId": sessionID,
	}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Chat sends one learner message. It is never retried because the backend stores the
// message before answering.
func (client *Client) Chat(ctx context.Context, request api.ChatRequest) (api.ChatResponse, error) {
	var result api.ChatResponse
	if err := client.post(ctx, "/chat", request, &result); err != nil {
		return api.ChatResponse{}, err
	}
	return result, nil
}

func (client *Client) Progress(ctx context.Context, profileID string) (api.Progress, error) {
	var result api.Progress
	if err := client.get(ctx, "/progress/{profileId}", map[string]string{
		"profileId": profileID,
	}, &result); err != nil {
		return api.Progress{}, err
	}
	return result, nil
}

func (client *Client) Streak(ctx context.Context, profileID string) (api.Streak, error) {
	var result api.Streak
	if err := client.get(ctx, "/streak/{profileId}", map[string]string{
		"profileId": profileID,
	}, &result); err != nil {
		return api.Streak{}, err
	}
	return result, nil
}
