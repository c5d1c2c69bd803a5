package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL     = "https://api.openai.com"
	defaultTimeout     = 30 * time.Second
	defaultTemperature = 0.2
	maxErrorBodyBytes  = 2048
)

// OpenAIClient sends a single prompt to the chat completions endpoint and
// returns the assistant text. It never retries.
type OpenAIClient struct {
	APIKey string
	Model  string

	http *resty.Client
}

type Option func(*resty.Client)

func WithBaseURL(baseURL string) Option {
	return func(c *resty.Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.SetBaseURL(strings.TrimRight(baseURL, "/"))
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) {
		if d > 0 {
			c.SetTimeout(d)
		}
	}
}

func New(apiKey, model string, opts ...Option) *OpenAIClient {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(apiKey).
		SetRetryCount(0)
	for _, opt := range opts {
		opt(client)
	}
	return &OpenAIClient{
		APIKey: apiKey,
		Model:  model,
		http:   client,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiErrorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// Invoke sends prompt as a single user message.
func (c *OpenAIClient) Invoke(ctx context.Context, prompt string) (string, error) {
	var (
		out    chatResponse
		apiErr apiErrorEnvelope
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       c.Model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			Temperature: defaultTemperature,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v1/chat/completions")
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.IsError() {
		return "", statusError(resp.StatusCode(), apiErr, resp.String())
	}

	for _, choice := range out.Choices {
		if choice.Message.Content != "" {
			return choice.Message.Content, nil
		}
	}
	return "", ErrEmptyResponse
}

func statusError(status int, apiErr apiErrorEnvelope, body string) error {
	detail := apiErr.Error.Message
	if detail == "" {
		detail = truncate(body, maxErrorBodyBytes)
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: status %d: %s", ErrUnauthorized, status, detail)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d: %s", ErrRateLimited, status, detail)
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d: %s", ErrTimeout, status, detail)
	case status >= 500:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, status, detail)
	default:
		return fmt.Errorf("openai request failed: status %d: %s", status, detail)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "...(truncated)"
}
