package suggest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/sprintdeck/sprintdeck/internal/conf"
	"github.com/sprintdeck/sprintdeck/internal/errs"
	"github.com/sprintdeck/sprintdeck/pkg/utils"
)

// Client talks to an OpenAI-compatible chat-completions endpoint (LM
// Studio style). One blocking round trip per call, no retries or
// caching; a hung endpoint is bounded only by the transport timeout.
type Client struct {
	rc          *resty.Client
	mu          sync.RWMutex
	endpoint    string
	model       string
	temperature float64
	maxTokens   int
}

func NewClient(cfg conf.LLM) *Client {
	rc := resty.New().
		SetTimeout(time.Duration(cfg.TimeoutSec) * time.Second).
		SetHeader("Content-Type", "application/json")
	return &Client{
		rc:          rc,
		endpoint:    strings.TrimRight(cfg.Endpoint, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func (c *Client) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.endpoint
}

// SetEndpoint swaps the completion endpoint at runtime (settings API).
func (c *Client) SetEndpoint(endpoint string) {
	c.mu.Lock()
	c.endpoint = strings.TrimRight(endpoint, "/")
	c.mu.Unlock()
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat sends one system+user exchange and returns the raw reply text.
// Failures wrap errs.UpstreamUnavailable.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Stream:      false,
	}
	var out chatResponse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post(c.Endpoint() + "/chat/completions")
	if err != nil {
		return "", errors.Wrapf(errs.UpstreamUnavailable, "completion request failed: %v", err)
	}
	if resp.IsError() {
		return "", errors.Wrapf(errs.UpstreamUnavailable, "completion endpoint returned %s", resp.Status())
	}
	if len(out.Choices) == 0 {
		return "", errors.Wrap(errs.UpstreamUnavailable, "completion reply carried no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// Ping probes the endpoint once at startup; callers log the result and
// continue either way.
func (c *Client) Ping(ctx context.Context) error {
	reply, err := c.Chat(ctx,
		"You are a helpful assistant.",
		`Respond with the word "Connected" if you can hear me.`)
	if err != nil {
		return err
	}
	utils.Log.Debugf("completion endpoint test reply: %s", strings.TrimSpace(reply))
	return nil
}
