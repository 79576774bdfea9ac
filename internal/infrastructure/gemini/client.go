package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"gitglimpse-core/internal/config"
	"gitglimpse-core/internal/domain/summary"
	"gitglimpse-core/internal/logging"
)

var quotaPattern = regexp.MustCompile(`(?i)RESOURCE_EXHAUSTED|quota|plan|billing`)

// errQuotaExhausted trips the breaker; any other error leaves it closed
var errQuotaExhausted = errors.New("summarization quota exhausted")

// Client implements summary.Summarizer on top of the Gemini generateContent
// endpoint. A quota rejection opens a breaker for the configured cooldown,
// during which calls short-circuit without reaching the provider.
type Client struct {
	apiKey      string
	endpoint    string
	temperature float64
	maxTokens   int
	cooldown    time.Duration
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
	logger      *slog.Logger

	mu        sync.Mutex
	openUntil time.Time
	now       func() time.Time
}

// NewClient creates a new Gemini summarization client
func NewClient(cfg *config.SummaryConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}

	c := &Client{
		apiKey:      cfg.APIKey,
		endpoint:    fmt.Sprintf("%s/models/%s:generateContent", strings.TrimSuffix(cfg.APIURL, "/"), cfg.Model),
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		cooldown:    cfg.QuotaCooldown,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
		now:    time.Now,
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "gemini-quota",
		MaxRequests: 1,
		Timeout:     cfg.QuotaCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
		IsSuccessful: func(err error) bool {
			return !errors.Is(err, errQuotaExhausted)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("summarization breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return c
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// statusError is a non-success provider response
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("gemini API returned status %d: %s", e.status, e.body)
}

// Summarize implements summary.Summarizer
func (c *Client) Summarize(ctx context.Context, prompt string) summary.Result {
	if c.apiKey == "" {
		return summary.Unavailable("summarization provider is not configured")
	}

	var text string
	_, err := c.breaker.Execute(func() (interface{}, error) {
		var callErr error
		text, callErr = c.generate(ctx, prompt)
		return nil, callErr
	})

	switch {
	case err == nil:
		return summary.Generated(text)
	case errors.Is(err, gobreaker.ErrOpenState):
		return summary.QuotaExhausted("summarization quota exhausted, paused until cooldown ends", c.retryAfter())
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		// The cooldown has ended and a single trial call is in flight.
		return summary.Unavailable("summarization provider is being re-checked")
	case errors.Is(err, errQuotaExhausted):
		c.markOpen()
		c.logger.Warn("summarization quota exhausted", "cooldown", c.cooldown, "error", err)
		return summary.QuotaExhausted("summarization quota exhausted", c.cooldown)
	default:
		c.logger.Error("summarization failed", "error", err)
		return summary.Unavailable("summary generation failed")
	}
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     c.temperature,
			MaxOutputTokens: c.maxTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.endpoint + "?key=" + url.QueryEscape(c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &statusError{status: resp.StatusCode, body: string(respBody)}
		if resp.StatusCode == http.StatusTooManyRequests && quotaPattern.Match(respBody) {
			return "", fmt.Errorf("%w: %v", errQuotaExhausted, statusErr)
		}
		return "", statusErr
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	var sb strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, p := range parsed.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("gemini returned no candidates")
	}
	return text, nil
}

func (c *Client) markOpen() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openUntil = c.now().Add(c.cooldown)
}

func (c *Client) retryAfter() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	remaining := c.openUntil.Sub(c.now())
	if remaining <= 0 {
		return c.cooldown
	}
	return remaining
}
