package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client represents the content analysis HTTP client.
type Client struct {
	baseURL string
	token   string
	ua      string
	http    *http.Client
}

// SubmitRequest represents a classification request payload.
type SubmitRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
	ContentID   string `json:"content_id"`
	UserID      string `json:"user_id"`
}

// Outcome represents the classifier's decision for a piece of content.
type Outcome struct {
	Approved      bool     `json:"approved"`
	Flagged       bool     `json:"flagged"`
	Action        string   `json:"action"`
	Violations    []string `json:"violations"`
	ShouldBanUser *bool    `json:"should_ban_user,omitempty"`
	BanDuration   *int     `json:"ban_duration,omitempty"` // days; nil with ShouldBanUser means permanent
}

// NewClient creates a new classifier client.
func NewClient(baseURL, token string, timeout time.Duration, ua string) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		ua:      ua,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Submit sends content for classification and returns the outcome.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (*Outcome, error) {
	if c == nil || c.http == nil {
		return nil, fmt.Errorf("classifier request error: client is nil")
	}
	if strings.TrimSpace(c.baseURL) == "" {
		return nil, fmt.Errorf("classifier config error: base_url is empty")
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request error: %w", err)
	}

	endpoint := c.baseURL + "/v1/classify"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("classifier request error: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.ua != "" {
		httpReq.Header.Set("User-Agent", c.ua)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, classifyRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return nil, fmt.Errorf("classifier http error: status=%d body=<failed to read body: %v>", resp.StatusCode, readErr)
		}
		return nil, fmt.Errorf("classifier http error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var outcome Outcome
	if err := json.NewDecoder(resp.Body).Decode(&outcome); err != nil {
		return nil, fmt.Errorf("classifier response error: %w", err)
	}

	return &outcome, nil
}

func classifyRequestError(ctx context.Context, err error) error {
	if isTimeoutError(ctx, err) {
		return fmt.Errorf("classifier timeout: %w", err)
	}
	if isNetworkError(err) {
		return fmt.Errorf("classifier network error: %w", err)
	}
	return fmt.Errorf("classifier request error: %w", err)
}

func isTimeoutError(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	return errors.Is(err, os.ErrDeadlineExceeded)
}

func isNetworkError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}
