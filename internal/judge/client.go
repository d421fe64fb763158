package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const authHeader = "X-Auth-Token"

type Client struct {
	baseURL   string
	authToken string
	http      *http.Client
	logger    *zap.Logger
}

type ClientConfig struct {
	BaseURL        string
	AuthToken      string
	RequestTimeout time.Duration
}

func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		authToken: cfg.AuthToken,
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

type submitPayload struct {
	LanguageID int    `json:"language_id"`
	SourceCode string `json:"source_code"`
	Stdin      string `json:"stdin"`
}

// Submit posts one execution request. The response is classified into a
// token, an embedded result, or opaque text; exactly one branch applies.
func (c *Client) Submit(ctx context.Context, sub Submission) (SubmissionHandle, error) {
	payload, err := json.Marshal(submitPayload{
		LanguageID: sub.TargetID,
		SourceCode: sub.SourceText,
		Stdin:      sub.Stdin,
	})
	if err != nil {
		return SubmissionHandle{}, fmt.Errorf("marshal submission: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/api/proxy/submit", payload)
	if err != nil {
		return SubmissionHandle{}, err
	}

	handle := parseHandle(body)
	if handle.Token != "" {
		c.logger.Debug("submission accepted", zap.String("token", handle.Token))
	}
	return handle, nil
}

// FetchResult is idempotent; the controller calls it once per poll attempt.
func (c *Client) FetchResult(ctx context.Context, token string) (RawResult, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/proxy/result/"+url.PathEscape(token), nil)
	if err != nil {
		return RawResult{}, err
	}
	return parseResult(body)
}

func (c *Client) FetchLanguages(ctx context.Context) ([]RawLanguage, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/proxy/languages", nil)
	if err != nil {
		return nil, err
	}
	return parseLanguages(body)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set(authHeader, c.authToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
