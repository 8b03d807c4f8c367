// Package captcha provides a lightweight client for the reCAPTCHA
// siteverify API. Uses raw HTTP calls (no SDK) to minimize external
// dependencies.
package captcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultVerifyURL is the provider's token verification endpoint.
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Result is the decoded siteverify response. Score and Action are only
// present for score-based (v3) tokens; Score is a pointer so absence is
// distinguishable from an explicit 0.
type Result struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score"`
	Action     string   `json:"action"`
	Hostname   string   `json:"hostname"`
	ErrorCodes []string `json:"error-codes"`
}

// Client is the token verification interface.
type Client interface {
	// Verify submits the secret and token to the provider and returns the
	// decoded result. remoteIP may be empty. An error means the provider
	// could not be consulted, not that the token failed verification.
	Verify(ctx context.Context, token, remoteIP string) (Result, error)
}

// RealClient verifies tokens against the live siteverify endpoint.
type RealClient struct {
	Secret     string
	VerifyURL  string
	httpClient *http.Client
}

// NewClient creates a RealClient with a bounded request timeout. An empty
// verifyURL selects DefaultVerifyURL.
func NewClient(secret, verifyURL string) *RealClient {
	if verifyURL == "" {
		verifyURL = DefaultVerifyURL
	}
	return &RealClient{
		Secret:     secret,
		VerifyURL:  verifyURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// ErrNotConfigured is returned when no provider secret is set.
var ErrNotConfigured = errors.New("captcha: not configured")

// Verify POSTs the secret and token form-encoded, per the provider contract.
func (c *RealClient) Verify(ctx context.Context, token, remoteIP string) (Result, error) {
	if c.Secret == "" {
		return Result{}, ErrNotConfigured
	}

	data := url.Values{}
	data.Set("secret", c.Secret)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.VerifyURL,
		strings.NewReader(data.Encode()))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("captcha verify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("captcha verify: unexpected status %d", resp.StatusCode)
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Result{}, fmt.Errorf("captcha verify decode: %w", err)
	}
	return result, nil
}
