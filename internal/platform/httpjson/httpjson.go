package httpjson

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// ErrNetwork is returned when the request could not be sent or the body could not be read.
	ErrNetwork = errors.New("network failure")
	// ErrStatus is returned for non-2xx responses.
	ErrStatus = errors.New("unexpected status")
	// ErrParse is returned when the response body does not decode into the target.
	ErrParse = errors.New("parse failure")
)

// Getter issues GET requests and decodes JSON responses.
type Getter struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
}

// NewGetter builds a Getter. rps <= 0 disables rate limiting.
func NewGetter(httpClient *http.Client, userAgent string, rps int) *Getter {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Getter{
		httpClient: httpClient,
		userAgent:  userAgent,
		limiter:    NewLimiter(rps),
	}
}

// NewLimiter returns a limiter allowing rps requests per second, or an unlimited one.
func NewLimiter(rps int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// Get fetches url and decodes the JSON body into target.
func (g *Getter) Get(ctx context.Context, url string, target any) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}
