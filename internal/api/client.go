// Package api talks to the stashhub backend over its HTTP surface: brand
// listing, scrape and report triggers, plain-text job status, and setup.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	hc := resty.New()
	hc.SetBaseURL(strings.TrimRight(baseURL, "/"))
	hc.SetTimeout(timeout)
	return &Client{http: hc, log: log}
}

// Brands fetches the selectable brand names in server order.
// Any empty, non-array, or non-2xx reply collapses into ErrNoBrands;
// only transport failures surface as a different error.
func (c *Client) Brands(ctx context.Context) ([]string, error) {
	res, err := c.http.R().SetContext(ctx).Get("/brands")
	if err != nil {
		return nil, fmt.Errorf("api: fetching brands: %w", err)
	}
	if !res.IsSuccess() {
		c.log.Debug().Int("status", res.StatusCode()).Msg("brands request rejected")
		return nil, fmt.Errorf("%w: backend returned %d", ErrNoBrands, res.StatusCode())
	}

	var brands []string
	if err := json.Unmarshal(res.Body(), &brands); err != nil {
		return nil, fmt.Errorf("%w: not a name array", ErrNoBrands)
	}
	if len(brands) == 0 {
		return nil, ErrNoBrands
	}
	c.log.Debug().Int("count", len(brands)).Msg("brands loaded")
	return brands, nil
}

// UpdateFiles asks the backend to start a scrape of every store.
func (c *Client) UpdateFiles(ctx context.Context) (Result, error) {
	return c.postResult(ctx, "/update-files", nil)
}

type runRequest struct {
	Emails string   `json:"emails"`
	Brands []string `json:"brands"`
}

// Run asks the backend to build brand reports and email them. The emails
// string is passed through as typed; splitting is the backend's job.
func (c *Client) Run(ctx context.Context, emails string, brands []string) (Result, error) {
	return c.postResult(ctx, "/run", runRequest{Emails: emails, Brands: brands})
}

// Setup carries the operator credentials and the store-name to
// abbreviation map the backend scrapes and files under.
type Setup struct {
	Username string
	Password string
	StoreMap map[string]string
}

type setupRequest struct {
	Username string            `json:"username"`
	Password string            `json:"password"`
	StoreMap map[string]string `json:"store_map"`
}

func (c *Client) SaveSetup(ctx context.Context, s Setup) (Result, error) {
	return c.postResult(ctx, "/setup", setupRequest{
		Username: s.Username,
		Password: s.Password,
		StoreMap: s.StoreMap,
	})
}

// Status returns the backend's current job status line, trimmed. The body is
// plain text, not JSON.
func (c *Client) Status(ctx context.Context) (string, error) {
	res, err := c.http.R().SetContext(ctx).Get("/status")
	if err != nil {
		return "", fmt.Errorf("api: fetching status: %w", err)
	}
	if !res.IsSuccess() {
		return "", &StatusError{Code: res.StatusCode(), Body: truncate(string(res.Body()), 200)}
	}
	return strings.TrimSpace(string(res.Body())), nil
}

// postResult POSTs a JSON body (or none) and decodes the backend's {ok,msg}
// envelope. A non-2xx reply that still carries a valid envelope is returned
// as a failed Result so callers can show the backend's own message.
func (c *Client) postResult(ctx context.Context, path string, body any) (Result, error) {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	res, err := req.Post(path)
	if err != nil {
		return Result{}, fmt.Errorf("api: posting %s: %w", path, err)
	}

	out, decodeErr := decodeResult(res.Body())
	if decodeErr != nil {
		if !res.IsSuccess() {
			return Result{}, &StatusError{Code: res.StatusCode(), Body: truncate(string(res.Body()), 200)}
		}
		return Result{}, decodeErr
	}
	if !res.IsSuccess() {
		out.OK = false
	}
	c.log.Debug().Str("path", path).Bool("ok", out.OK).Str("msg", out.Msg).Msg("backend result")
	return out, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
