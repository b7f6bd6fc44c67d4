// Package steam fetches game names and user reviews from the Steam store.
//
// It is only used to grow the catalog (the `fetch` command and the admin
// refresh endpoint). Gameplay never waits on it.
//
// # Usage
//
//	c := steam.NewClient(steam.Config{})
//	entry, err := c.Entry(ctx, 570)
//	var nerr *steam.NetworkError
//	if errors.As(err, &nerr) { ... }
package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/steamguess/internal/game"
	"github.com/robalobadob/steamguess/internal/reviews"
)

// Config holds configuration for the Steam client.
type Config struct {
	// BaseURL of the store. Defaults to https://store.steampowered.com.
	BaseURL string

	// Language of the reviews requested. Defaults to "english".
	Language string

	// PerPage is num_per_page for appreviews. Defaults to 100.
	PerPage int

	// MaxReviews caps the reviews kept per game. Defaults to 50.
	MaxReviews int

	// MaxRetries for retryable failures. Defaults to 2; negative disables.
	MaxRetries int

	// BaseRetryDelay is the first backoff delay. Defaults to 500ms.
	BaseRetryDelay time.Duration

	// Timeout for the default HTTP client. Defaults to 5 seconds.
	Timeout time.Duration

	// HTTPClient allows injecting a custom HTTP client (useful for testing).
	HTTPClient *http.Client
}

// Client talks to the Steam store API.
type Client struct {
	config Config
	http   *http.Client
}

// NewClient creates a Steam client, filling in defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://store.steampowered.com"
	}
	if cfg.Language == "" {
		cfg.Language = "english"
	}
	if cfg.PerPage == 0 {
		cfg.PerPage = 100
	}
	if cfg.MaxReviews == 0 {
		cfg.MaxReviews = 50
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.BaseRetryDelay == 0 {
		cfg.BaseRetryDelay = 500 * time.Millisecond
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{config: cfg, http: httpClient}
}

// AppName returns the display name of appID.
func (c *Client) AppName(ctx context.Context, appID int) (string, error) {
	q := url.Values{"appids": {strconv.Itoa(appID)}}
	var body map[string]struct {
		Success bool `json:"success"`
		Data    struct {
			Name string `json:"name"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, "appdetails", appID, "api/appdetails", q, &body); err != nil {
		return "", err
	}
	app, ok := body[strconv.Itoa(appID)]
	if !ok || !app.Success || strings.TrimSpace(app.Data.Name) == "" {
		return "", &NetworkError{Op: "appdetails", AppID: appID, Err: ErrNotFound}
	}
	return strings.TrimSpace(app.Data.Name), nil
}

// Reviews returns positive reviews of appID longer than the catalog minimum,
// capped at MaxReviews.
func (c *Client) Reviews(ctx context.Context, appID int) ([]string, error) {
	q := url.Values{
		"json":         {"1"},
		"language":     {c.config.Language},
		"review_type":  {"positive"},
		"num_per_page": {strconv.Itoa(c.config.PerPage)},
	}
	var body struct {
		Success int `json:"success"`
		Reviews []struct {
			Review string `json:"review"`
		} `json:"reviews"`
	}
	path := "appreviews/" + strconv.Itoa(appID)
	if err := c.getJSON(ctx, "appreviews", appID, path, q, &body); err != nil {
		return nil, err
	}
	if body.Success != 1 {
		return nil, &NetworkError{Op: "appreviews", AppID: appID, Err: ErrNotFound}
	}
	texts := make([]string, 0, len(body.Reviews))
	for _, r := range body.Reviews {
		texts = append(texts, r.Review)
	}
	return reviews.Normalize(texts, c.config.MaxReviews), nil
}

// Entry fetches name and reviews and builds a catalog entry.
func (c *Client) Entry(ctx context.Context, appID int) (game.GameEntry, error) {
	name, err := c.AppName(ctx, appID)
	if err != nil {
		return game.GameEntry{}, err
	}
	revs, err := c.Reviews(ctx, appID)
	if err != nil {
		return game.GameEntry{}, err
	}
	return game.GameEntry{ID: appID, Name: name, Reviews: revs}, nil
}

// getJSON performs a GET with retry and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, op string, appID int, path string, q url.Values, out any) error {
	u := strings.TrimRight(c.config.BaseURL, "/") + "/" + path + "?" + q.Encode()

	var lastErr error
	for attempt := 0; attempt <= max(0, c.config.MaxRetries); attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(c.retryDelay(attempt)):
			case <-ctx.Done():
				return &NetworkError{Op: op, AppID: appID, Err: ctx.Err()}
			}
		}
		err := c.doGet(ctx, op, appID, u, out)
		if err == nil {
			return nil
		}
		lastErr = err
		var nerr *NetworkError
		if errors.As(err, &nerr) && nerr.IsRetryable() {
			log.Debug().Err(err).Int("attempt", attempt+1).Msg("steam request retry")
			continue
		}
		return err
	}
	return lastErr
}

func (c *Client) doGet(ctx context.Context, op string, appID int, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &NetworkError{Op: op, AppID: appID, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: op, AppID: appID, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, AppID: appID, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return &NetworkError{Op: op, AppID: appID, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &NetworkError{Op: op, AppID: appID, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) retryDelay(attempt int) time.Duration {
	return c.config.BaseRetryDelay * time.Duration(math.Pow(2, float64(attempt-1)))
}
