package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	imageBaseURL   = "https://image.tmdb.org/t/p/w500"

	// TMDB allows roughly 50 requests per second; stay well under it
	rateLimit = 20
	rateBurst = 40

	maxRetries   = 4
	initialDelay = 500 * time.Millisecond
	maxDelay     = 16 * time.Second
)

// Client handles TMDB API requests with rate limiting and retry logic.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a new TMDB API client. baseURL may be empty to use
// the public API host.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// SearchMovies queries the /search/movie endpoint.
func (c *Client) SearchMovies(ctx context.Context, query string, year *int) (*SearchMoviesResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	if year != nil {
		params.Set("year", fmt.Sprintf("%d", *year))
	}

	var response SearchMoviesResponse
	if err := c.doRequest(ctx, http.MethodGet, "/search/movie", params, &response); err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return &response, nil
}

// FindPosterURL returns the full poster image URL for the best match of
// title, or an empty string when nothing matches.
func (c *Client) FindPosterURL(ctx context.Context, title string, year *int) (string, error) {
	resp, err := c.SearchMovies(ctx, title, year)
	if err != nil {
		return "", err
	}
	for _, result := range resp.Results {
		if result.PosterPath != "" {
			return imageBaseURL + result.PosterPath, nil
		}
	}
	return "", nil
}

// doRequest performs an HTTP request with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	fullURL := c.baseURL + endpoint + "?" + params.Encode()

	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "FilmBoard/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				log.Printf("[TMDB] Request failed (attempt %d/%d): %v, retrying in %v...",
					attempt+1, maxRetries, err, delay)
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
		}

		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			bodyStr := string(bodyBytes)

			if shouldRetry(resp.StatusCode) && attempt < maxRetries {
				lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, bodyStr)

				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					if retryDuration, err := time.ParseDuration(retryAfter + "s"); err == nil {
						delay = retryDuration
					}
				}

				log.Printf("[TMDB] HTTP %d (attempt %d/%d), retrying in %v...",
					resp.StatusCode, attempt+1, maxRetries, delay)
				time.Sleep(delay)
				delay = minDuration(delay*2, maxDelay)
				continue
			}

			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, bodyStr)
		}

		err = json.NewDecoder(resp.Body).Decode(result)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", maxRetries, lastErr)
}

// shouldRetry determines if an HTTP status code warrants a retry
func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode >= 500
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
