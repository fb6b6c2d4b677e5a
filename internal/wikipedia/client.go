package wikipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"wiki-resolver-go/internal/cache"
	"wiki-resolver-go/internal/config"
	"wiki-resolver-go/internal/metrics"
)

// ResponseCache stores raw API bodies keyed by request URL.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Client talks to the MediaWiki action API. Every request is throttled,
// served from the response cache when possible, and otherwise retried with
// jittered exponential backoff up to a fixed number of attempts.
type Client struct {
	httpClient       *http.Client
	baseURL          string
	userAgent        string
	maxResults       int
	maxAttempts      int
	minBackoff       time.Duration
	maxBackoff       time.Duration
	maxContinuations int
	limiter          *rate.Limiter
	cache            ResponseCache
	log              *logrus.Entry
}

// New builds a client from cfg. responses may be nil to disable caching.
func New(cfg config.WikipediaConfig, responses ResponseCache, log *logrus.Entry) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.wikipedia.org/w/api.php", cfg.Language)
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Client{
		httpClient:       &http.Client{Timeout: cfg.Timeout},
		baseURL:          base,
		userAgent:        cfg.UserAgent,
		maxResults:       cfg.MaxResults,
		maxAttempts:      attempts,
		minBackoff:       cfg.MinBackoff,
		maxBackoff:       cfg.MaxBackoff,
		maxContinuations: cfg.MaxContinuations,
		limiter:          rate.NewLimiter(limit, 1),
		cache:            responses,
		log:              log.WithField("component", "wikipedia"),
	}
}

func (c *Client) requestURL(params url.Values) string {
	params.Set("format", "json")
	params.Set("formatversion", "2")
	return c.baseURL + "?" + params.Encode()
}

// getJSON fetches params into a value built by fresh, consulting the cache
// first. Every decode gets its own value so a failed attempt leaves nothing
// behind.
func (c *Client) getJSON(ctx context.Context, params url.Values, fresh func() response) (response, error) {
	u := c.requestURL(params)
	key := cache.Key(u)

	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, key)
		switch {
		case err != nil:
			c.log.WithError(err).Warn("cache lookup failed")
		case ok:
			target := fresh()
			if err := json.Unmarshal(body, target); err == nil {
				c.log.WithField("url", u).Debug("cache hit")
				return target, nil
			}
			c.log.WithField("url", u).Warn("discarding unreadable cached response")
		}
	}

	body, target, err := c.fetch(ctx, u, fresh)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, key, body); err != nil {
			c.log.WithError(err).Warn("cache store failed")
		}
	}
	return target, nil
}

func (c *Client) fetch(ctx context.Context, u string, fresh func() response) ([]byte, response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.minBackoff
	bo.MaxInterval = c.maxBackoff
	bo.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.maxAttempts-1)), ctx)

	var lastErr error
	var body []byte
	var decoded response
	attempt := 0
	op := func() error {
		attempt++
		log := c.log.WithField("url", u).WithField("attempt", attempt)

		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			lastErr = &NetworkError{URL: u, Err: err}
			metrics.RecordFetchRequest("retry")
			log.WithError(err).Warn("wikipedia request failed")
			return lastErr
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			lastErr = &NetworkError{URL: u, Err: err}
			metrics.RecordFetchRequest("retry")
			return lastErr
		}

		switch {
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			lastErr = &RetrievalError{URL: u, Status: resp.StatusCode, Err: fmt.Errorf("server error: %s", truncate(raw))}
			metrics.RecordFetchRequest("retry")
			log.WithField("http_status", resp.StatusCode).Warn("wikipedia server error")
			return lastErr
		case resp.StatusCode >= 400:
			lastErr = &RetrievalError{URL: u, Status: resp.StatusCode, Err: fmt.Errorf("client error: %s", truncate(raw))}
			metrics.RecordFetchRequest("client_error")
			return backoff.Permanent(lastErr)
		case len(raw) == 0:
			lastErr = &RetrievalError{URL: u, Status: resp.StatusCode, Err: errors.New("empty body")}
			metrics.RecordFetchRequest("retry")
			return lastErr
		}

		target := fresh()
		if err := json.Unmarshal(raw, target); err != nil {
			lastErr = &RetrievalError{URL: u, Status: resp.StatusCode, Err: fmt.Errorf("json decode: %w", err)}
			metrics.RecordFetchRequest("retry")
			log.WithError(err).Warn("malformed wikipedia response")
			return lastErr
		}
		if apiErr := target.apiErr(); apiErr != nil {
			lastErr = &RetrievalError{URL: u, Status: resp.StatusCode, Err: fmt.Errorf("api error %s: %s", apiErr.Code, apiErr.Info)}
			metrics.RecordFetchRequest("retrieval_error")
			return backoff.Permanent(lastErr)
		}

		metrics.RecordFetchRequest("ok")
		body = raw
		decoded = target
		lastErr = nil
		return nil
	}

	if err := backoff.Retry(op, b); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, fmt.Errorf("wikipedia request cancelled: %w", ctxErr)
		}
		var netErr *NetworkError
		if errors.As(lastErr, &netErr) {
			metrics.RecordFetchRequest("network_error")
		} else if lastErr != nil {
			metrics.RecordFetchRequest("retrieval_error")
		}
		if lastErr != nil {
			return nil, nil, lastErr
		}
		return nil, nil, err
	}
	return body, decoded, nil
}

func truncate(b []byte) string {
	const limit = 200
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
