package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/DonghunLouisLee/transaction-handler/internal/infrastructure/metrics"
)

// FetcherConfig holds tuning for remote statement fetching.
type FetcherConfig struct {
	Timeout        time.Duration
	MaxElapsedTime time.Duration
}

// Fetcher downloads remote statements over HTTP with exponential backoff.
type Fetcher struct {
	client          *http.Client
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
	metrics         *metrics.Metrics
}

// NewFetcher creates a new Fetcher. Metrics may be nil.
func NewFetcher(cfg FetcherConfig, logger zerolog.Logger, m *metrics.Metrics) *Fetcher {
	return &Fetcher{
		client:          &http.Client{Timeout: cfg.Timeout},
		initialInterval: 100 * time.Millisecond,
		maxInterval:     2 * time.Second,
		maxElapsedTime:  cfg.MaxElapsedTime,
		logger:          logger,
		metrics:         m,
	}
}

// Fetch downloads the statement at url. Transport failures and server
// errors are retried with exponential backoff; client errors are not.
func (f *Fetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.initialInterval
	b.MaxInterval = f.maxInterval
	b.MaxElapsedTime = f.maxElapsedTime

	var body io.ReadCloser

	err := backoff.Retry(func() error {
		if f.metrics != nil {
			f.metrics.FetchAttempts.Inc()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			f.countFailure()
			f.logger.Warn().Err(err).Str("url", url).Msg("statement fetch failed, retrying")
			return err
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			f.countFailure()

			err := fmt.Errorf("unexpected status %d fetching statement", resp.StatusCode)
			if resp.StatusCode >= http.StatusInternalServerError {
				f.logger.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("statement fetch failed, retrying")
				return err
			}

			return backoff.Permanent(err)
		}

		body = resp.Body
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, err
	}

	return body, nil
}

func (f *Fetcher) countFailure() {
	if f.metrics != nil {
		f.metrics.FetchFailures.Inc()
	}
}

// Open resolves a statement location to a reader. "-" means stdin, http
// and https URLs are fetched remotely and anything else is treated as a
// local file path.
func Open(ctx context.Context, location string, fetcher *Fetcher) (io.ReadCloser, error) {
	switch {
	case location == "-":
		return io.NopCloser(os.Stdin), nil
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return fetcher.Fetch(ctx, location)
	default:
		return os.Open(location)
	}
}
