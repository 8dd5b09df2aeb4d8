package schedulesource

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/travigo/islandferry/pkg/ferry"
)

const defaultMaxRetries = 4

type HTTPSource struct {
	URL    string
	Client *http.Client

	MaxRetries      uint64
	InitialInterval time.Duration
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		URL: url,
		Client: &http.Client{
			Timeout: timeout,
		},
		MaxRetries: defaultMaxRetries,
	}
}

func (s *HTTPSource) Name() string {
	return s.URL
}

// Load fetches and decodes the document. Transport errors and 5xx responses are retried
// with exponential backoff, anything else fails straight away.
func (s *HTTPSource) Load(ctx context.Context) (*ferry.Document, error) {
	retryBackoff := backoff.NewExponentialBackOff()
	if s.InitialInterval > 0 {
		retryBackoff.InitialInterval = s.InitialInterval
	}

	var document *ferry.Document

	operation := func() error {
		var err error
		document, err = s.fetch(ctx)
		return err
	}

	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Str("url", s.URL).Str("wait", wait.String()).Msg("Retrying schedule download")
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(retryBackoff, s.MaxRetries), ctx), notify)
	if err != nil {
		return retError(s, err)
	}

	loadCount.With(prometheus.Labels{"source": s.Name()}).Inc()

	return document, nil
}

func (s *HTTPSource) fetch(ctx context.Context) (*ferry.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("failed to fetch schedule from %s: HTTP %d", s.URL, resp.StatusCode)
		if resp.StatusCode < http.StatusInternalServerError {
			return nil, backoff.Permanent(err)
		}

		return nil, err
	}

	document, err := ferry.DecodeDocument(resp.Body)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode %s: %w", s.URL, err))
	}

	return document, nil
}
