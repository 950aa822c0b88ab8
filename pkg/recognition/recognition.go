package recognition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/dutyboard/pkg/trainassign"
	"github.com/travigo/dutyboard/pkg/util"
)

var (
	ErrUnavailable = errors.New("recognition service unavailable")
	ErrNoPairs     = errors.New("no cycle and train pairs recognised")
)

// Recognizer reads cycle and train code pairs off a photo of the rotation board
type Recognizer interface {
	Recognize(ctx context.Context, image []byte, filename string) ([]trainassign.Pair, error)
}

type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration

	RetryInterval time.Duration
	MaxRetries    uint64
}

type Client struct {
	config Config
	client *resty.Client
}

type recognitionResponse struct {
	Pairs []trainassign.Pair `json:"pairs"`
}

func NewClient(config Config) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RetryInterval == 0 {
		config.RetryInterval = 500 * time.Millisecond
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}

	client := resty.New().
		SetTimeout(config.Timeout).
		SetHeader("Accept", "application/json")

	if config.APIKey != "" {
		client.SetAuthToken(config.APIKey)
	}

	return &Client{
		config: config,
		client: client,
	}
}

func (c *Client) Recognize(ctx context.Context, image []byte, filename string) ([]trainassign.Pair, error) {
	if c.config.Endpoint == "" {
		return nil, fmt.Errorf("%w: no endpoint configured", ErrUnavailable)
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrNoPairs)
	}

	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.InitialInterval = c.config.RetryInterval

	policy := backoff.WithContext(backoff.WithMaxRetries(retryBackoff, c.config.MaxRetries), ctx)

	pairs, err := backoff.RetryWithData(func() ([]trainassign.Pair, error) {
		return c.request(ctx, image, filename)
	}, policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	pairs = cleanPairs(pairs)
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}

	return pairs, nil
}

func (c *Client) request(ctx context.Context, image []byte, filename string) ([]trainassign.Pair, error) {
	startTime := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		SetFileReader("image", filename, bytes.NewReader(image)).
		SetResult(&recognitionResponse{}).
		Post(c.config.Endpoint)
	if err != nil {
		log.Warn().Err(err).Msg("Recognition request failed")
		return nil, err
	}

	log.Debug().
		Int("status", resp.StatusCode()).
		Str("latency", time.Since(startTime).String()).
		Msg("Recognition request")

	switch {
	case resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() >= 500:
		return nil, fmt.Errorf("status %d", resp.StatusCode())
	case resp.StatusCode() >= 400:
		return nil, backoff.Permanent(fmt.Errorf("status %d: %s", resp.StatusCode(), util.TrimString(resp.String(), 200)))
	}

	result, ok := resp.Result().(*recognitionResponse)
	if !ok || result == nil {
		return nil, backoff.Permanent(errors.New("unreadable response"))
	}

	return result.Pairs, nil
}

func cleanPairs(pairs []trainassign.Pair) []trainassign.Pair {
	var cleaned []trainassign.Pair

	for _, pair := range pairs {
		pair.Cycle = strings.ToUpper(strings.TrimSpace(pair.Cycle))
		pair.Code = strings.TrimSpace(pair.Code)

		if pair.Cycle == "" || pair.Code == "" {
			continue
		}

		cleaned = append(cleaned, pair)
	}

	return cleaned
}
