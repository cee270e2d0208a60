package ipinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type Fetcher struct {
	client      *http.Client
	url         string
	minInterval time.Duration
	limiter     *rate.Limiter
}

func New(client *http.Client, options ...Option) (fetcher *Fetcher, err error) {
	var settings settings
	for _, option := range options {
		err = option(&settings)
		if err != nil {
			return nil, fmt.Errorf("applying option: %w", err)
		}
	}
	settings.setDefaults()

	var limiter *rate.Limiter
	if settings.minInterval > 0 {
		const burst = 1
		limiter = rate.NewLimiter(rate.Every(settings.minInterval), burst)
	}

	return &Fetcher{
		client:      client,
		url:         settings.url,
		minInterval: settings.minInterval,
		limiter:     limiter,
	}, nil
}

// URL returns the endpoint queried by the fetcher.
func (f *Fetcher) URL() string {
	return f.url
}

// Fetch queries the IP data API for information about the public IP
// address of the caller. A nil record and nil error are returned if
// the API answered with a JSON null payload.
func (f *Fetcher) Fetch(ctx context.Context) (record *Record, err error) {
	if f.limiter != nil && !f.limiter.Allow() {
		return nil, fmt.Errorf("%w: local limit of one request every %s reached",
			ErrTooManyRequests, f.minInterval)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	response, err := f.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("doing request: %w", err)
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusTooManyRequests:
		bodyString := bodyToSingleLine(response.Body)
		return nil, fmt.Errorf("%w (%s)", ErrTooManyRequests, bodyString)
	default:
		bodyString := bodyToSingleLine(response.Body)
		return nil, fmt.Errorf("%w: %d %s (%s)", ErrBadHTTPStatus,
			response.StatusCode, http.StatusText(response.StatusCode), bodyString)
	}

	decoder := json.NewDecoder(response.Body)
	var data *ipapiResponse
	err = decoder.Decode(&data)
	if err != nil {
		return nil, fmt.Errorf("decoding JSON response: %w", err)
	}

	return data.toRecord()
}
