package ipinfo

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

type Option func(s *settings) error

var (
	ErrURLNotValid         = errors.New("URL is not valid")
	ErrMinIntervalNegative = errors.New("minimum interval cannot be negative")
)

// SetURL sets a custom https endpoint to use instead of DefaultURL.
func SetURL(urlString string) Option {
	return func(s *settings) (err error) {
		u, err := url.Parse(urlString)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrURLNotValid, err)
		}

		switch {
		case u.Scheme != "https":
			return fmt.Errorf("%w: scheme %q is not https", ErrURLNotValid, u.Scheme)
		case u.Host == "":
			return fmt.Errorf("%w: host is empty", ErrURLNotValid)
		}

		s.url = u.String()
		return nil
	}
}

// SetMinInterval sets the minimum duration between two outbound requests.
// A zero duration disables the limit.
func SetMinInterval(minInterval time.Duration) Option {
	return func(s *settings) (err error) {
		if minInterval < 0 {
			return fmt.Errorf("%w: %s", ErrMinIntervalNegative, minInterval)
		}
		s.minInterval = minInterval
		return nil
	}
}
