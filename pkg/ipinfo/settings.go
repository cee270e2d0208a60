package ipinfo

import "time"

// DefaultURL is the ipapi.co endpoint returning information
// about the public IP address of the caller.
const DefaultURL = "https://ipapi.co/json/"

type settings struct {
	url         string
	minInterval time.Duration
}

func (s *settings) setDefaults() {
	if s.url == "" {
		s.url = DefaultURL
	}
}
