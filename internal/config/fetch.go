package config

import (
	"time"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
	"github.com/qdm12/netscope/pkg/ipinfo"
)

type Fetch struct {
	URL string
	// MinInterval is the minimum duration between two requests
	// to the IP information API, and zero means no limit.
	MinInterval *time.Duration
}

func (f *Fetch) setDefaults() {
	f.URL = gosettings.DefaultComparable(f.URL, ipinfo.DefaultURL)
	f.MinInterval = gosettings.DefaultPointer(f.MinInterval, 0)
}

func (f Fetch) Validate() (err error) {
	_, err = ipinfo.New(nil, f.ToOptions()...)
	return err
}

func (f Fetch) ToOptions() (options []ipinfo.Option) {
	return []ipinfo.Option{
		ipinfo.SetURL(f.URL),
		ipinfo.SetMinInterval(*f.MinInterval),
	}
}

func (f Fetch) toLinesNode() *gotree.Node {
	node := gotree.New("Fetch")
	node.Appendf("URL: %s", f.URL)
	if *f.MinInterval == 0 {
		node.Appendf("Minimum interval: disabled")
	} else {
		node.Appendf("Minimum interval: %s", *f.MinInterval)
	}
	return node
}

func (f *Fetch) read(r *reader.Reader) (err error) {
	f.URL = r.String("FETCH_URL", reader.ForceLowercase(false))
	f.MinInterval, err = r.DurationPtr("FETCH_MIN_INTERVAL")
	return err
}
