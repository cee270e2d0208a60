package config

import (
	"errors"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
	"github.com/qdm12/netscope/internal/resolver"
)

type Resolver struct {
	Address *string
	Timeout time.Duration
}

func (r *Resolver) setDefaults() {
	r.Address = gosettings.DefaultPointer(r.Address, "")
	const defaultTimeout = 5 * time.Second
	r.Timeout = gosettings.DefaultComparable(r.Timeout, defaultTimeout)
}

// ToSettings returns the resolver settings. The address is empty
// to use the first nameserver of /etc/resolv.conf.
func (r Resolver) ToSettings() resolver.Settings {
	return resolver.Settings{
		Address: *r.Address,
		Timeout: r.Timeout,
	}
}

func (r Resolver) Validate() (err error) {
	return r.ToSettings().Validate()
}

func (r Resolver) toLinesNode() *gotree.Node {
	node := gotree.New("Resolver")
	if *r.Address == "" {
		node.Appendf("Address: first nameserver of /etc/resolv.conf")
	} else {
		node.Appendf("Address: %s", *r.Address)
	}
	node.Appendf("Timeout: %s", r.Timeout)
	return node
}

func (r *Resolver) read(reader *reader.Reader) (err error) {
	r.Address = reader.Get("RESOLVER_ADDRESS")
	if r.Address != nil {
		address := withDefaultDNSPort(*r.Address)
		r.Address = &address
	}
	r.Timeout, err = reader.Duration("RESOLVER_TIMEOUT")
	return err
}

// withDefaultDNSPort appends port 53 to the address if
// it is a host or IP address without port.
func withDefaultDNSPort(address string) string {
	const defaultPort = "53"
	if _, err := netip.ParseAddr(address); err == nil {
		return net.JoinHostPort(address, defaultPort)
	}

	_, _, err := net.SplitHostPort(address)
	var addrErr *net.AddrError
	if !errors.As(err, &addrErr) || addrErr.Err != "missing port in address" {
		return address
	}
	host := strings.TrimSuffix(strings.TrimPrefix(address, "["), "]")
	return net.JoinHostPort(host, defaultPort)
}
