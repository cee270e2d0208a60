// Package resolver resolves hostnames using a single DNS server,
// to check the IP information API hostname resolves.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/miekg/dns"
)

type Resolver struct {
	client  Client
	address string
}

func New(settings Settings) (resolver *Resolver, err error) {
	settings.setDefaults()
	err = settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	address := settings.Address
	if address == "" {
		address, err = addressFromResolvConf(settings.ResolvConfPath)
		if err != nil {
			return nil, err
		}
	}

	return &Resolver{
		client: &dns.Client{
			Net:     "udp",
			Timeout: settings.Timeout,
		},
		address: address,
	}, nil
}

var ErrNoNameserver = errors.New("no nameserver found")

func addressFromResolvConf(path string) (address string, err error) {
	config, err := dns.ClientConfigFromFile(path)
	if err != nil {
		return "", fmt.Errorf("reading resolv.conf: %w", err)
	}

	if len(config.Servers) == 0 {
		return "", fmt.Errorf("%w: in %s", ErrNoNameserver, path)
	}

	return net.JoinHostPort(config.Servers[0], config.Port), nil
}

// Address returns the DNS server address used.
func (r *Resolver) Address() string {
	return r.address
}

var (
	ErrRcodeNotSuccess = errors.New("response code is not success")
	ErrNoAddressFound  = errors.New("no IP address found")
)

// LookupIP returns the IPv4 and IPv6 addresses of the host,
// querying A records first and AAAA records second.
func (r *Resolver) LookupIP(ctx context.Context, host string) (
	ips []netip.Addr, err error) {
	for _, qType := range []uint16{dns.TypeA, dns.TypeAAAA} {
		addresses, err := r.query(ctx, host, qType)
		if err != nil {
			return nil, fmt.Errorf("querying %s records: %w", dns.TypeToString[qType], err)
		}
		ips = append(ips, addresses...)
	}

	if len(ips) == 0 {
		return nil, fmt.Errorf("%w: for %s", ErrNoAddressFound, host)
	}

	return ips, nil
}

func (r *Resolver) query(ctx context.Context, host string, qType uint16) (
	addresses []netip.Addr, err error) {
	request := new(dns.Msg)
	request.SetQuestion(dns.Fqdn(host), qType)

	response, _, err := r.client.ExchangeContext(ctx, request, r.address)
	if err != nil {
		return nil, err
	}

	if response.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("%w: %s", ErrRcodeNotSuccess, dns.RcodeToString[response.Rcode])
	}

	for _, answer := range response.Answer {
		var ip net.IP
		switch record := answer.(type) {
		case *dns.A:
			ip = record.A
		case *dns.AAAA:
			ip = record.AAAA
		default: // CNAME records in the answer chain
			continue
		}

		address, ok := netip.AddrFromSlice(ip)
		if !ok {
			continue
		}
		addresses = append(addresses, address.Unmap())
	}

	return addresses, nil
}
