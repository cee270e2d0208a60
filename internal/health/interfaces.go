package health

import (
	"context"
	"net/netip"
)

type LookupIPer interface {
	LookupIP(ctx context.Context, host string) (ips []netip.Addr, err error)
}

type Logger interface {
	Info(s string)
	Warn(s string)
	Error(s string)
}
