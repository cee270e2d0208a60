package resolver

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/miekg/dns"
	"github.com/qdm12/netscope/internal/resolver/mock_resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_New(t *testing.T) {
	t.Parallel()

	resolvConfPath := filepath.Join(t.TempDir(), "resolv.conf")
	const resolvConf = "search lan\nnameserver 192.168.1.1\nnameserver 1.1.1.1\n"
	err := os.WriteFile(resolvConfPath, []byte(resolvConf), 0o600)
	require.NoError(t, err)

	emptyResolvConfPath := filepath.Join(t.TempDir(), "resolv.conf")
	err = os.WriteFile(emptyResolvConfPath, []byte("search lan\n"), 0o600)
	require.NoError(t, err)

	testCases := map[string]struct {
		settings   Settings
		address    string
		errWrapped error
		errMessage string
	}{
		"explicit address": {
			settings: Settings{Address: "1.1.1.1:53"},
			address:  "1.1.1.1:53",
		},
		"resolv.conf": {
			settings: Settings{ResolvConfPath: resolvConfPath},
			address:  "192.168.1.1:53",
		},
		"resolv.conf without nameserver": {
			settings:   Settings{ResolvConfPath: emptyResolvConfPath},
			errWrapped: ErrNoNameserver,
			errMessage: "no nameserver found: in " + emptyResolvConfPath,
		},
		"address without port": {
			settings:   Settings{Address: "1.1.1.1:"},
			errWrapped: ErrAddressPortEmpty,
			errMessage: "validating settings: address port is empty: in 1.1.1.1:",
		},
		"timeout too low": {
			settings:   Settings{Address: "1.1.1.1:53", Timeout: time.Millisecond},
			errWrapped: ErrTimeoutTooLow,
			errMessage: "validating settings: timeout is too low: 1ms is below the minimum 10ms",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			resolver, err := New(testCase.settings)

			if testCase.errMessage != "" {
				assert.ErrorIs(t, err, testCase.errWrapped)
				assert.EqualError(t, err, testCase.errMessage)
				assert.Nil(t, resolver)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.address, resolver.Address())
		})
	}
}

func Test_Resolver_LookupIP(t *testing.T) {
	t.Parallel()

	errTest := errors.New("test error")

	type exchange struct {
		response *dns.Msg
		err      error
	}

	testCases := map[string]struct {
		exchanges  []exchange
		ips        []netip.Addr
		errWrapped error
		errMessage string
	}{
		"A and AAAA records": {
			exchanges: []exchange{
				{response: &dns.Msg{Answer: []dns.RR{
					&dns.CNAME{Target: "ipapi.co.cdn.cloudflare.net."},
					&dns.A{A: net.IPv4(104, 26, 8, 44)},
				}}},
				{response: &dns.Msg{Answer: []dns.RR{
					&dns.AAAA{AAAA: net.ParseIP("2606:4700:20::681a:82c")},
				}}},
			},
			ips: []netip.Addr{
				netip.MustParseAddr("104.26.8.44"),
				netip.MustParseAddr("2606:4700:20::681a:82c"),
			},
		},
		"A query error": {
			exchanges:  []exchange{{err: errTest}},
			errWrapped: errTest,
			errMessage: "querying A records: test error",
		},
		"AAAA response code error": {
			exchanges: []exchange{
				{response: &dns.Msg{}},
				{response: &dns.Msg{MsgHdr: dns.MsgHdr{Rcode: dns.RcodeServerFailure}}},
			},
			errWrapped: ErrRcodeNotSuccess,
			errMessage: "querying AAAA records: response code is not success: SERVFAIL",
		},
		"no address": {
			exchanges: []exchange{
				{response: &dns.Msg{}},
				{response: &dns.Msg{}},
			},
			errWrapped: ErrNoAddressFound,
			errMessage: "no IP address found: for ipapi.co",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			ctx := context.Background()
			const address = "1.1.1.1:53"

			client := mock_resolver.NewMockClient(ctrl)
			qTypes := []uint16{dns.TypeA, dns.TypeAAAA}
			var previousCall *gomock.Call
			for i, exchange := range testCase.exchanges {
				qType := qTypes[i]
				exchange := exchange
				call := client.EXPECT().ExchangeContext(ctx, gomock.Any(), address).
					DoAndReturn(func(_ context.Context, m *dns.Msg, _ string) (
						*dns.Msg, time.Duration, error) {
						require.Len(t, m.Question, 1)
						assert.Equal(t, "ipapi.co.", m.Question[0].Name)
						assert.Equal(t, qType, m.Question[0].Qtype)
						assert.True(t, m.RecursionDesired)
						return exchange.response, time.Millisecond, exchange.err
					})
				if previousCall != nil {
					call.After(previousCall)
				}
				previousCall = call
			}

			resolver := &Resolver{
				client:  client,
				address: address,
			}

			ips, err := resolver.LookupIP(ctx, "ipapi.co")

			if testCase.errMessage != "" {
				assert.ErrorIs(t, err, testCase.errWrapped)
				assert.EqualError(t, err, testCase.errMessage)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, testCase.ips, ips)
		})
	}
}
