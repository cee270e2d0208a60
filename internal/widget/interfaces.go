package widget

import (
	"context"
	"time"

	"github.com/qdm12/netscope/pkg/ipinfo"
)

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . Fetcher,Notifier,Metrics,Logger

type Fetcher interface {
	Fetch(ctx context.Context) (record *ipinfo.Record, err error)
}

type Notifier interface {
	Notify(message string)
}

type Metrics interface {
	WidgetMounted()
	FetchDone(outcome string, duration time.Duration)
	SetActiveWidgets(count int)
}

type Logger interface {
	Debug(s string)
	Info(s string)
	Warn(s string)
	Error(s string)
}
