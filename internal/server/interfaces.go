package server

import (
	"context"

	"github.com/qdm12/netscope/internal/widget"
)

type Registry interface {
	Mount(ctx context.Context) *widget.Widget
	Get(id string) (w *widget.Widget, ok bool)
}

type Logger interface {
	Debug(s string)
	Info(s string)
	Warn(s string)
	Error(s string)
}
