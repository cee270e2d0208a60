package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Widget struct {
	IdleTimeout time.Duration
}

func (w *Widget) setDefaults() {
	const defaultIdleTimeout = 30 * time.Minute
	w.IdleTimeout = gosettings.DefaultComparable(w.IdleTimeout, defaultIdleTimeout)
}

var ErrIdleTimeoutTooLow = errors.New("idle timeout is too low")

func (w Widget) Validate() (err error) {
	const minIdleTimeout = 10 * time.Second
	if w.IdleTimeout < minIdleTimeout {
		return fmt.Errorf("%w: %s is below the minimum %s",
			ErrIdleTimeoutTooLow, w.IdleTimeout, minIdleTimeout)
	}
	return nil
}

func (w Widget) toLinesNode() *gotree.Node {
	node := gotree.New("Widget")
	node.Appendf("Idle timeout: %s", w.IdleTimeout)
	return node
}

func (w *Widget) read(reader *reader.Reader) (err error) {
	w.IdleTimeout, err = reader.Duration("WIDGET_IDLE_TIMEOUT")
	return err
}
