package widget

import (
	"time"

	"github.com/qdm12/netscope/pkg/ipinfo"
)

// DisplayDelay is the duration the loading indicator is kept on
// after the fetch settled, whatever its outcome.
const DisplayDelay = 2350 * time.Millisecond

// FailureMessage is the only failure text shown to the user.
const FailureMessage = "You have reached the limit of requests :("

type Kind uint8

const (
	KindLoading Kind = iota
	KindError
	KindReady
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindError:
		return "error"
	case KindReady:
		return "ready"
	default:
		return "unknown"
	}
}

// ViewState is exactly one of loading, error with a message,
// or ready with a record. A ready state can have a nil record
// if the API answered with no information.
type ViewState struct {
	Kind    Kind
	Message string
	Record  *ipinfo.Record
}

func Loading() ViewState {
	return ViewState{Kind: KindLoading}
}

func Failed(message string) ViewState {
	return ViewState{Kind: KindError, Message: message}
}

func Ready(record *ipinfo.Record) ViewState {
	return ViewState{Kind: KindReady, Record: record}
}
