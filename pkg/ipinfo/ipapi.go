package ipinfo

import "fmt"

// ipapiResponse is the JSON payload answered by ipapi.co.
// On failure, ipapi.co may answer with a 200 status code and
// set the error field to true together with a reason.
type ipapiResponse struct {
	Record
	Error   bool   `json:"error"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func (r *ipapiResponse) toRecord() (record *Record, err error) {
	if r == nil {
		return nil, nil //nolint:nilnil
	}

	if r.Error {
		details := r.Reason
		if r.Message != "" {
			details += ": " + r.Message
		}

		if r.Reason == "RateLimited" {
			return nil, fmt.Errorf("%w (%s)", ErrTooManyRequests, details)
		}
		return nil, fmt.Errorf("%w: %s", ErrAPIError, details)
	}

	record = new(Record)
	*record = r.Record
	return record, nil
}
