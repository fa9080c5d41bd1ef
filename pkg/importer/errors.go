package importer

import "fmt"

// ValidationError reports a malformed or disallowed input URL. It is
// returned before any network call is made; the caller can recover by
// correcting the input. Message is user-facing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// FetchError reports a failed page fetch: a non-2xx response (with
// StatusCode set) or a network/timeout failure. Fetches are not
// retried.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("โหลดหน้าไม่สำเร็จ (%d)", e.StatusCode)
	}
	return "โหลดหน้าไม่สำเร็จ"
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
