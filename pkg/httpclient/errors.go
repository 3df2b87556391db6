package httpclient

import "fmt"

const (
	// CodeNon2xx marks a response the transport treats as a failure.
	CodeNon2xx = "ERR_NON_2XX_RESPONSE"
	// CodeRequestFailed marks a request that never produced a response.
	CodeRequestFailed = "ERR_REQUEST_FAILED"
)

// Error is the transport-level failure returned by Client implementations.
type Error struct {
	Message    string
	Code       string
	Method     string
	URL        string
	StatusCode int
	// Body holds the raw response body when the remote answered.
	Body []byte
	Err  error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// HasResponse reports whether the remote answered with a status.
func (e *Error) HasResponse() bool { return e != nil && e.StatusCode != 0 }

func newStatusError(method, url string, status int, statusText string, body []byte) *Error {
	return &Error{
		Message:    fmt.Sprintf("response code %d (%s)", status, statusText),
		Code:       CodeNon2xx,
		Method:     method,
		URL:        url,
		StatusCode: status,
		Body:       body,
	}
}

func newRequestError(method, url string, err error) *Error {
	return &Error{
		Message: fmt.Sprintf("%s %s: %v", method, url, err),
		Code:    CodeRequestFailed,
		Method:  method,
		URL:     url,
		Err:     err,
	}
}
