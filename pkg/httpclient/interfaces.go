package httpclient

import "context"

// Request describes a single outbound call.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	// Body is sent verbatim; nil means no body.
	Body []byte
	// Decompress asks the transport to negotiate and undo response compression.
	Decompress bool
}

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// Implementations return *Error for connection failures and non-2xx responses.
type Client interface {
	Do(ctx context.Context, req *Request) (Response, error)
}
