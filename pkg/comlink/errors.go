package comlink

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/samvad-hq/swgoh-comlink-go/pkg/httpclient"
)

var (
	// ErrInvalidResponse is wrapped when a successful response is not JSON.
	ErrInvalidResponse = errors.New("comlink: response body is not valid JSON")
	// ErrMissingIdentifier is returned when neither an ally code nor a player id is given.
	ErrMissingIdentifier = errors.New("comlink: ally code or player id is required")
)

// Error is a transport failure whose message and/or code were declared by
// the remote service in the response body. The transport's own values are
// kept in OriginalMessage and OriginalCode.
type Error struct {
	Message         string
	Code            string
	OriginalMessage string
	OriginalCode    string
	StatusCode      int
	Body            []byte

	cause *httpclient.Error
}

func (e *Error) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Message + " (code " + e.Code + ")"
}

// Unwrap returns the transport error this one was built from.
func (e *Error) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

// normalizeError promotes a remote-declared message/code over the transport's
// own. Each field is resolved on its own, so a malformed message never hides
// a usable code. Errors without a usable JSON object body come back unchanged.
func normalizeError(err error) error {
	var terr *httpclient.Error
	if !errors.As(err, &terr) || len(bytes.TrimSpace(terr.Body)) == 0 {
		return err
	}

	var body map[string]json.RawMessage
	if json.Unmarshal(terr.Body, &body) != nil {
		return err
	}
	message, hasMessage := fieldString(body["message"])
	code, hasCode := fieldString(body["code"])
	if !hasMessage && !hasCode {
		return err
	}

	out := &Error{
		Message:    terr.Message,
		Code:       terr.Code,
		StatusCode: terr.StatusCode,
		Body:       terr.Body,
		cause:      terr,
	}
	if hasMessage {
		out.OriginalMessage = out.Message
		out.Message = message
	}
	if hasCode {
		out.OriginalCode = out.Code
		out.Code = code
	}
	return out
}

// fieldString renders a remote field as text. null, false, zero and the empty
// string count as absent; objects and arrays are kept as compact JSON.
func fieldString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}

	switch raw[0] {
	case 'n':
		return "", false
	case 't':
		return strconv.FormatBool(true), true
	case 'f':
		return "", false
	case '"':
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return "", false
		}
		return s, s != ""
	case '{', '[':
		var buf bytes.Buffer
		if json.Compact(&buf, raw) != nil {
			return "", false
		}
		return buf.String(), true
	}

	var n json.Number
	if json.Unmarshal(raw, &n) != nil {
		return "", false
	}
	if f, err := n.Float64(); err == nil && f == 0 {
		return "", false
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), true
	}
	return n.String(), true
}
