package tooldeck

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// RawResponse is the transport-level result of a request: status, headers,
// and the unparsed body. The transport hands it over without interpreting
// the payload.
type RawResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Envelope is the decoded form of the platform's uniform response body
// {"data": ..., "error": ...}. Exactly one of Data or Error is expected;
// a body that could not be parsed at all is represented as an Envelope whose
// Result returns a decode error, never as a panic or a nil.
type Envelope struct {
	// Data is the success payload, still undecoded.
	Data json.RawMessage `json:"data,omitempty"`
	// Error is the platform error object, when present.
	Error *APIError `json:"error,omitempty"`
	// Status is the HTTP status code the envelope arrived with.
	Status int `json:"-"`

	raw     []byte
	failure *Error
}

// DecodeEnvelope parses a raw response into an Envelope. It never returns an
// error: a body that is not a valid envelope yields an Envelope carrying a
// synthesized decode failure that preserves the raw bytes for diagnostics.
func DecodeEnvelope(raw *RawResponse) *Envelope {
	env := &Envelope{
		Status: raw.StatusCode,
		raw:    raw.Body,
	}

	err := json.Unmarshal(raw.Body, env)
	if err != nil {
		env.Data = nil
		env.Error = nil
		env.failure = &Error{
			Kind:    ErrorKindDecode,
			Status:  raw.StatusCode,
			Message: "response body is not a valid envelope",
			Body:    raw.Body,
			Err:     err,
		}
	}

	return env
}

// Result returns the data payload, or the error the envelope represents.
// This is the single point where envelope contents become typed errors:
//
//   - an unparseable body surfaces as an ErrorKindDecode error,
//   - an error field surfaces as the mapped platform error,
//   - data absent or null alongside no error surfaces as ErrorKindEmptyPayload.
//
// When both fields are present the error wins; no partial payload is
// returned alongside a failure.
func (e *Envelope) Result() (json.RawMessage, error) {
	if e.failure != nil {
		return nil, e.failure
	}

	if e.Error != nil {
		return nil, errorFromEnvelope(e.Error, e.Status, e.raw)
	}

	if len(e.Data) == 0 || bytes.Equal(e.Data, []byte("null")) {
		return nil, &Error{
			Kind:    ErrorKindEmptyPayload,
			Status:  e.Status,
			Message: "envelope carried neither data nor error",
			Body:    e.raw,
		}
	}

	return e.Data, nil
}

// Raw returns the undecoded response body the envelope was built from.
func (e *Envelope) Raw() []byte {
	return e.raw
}
