package tooldeck

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// RequestDescriptor is the complete, declarative description of one API
// request. Resource clients build a fresh descriptor per call and treat it
// as immutable afterwards; the transport serializes it onto the wire.
type RequestDescriptor struct {
	// Method is the HTTP method.
	Method string
	// Path is the endpoint template, with parameters in braces, e.g.
	// "/v1/apps/{app_key}".
	Path string
	// PathParams binds template parameter names to values. Values are
	// substituted verbatim (no trimming or case folding) and escaped for
	// the wire.
	PathParams map[string]string
	// Query holds query string values.
	Query url.Values
	// Body is the request payload, JSON-encoded by the transport. Nil means
	// no body.
	Body interface{}
	// Headers are additional headers set on the request.
	Headers map[string]string
}

// Transport sends a described request and returns whatever the wire
// produced. Implementations do not interpret response payloads; status and
// body travel back in the RawResponse for the envelope decoder to judge.
//
// Implementations must be safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, req *RequestDescriptor) (*RawResponse, error)
}

// ExpandPath substitutes params into a path template. Every placeholder must
// be bound to a non-empty value and every binding must match a placeholder;
// a violation returns an ErrorKindMalformedRequest error before anything
// touches the network. Values are path-escaped on substitution.
func ExpandPath(template string, params map[string]string) (string, error) {
	var sb strings.Builder

	used := make(map[string]bool, len(params))
	rest := template

	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			sb.WriteString(rest)

			break
		}

		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return "", &Error{
				Kind:    ErrorKindMalformedRequest,
				Message: fmt.Sprintf("unterminated parameter in path template %q", template),
			}
		}

		name := rest[start+1 : start+end]

		value, ok := params[name]
		if !ok || value == "" {
			return "", &Error{
				Kind:    ErrorKindMalformedRequest,
				Message: fmt.Sprintf("missing required path parameter %q in template %q", name, template),
			}
		}

		sb.WriteString(rest[:start])
		sb.WriteString(url.PathEscape(value))

		used[name] = true
		rest = rest[start+end+1:]
	}

	for name := range params {
		if !used[name] {
			return "", &Error{
				Kind:    ErrorKindMalformedRequest,
				Message: fmt.Sprintf("path parameter %q does not appear in template %q", name, template),
			}
		}
	}

	return sb.String(), nil
}

// ValidatePath checks a descriptor's path template against its bindings
// without building the final path. Resource clients run this before handing
// the descriptor to a Transport so malformed requests fail first.
func ValidatePath(req *RequestDescriptor) error {
	_, err := ExpandPath(req.Path, req.PathParams)

	return err
}
