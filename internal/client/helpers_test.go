package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// testConfig returns a minimal valid config pointing at a test server.
func testConfig(url string) *tooldeck.Config {
	return &tooldeck.Config{
		APIKey:  "test-key",
		BaseURL: url,
	}
}

// writeData writes a success envelope around v.
func writeData(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": v})
}

// writeAPIError writes an error envelope with the given status and code.
func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{"code": code, "message": message},
	})
}

// spyTransport records every Send and returns a canned result. It stands in
// for the HTTP transport when a test only cares about pipeline behavior.
type spyTransport struct {
	calls    int
	lastReq  *tooldeck.RequestDescriptor
	response *tooldeck.RawResponse
	err      error
}

func (s *spyTransport) Send(_ context.Context, req *tooldeck.RequestDescriptor) (*tooldeck.RawResponse, error) {
	s.calls++
	s.lastReq = req

	return s.response, s.err
}

// rawJSON builds a RawResponse around a JSON body literal.
func rawJSON(status int, body string) *tooldeck.RawResponse {
	return &tooldeck.RawResponse{
		StatusCode: status,
		Headers:    http.Header{"Content-Type": []string{"application/json"}},
		Body:       []byte(body),
	}
}
