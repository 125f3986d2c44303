package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// send runs the shared request pipeline: validate the descriptor, execute
// it, decode the envelope. Descriptor validation happens before the
// transport is touched, so a malformed request never produces network
// traffic regardless of the transport in use.
func send(ctx context.Context, transport tooldeck.Transport, req *tooldeck.RequestDescriptor) (json.RawMessage, error) {
	err := tooldeck.ValidatePath(req)
	if err != nil {
		return nil, err
	}

	raw, err := transport.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	return tooldeck.DecodeEnvelope(raw).Result()
}

// doRequest executes a descriptor and unmarshals the envelope's data
// payload into T. Every resource operation that returns a single record
// funnels through here.
func doRequest[T any](ctx context.Context, transport tooldeck.Transport, req *tooldeck.RequestDescriptor) (*T, error) {
	data, err := send(ctx, transport, req)
	if err != nil {
		return nil, err
	}

	var result T

	err = json.Unmarshal(data, &result)
	if err != nil {
		return nil, &tooldeck.Error{
			Kind:    tooldeck.ErrorKindDecode,
			Message: fmt.Sprintf("decoding %s %s payload", req.Method, req.Path),
			Body:    data,
			Err:     err,
		}
	}

	return &result, nil
}

// doList is doRequest for paginated collections.
func doList[T any](ctx context.Context, transport tooldeck.Transport, req *tooldeck.RequestDescriptor) (*tooldeck.ListResponse[T], error) {
	return doRequest[tooldeck.ListResponse[T]](ctx, transport, req)
}

// doEmpty executes a descriptor whose payload is acknowledged but not
// returned (deletes). The server may answer with data null; that is not
// an error here. Envelope errors still propagate untouched.
func doEmpty(ctx context.Context, transport tooldeck.Transport, req *tooldeck.RequestDescriptor) error {
	_, err := send(ctx, transport, req)
	if err != nil && !tooldeck.IsEmptyPayload(err) {
		return err
	}

	return nil
}
