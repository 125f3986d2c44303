package client

import (
	"context"

	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// interceptTransport runs an InterceptorChain around the wrapped
// transport. Request interceptors may veto the call; response
// interceptors observe both the response and any transport error.
type interceptTransport struct {
	next  tooldeck.Transport
	chain *tooldeck.InterceptorChain
}

func newInterceptTransport(next tooldeck.Transport, chain *tooldeck.InterceptorChain) *interceptTransport {
	return &interceptTransport{
		next:  next,
		chain: chain,
	}
}

// Send implements tooldeck.Transport.
func (t *interceptTransport) Send(ctx context.Context, req *tooldeck.RequestDescriptor) (*tooldeck.RawResponse, error) {
	err := t.chain.ExecuteRequestInterceptors(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, sendErr := t.next.Send(ctx, req)

	err = t.chain.ExecuteResponseInterceptors(ctx, req, resp, sendErr)
	if err != nil {
		return nil, err
	}

	return resp, sendErr
}
