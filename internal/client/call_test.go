package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

func TestDoRequest_MalformedDescriptorNeverReachesTransport(t *testing.T) {
	spy := &spyTransport{response: rawJSON(200, `{"data":{}}`)}

	req := &tooldeck.RequestDescriptor{
		Method: "GET",
		Path:   "/v1/apps/{app_key}",
		// app_key left unbound
	}

	result, err := doRequest[tooldeck.App](context.Background(), spy, req)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, tooldeck.IsMalformedRequest(err))
	assert.Equal(t, 0, spy.calls)
}

func TestDoRequest_EmptyPathParamNeverReachesTransport(t *testing.T) {
	spy := &spyTransport{response: rawJSON(200, `{"data":{}}`)}

	req := &tooldeck.RequestDescriptor{
		Method:     "GET",
		Path:       "/v1/apps/{app_key}",
		PathParams: map[string]string{"app_key": ""},
	}

	_, err := doRequest[tooldeck.App](context.Background(), spy, req)
	require.Error(t, err)
	assert.True(t, tooldeck.IsMalformedRequest(err))
	assert.Equal(t, 0, spy.calls)
}

func TestDoRequest_UnmarshalsPayload(t *testing.T) {
	spy := &spyTransport{response: rawJSON(200, `{"data":{"key":"github","name":"GitHub"}}`)}

	req := &tooldeck.RequestDescriptor{Method: "GET", Path: "/v1/apps/github"}

	app, err := doRequest[tooldeck.App](context.Background(), spy, req)
	require.NoError(t, err)
	assert.Equal(t, "github", app.Key)
	assert.Equal(t, "GitHub", app.Name)
	assert.Equal(t, 1, spy.calls)
}

func TestDoRequest_PayloadShapeMismatchIsDecodeKind(t *testing.T) {
	spy := &spyTransport{response: rawJSON(200, `{"data":[1,2,3]}`)}

	req := &tooldeck.RequestDescriptor{Method: "GET", Path: "/v1/apps/github"}

	_, err := doRequest[tooldeck.App](context.Background(), spy, req)
	require.Error(t, err)
	assert.True(t, tooldeck.IsDecode(err))

	var tdErr *tooldeck.Error
	require.ErrorAs(t, err, &tdErr)
	assert.Equal(t, []byte(`[1,2,3]`), tdErr.Body)
}

func TestDoRequest_NullDataIsEmptyPayload(t *testing.T) {
	spy := &spyTransport{response: rawJSON(200, `{"data":null}`)}

	req := &tooldeck.RequestDescriptor{Method: "GET", Path: "/v1/apps/github"}

	_, err := doRequest[tooldeck.App](context.Background(), spy, req)
	require.Error(t, err)
	assert.True(t, tooldeck.IsEmptyPayload(err))
}

func TestDoRequest_ErrorFieldWinsOverData(t *testing.T) {
	spy := &spyTransport{response: rawJSON(200,
		`{"data":{"key":"github"},"error":{"code":"rate_limited","message":"slow down"}}`)}

	req := &tooldeck.RequestDescriptor{Method: "GET", Path: "/v1/apps/github"}

	app, err := doRequest[tooldeck.App](context.Background(), spy, req)
	require.Error(t, err)
	assert.Nil(t, app)
	assert.True(t, tooldeck.IsRateLimited(err))
}

func TestDoRequest_TransportErrorPropagates(t *testing.T) {
	spy := &spyTransport{err: &tooldeck.Error{
		Kind:    tooldeck.ErrorKindNetwork,
		Message: "connection refused",
	}}

	req := &tooldeck.RequestDescriptor{Method: "GET", Path: "/v1/apps"}

	_, err := doRequest[tooldeck.App](context.Background(), spy, req)
	require.Error(t, err)
	assert.True(t, tooldeck.IsNetwork(err))
}

func TestDoList_DecodesItemsAndPage(t *testing.T) {
	spy := &spyTransport{response: rawJSON(200,
		`{"data":{"items":[{"key":"github"},{"key":"slack"}],"page":{"number":1,"size":2,"total_pages":4,"total_items":8}}}`)}

	req := &tooldeck.RequestDescriptor{Method: "GET", Path: "/v1/apps"}

	list, err := doList[tooldeck.AppSummary](context.Background(), spy, req)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "github", list.Items[0].Key)
	assert.Equal(t, "slack", list.Items[1].Key)
	assert.Equal(t, 8, list.Page.TotalItems)
	assert.True(t, list.Page.HasNext())
}

func TestDoEmpty_ToleratesNullData(t *testing.T) {
	spy := &spyTransport{response: rawJSON(200, `{"data":null}`)}

	req := &tooldeck.RequestDescriptor{Method: "DELETE", Path: "/v1/connections/c1"}

	err := doEmpty(context.Background(), spy, req)
	require.NoError(t, err)
	assert.Equal(t, 1, spy.calls)
}

func TestDoEmpty_ToleratesAcknowledgmentPayload(t *testing.T) {
	spy := &spyTransport{response: rawJSON(200, `{"data":{"status":"deleted"}}`)}

	req := &tooldeck.RequestDescriptor{Method: "DELETE", Path: "/v1/connections/c1"}

	err := doEmpty(context.Background(), spy, req)
	require.NoError(t, err)
}

func TestDoEmpty_PropagatesEnvelopeError(t *testing.T) {
	spy := &spyTransport{response: rawJSON(404, `{"error":{"code":"not_found","message":"no such connection"}}`)}

	req := &tooldeck.RequestDescriptor{Method: "DELETE", Path: "/v1/connections/c1"}

	err := doEmpty(context.Background(), spy, req)
	require.Error(t, err)
	assert.True(t, tooldeck.IsNotFound(err))
}

func TestSend_UnparseableBodyIsDecodeKind(t *testing.T) {
	spy := &spyTransport{response: rawJSON(502, `<html>Bad Gateway</html>`)}

	req := &tooldeck.RequestDescriptor{Method: "GET", Path: "/v1/apps"}

	_, err := send(context.Background(), spy, req)
	require.Error(t, err)
	assert.True(t, tooldeck.IsDecode(err))

	var tdErr *tooldeck.Error
	require.ErrorAs(t, err, &tdErr)
	assert.Equal(t, 502, tdErr.Status)
	assert.Contains(t, string(tdErr.Body), "Bad Gateway")
}
