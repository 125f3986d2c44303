package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

// cachingTransport serves cacheable reads from a CacheManager and
// invalidates the affected resource on mutations. It wraps another
// Transport and is itself a Transport, so it composes with interceptors
// and test doubles.
type cachingTransport struct {
	next    tooldeck.Transport
	manager *tooldeck.CacheManager
	policy  *tooldeck.CachingPolicy
}

func newCachingTransport(next tooldeck.Transport, manager *tooldeck.CacheManager, policy *tooldeck.CachingPolicy) *cachingTransport {
	if policy == nil {
		policy = tooldeck.DefaultCachingPolicy()
	}

	return &cachingTransport{
		next:    next,
		manager: manager,
		policy:  policy,
	}
}

// Send serves the request from cache when the policy allows it, falling
// through to the wrapped transport otherwise. Successful mutations drop
// every cached entry under the mutated resource root.
func (t *cachingTransport) Send(ctx context.Context, req *tooldeck.RequestDescriptor) (*tooldeck.RawResponse, error) {
	path, err := tooldeck.ExpandPath(req.Path, req.PathParams)
	if err != nil {
		return nil, err
	}

	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		resp, err := t.next.Send(ctx, req)
		if err == nil {
			_ = t.manager.InvalidatePath(ctx, resourceRoot(path))
		}

		return resp, err
	}

	if !t.policy.ShouldCache(req.Method, path, http.StatusOK) {
		return t.next.Send(ctx, req)
	}

	key := t.manager.GetCacheKey(req.Method, path, flattenQuery(req.Query))

	if data, err := t.manager.Get(ctx, key); err == nil {
		var cached tooldeck.RawResponse

		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}

		// A corrupt entry is dropped and the request re-fetched.
		_ = t.manager.Delete(ctx, key)
	}

	resp, err := t.next.Send(ctx, req)
	if err != nil {
		return nil, err
	}

	if t.policy.ShouldCache(req.Method, path, resp.StatusCode) {
		if data, err := json.Marshal(resp); err == nil {
			_ = t.manager.SetWithETag(ctx, key, data, resp.Headers.Get("ETag"), t.policy.TTLFor(path))
		}
	}

	return resp, nil
}

// flattenQuery folds multi-valued query parameters into the comma-joined
// form used for cache keys.
func flattenQuery(query map[string][]string) map[string]string {
	if len(query) == 0 {
		return nil
	}

	flat := make(map[string]string, len(query))
	for name, values := range query {
		flat[name] = strings.Join(values, ",")
	}

	return flat
}

// resourceRoot reduces a request path to its version-prefixed resource
// root ("/v1/connections/abc" -> "/v1/connections"), the granularity at
// which mutations invalidate cached reads.
func resourceRoot(path string) string {
	segments := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 3)
	if len(segments) < 2 {
		return path
	}

	return "/" + segments[0] + "/" + segments[1]
}
