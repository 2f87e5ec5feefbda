package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-product-analytics/pkg/router"
)

func newTestRouter() *router.Router {
	r := router.New()
	r.GET("/api/v1/datasets", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("list"))
	})
	r.GET("/api/v1/datasets/*/metrics", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("metrics:" + router.PathSegment(req, 3)))
	})
	r.GET("/api/v1/datasets/*", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("get:" + router.PathSegment(req, 3)))
	})
	return r
}

func doRequest(r *router.Router, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterExactMatch(t *testing.T) {
	rec := doRequest(newTestRouter(), http.MethodGet, "/api/v1/datasets")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "list", rec.Body.String())
}

func TestRouterWildcardMatch(t *testing.T) {
	rec := doRequest(newTestRouter(), http.MethodGet, "/api/v1/datasets/abc-123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "get:abc-123", rec.Body.String())
}

func TestRouterMoreSpecificRouteWins(t *testing.T) {
	rec := doRequest(newTestRouter(), http.MethodGet, "/api/v1/datasets/abc-123/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "metrics:abc-123", rec.Body.String())
}

func TestRouterNotFound(t *testing.T) {
	rec := doRequest(newTestRouter(), http.MethodGet, "/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterMethodNotAllowed(t *testing.T) {
	rec := doRequest(newTestRouter(), http.MethodDelete, "/api/v1/datasets")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPathSegmentOutOfRange(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/datasets", nil)
	assert.Equal(t, "", router.PathSegment(req, 9))
	assert.Equal(t, "datasets", router.PathSegment(req, 2))
}
