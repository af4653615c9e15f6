package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
)

// NewRequestWithURLParams creates an HTTP request with chi URL parameters.
// This helper simplifies testing chi handlers that use chi.URLParam() to extract path parameters.
//
// Example:
//
//	req := testutil.NewRequestWithURLParams(
//	    http.MethodGet,
//	    "/api/users/123-456/goals/progress",
//	    map[string]string{"userId": "123-456"},
//	)
func NewRequestWithURLParams(method, path string, params map[string]string) *http.Request {
	return NewRequestWithBody(method, path, params, "")
}

// NewRequestWithBody creates an HTTP request with chi URL parameters and a
// JSON body.
//
// Example:
//
//	req := testutil.NewRequestWithBody(
//	    http.MethodPost,
//	    "/api/users/123-456/goals/sync",
//	    map[string]string{"userId": "123-456"},
//	    `{"goals": []}`,
//	)
func NewRequestWithBody(method, path string, params map[string]string, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req
}

// NewRequestWithQueryParams creates an HTTP request with chi URL parameters
// plus query parameters.
func NewRequestWithQueryParams(method, path string, params, queryParams map[string]string) *http.Request {
	req := NewRequestWithURLParams(method, path, params)

	if len(queryParams) > 0 {
		q := req.URL.Query()
		for key, value := range queryParams {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	return req
}
