package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"github.com/paulr25/bp-tracker/internal/middleware"
)

// requestWithChiURLParams builds a request whose chi route context carries the
// given URL params, so handlers can be exercised without a full router.
func requestWithChiURLParams(method, target string, body []byte, params map[string]string) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// withUser stamps an authenticated user id onto the request context, the way
// the JWT middleware would.
func withUser(req *http.Request, userID int) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
}
