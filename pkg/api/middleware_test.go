package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofrs/uuid"
)

func Test_requestIDMiddlewareHeaderExists(t *testing.T) {
	api := &API{}
	wantID := "test-req-id-123"
	handler := api.requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := GetRequestID(r.Context()); got != wantID {
			t.Errorf("want request id in context %q, got %q", wantID, got)
		}
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "ok")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", wantID)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("want status code %v, got %v", http.StatusOK, rr.Code)
	}
	if got := rr.Header().Get("X-Request-Id"); got != wantID {
		t.Errorf("want X-Request-Id header %q, got %q", wantID, got)
	}
}

func Test_requestIDMiddlewareHeaderNotExists(t *testing.T) {
	api := &API{}
	handler := api.requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID := GetRequestID(r.Context())
		if gotID == "" {
			t.Error("want non-empty request id in context when header is missing")
		}
		if _, err := uuid.FromString(gotID); err != nil {
			t.Errorf("want valid UUID for generated request id, got %q", gotID)
		}
		if w.Header().Get("X-Request-Id") != gotID {
			t.Error("want generated request id echoed in X-Request-Id header")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("want status code %v, got %v", http.StatusOK, rr.Code)
	}
}

func Test_headerMiddleware(t *testing.T) {
	api := &API{}
	handler := api.headerMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("want Content-Type application/json, got %q", got)
	}
}

func TestGetRequestID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("want empty request id, got %q", got)
	}
}

func Test_getClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	if got := getClientIP(req); got != "10.0.0.1:1234" {
		t.Errorf("want remote addr, got %q", got)
	}

	req.Header.Set("X-Forwarded-For", "192.168.1.1")
	if got := getClientIP(req); got != "192.168.1.1" {
		t.Errorf("want forwarded addr, got %q", got)
	}
}

func Test_shorten(t *testing.T) {
	if got := shorten("abc"); got != "abc" {
		t.Errorf("shorten(abc) = %q", got)
	}
	if got := shorten("abcdefgh"); got != "abcdef..." {
		t.Errorf("shorten(abcdefgh) = %q", got)
	}
}
