// ABOUTME: Tests for the RequireAdmin HTTP middleware
// ABOUTME: End-to-end scenarios with the s3cr3t secret per the guard contract

package auth

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// protectedHandler records whether it ran and which capability it saw.
type protectedHandler struct {
	called bool
	admin  *Admin
}

func (p *protectedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.called = true
	p.admin = AdminFrom(r.Context())
	w.WriteHeader(http.StatusOK)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	return body.Msg
}

func TestRequireAdmin_CorrectToken(t *testing.T) {
	cfg := mustAdminConfig(t, "s3cr3t")
	st := newFakeStore()
	handler := &protectedHandler{}

	rec := httptest.NewRecorder()
	RequireAdmin(testLogger())(handler).ServeHTTP(rec, guardRequest(t, cfg, st, "s3cr3t"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if !handler.called {
		t.Fatal("handler should have run")
	}
	if handler.admin == nil || handler.admin.Store() == nil {
		t.Fatal("handler should see the Admin capability in context")
	}
}

func TestRequireAdmin_WrongToken(t *testing.T) {
	cfg := mustAdminConfig(t, "s3cr3t")
	handler := &protectedHandler{}

	rec := httptest.NewRecorder()
	RequireAdmin(testLogger())(handler).ServeHTTP(rec, guardRequest(t, cfg, newFakeStore(), "wrong"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if handler.called {
		t.Fatal("handler must not run on rejection")
	}
	if msg := decodeMsg(t, rec); msg != "invalid api token" {
		t.Errorf("unexpected msg: %q", msg)
	}
	if strings.Contains(rec.Body.String(), "wrong") {
		t.Error("response must not echo the presented token")
	}
}

func TestRequireAdmin_NoHeader(t *testing.T) {
	cfg := mustAdminConfig(t, "s3cr3t")
	handler := &protectedHandler{}

	rec := httptest.NewRecorder()
	RequireAdmin(testLogger())(handler).ServeHTTP(rec, guardRequest(t, cfg, newFakeStore()))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decodeMsg(t, rec); msg != "invalid x-api-token header" {
		t.Errorf("unexpected msg: %q", msg)
	}
}

func TestRequireAdmin_DuplicateHeaders(t *testing.T) {
	cfg := mustAdminConfig(t, "s3cr3t")
	handler := &protectedHandler{}

	rec := httptest.NewRecorder()
	RequireAdmin(testLogger())(handler).ServeHTTP(rec, guardRequest(t, cfg, newFakeStore(), "a", "b"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if handler.called {
		t.Fatal("neither duplicate value may be accepted")
	}
}

func TestRequireAdmin_MissingConfigIs500(t *testing.T) {
	handler := &protectedHandler{}

	rec := httptest.NewRecorder()
	RequireAdmin(testLogger())(handler).ServeHTTP(rec, guardRequest(t, nil, newFakeStore(), "s3cr3t"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestRequireAdmin_MissingStoreIs500(t *testing.T) {
	cfg := mustAdminConfig(t, "s3cr3t")
	handler := &protectedHandler{}

	rec := httptest.NewRecorder()
	RequireAdmin(testLogger())(handler).ServeHTTP(rec, guardRequest(t, cfg, nil, "s3cr3t"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if handler.called {
		t.Fatal("handler must not run without a store")
	}
}
