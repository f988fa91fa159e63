package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestResponseWriterCapturesStatusAndSize(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr}

	rw.WriteHeader(http.StatusNotFound)
	rw.Write([]byte("not found"))

	if rw.status != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rw.status)
	}
	if rw.bytes != len("not found") {
		t.Errorf("bytes: got %d, want %d", rw.bytes, len("not found"))
	}
}

func TestResponseWriterDefaultsTo200(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr}

	rw.Write([]byte("ok"))

	if rw.status != http.StatusOK {
		t.Errorf("status: got %d, want implicit 200", rw.status)
	}
}

func TestResponseWriterFirstStatusWins(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rr}

	rw.WriteHeader(http.StatusConflict)
	rw.WriteHeader(http.StatusOK)

	if rw.status != http.StatusConflict {
		t.Errorf("status: got %d, want 409", rw.status)
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/admin/api/events/", nil))

	if rr.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rr.Code)
	}
	if rr.Body.String() != "created" {
		t.Errorf("body: got %q", rr.Body.String())
	}
}
