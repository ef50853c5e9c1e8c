package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

// TestLogging_NoCustomerData ensures request bodies and query strings are not logged.
func TestLogging_NoCustomerData(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	wrapped := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/subscribe?ref=asha@example.com",
		strings.NewReader(`{"email":"asha@example.com"}`))
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if strings.Contains(buf.String(), "asha@example.com") {
		t.Errorf("log output contains a customer email: %s", buf.String())
	}
}

func TestLogging_BasicFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(Logger(logger))
	router.Put("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	})

	req := httptest.NewRequest(http.MethodPut, "/api/products/abc", nil)
	req.Header.Set("User-Agent", "TestBrowser/2.0")
	req.Header.Set(RequestIDHeader, "req-123")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	expectedFields := []string{
		`"msg":"http request"`,
		`"request_id":"req-123"`,
		`"method":"PUT"`,
		`"path":"/api/products/abc"`,
		`"route":"/api/products/{id}"`,
		`"status_code":200`,
		`"bytes":12`,
		`"user_agent":"TestBrowser/2.0"`,
	}

	for _, field := range expectedFields {
		if !strings.Contains(buf.String(), field) {
			t.Errorf("expected log field %s not found in output: %s", field, buf.String())
		}
	}
}

func TestLogging_StatusLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		statusCode int
		wantLevel  string
	}{
		{"success", "/api/products", http.StatusOK, "INFO"},
		{"created", "/api/products", http.StatusCreated, "INFO"},
		{"bad request", "/api/notify-login", http.StatusBadRequest, "WARN"},
		{"not found", "/missing", http.StatusNotFound, "WARN"},
		{"internal error", "/api/users", http.StatusInternalServerError, "ERROR"},
		{"healthy probe", "/healthz", http.StatusOK, "DEBUG"},
		{"failing probe", "/readyz", http.StatusServiceUnavailable, "ERROR"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

			wrapped := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))

			rec := httptest.NewRecorder()
			wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if !strings.Contains(buf.String(), `"level":"`+tt.wantLevel+`"`) {
				t.Errorf("expected log level %s for %s %d, got output: %s", tt.wantLevel, tt.path, tt.statusCode, buf.String())
			}
		})
	}
}

func TestResponseWriter_CapturesStatus(t *testing.T) {
	t.Parallel()

	for _, code := range []int{http.StatusOK, http.StatusCreated, http.StatusBadRequest, http.StatusInternalServerError} {
		rec := httptest.NewRecorder()
		wrapped := wrapResponseWriter(rec)
		wrapped.WriteHeader(code)

		if wrapped.status != code {
			t.Errorf("status = %d, want %d", wrapped.status, code)
		}
	}
}

func TestResponseWriter_DefaultStatusAndBytes(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	wrapped := wrapResponseWriter(rec)

	_, _ = wrapped.Write([]byte("hello"))

	if wrapped.status != http.StatusOK {
		t.Errorf("default status = %d, want %d", wrapped.status, http.StatusOK)
	}
	if wrapped.bytes != 5 {
		t.Errorf("bytes = %d, want 5", wrapped.bytes)
	}
}

func TestResponseWriter_DoubleWriteHeader(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	wrapped := wrapResponseWriter(rec)

	wrapped.WriteHeader(http.StatusCreated)
	wrapped.WriteHeader(http.StatusInternalServerError)

	if wrapped.status != http.StatusCreated {
		t.Errorf("status after double write = %d, want %d", wrapped.status, http.StatusCreated)
	}
}
