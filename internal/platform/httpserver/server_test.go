package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

func TestHealth(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"reachable", nil, fiber.StatusOK},
		{"unreachable", errors.New("connection refused"), fiber.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := New(Options{}, zap.NewNop())
			RegisterHealth(app, fakePinger{err: tt.err})

			resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, resp.StatusCode)
			}
		})
	}
}

func TestRequestIDAndNotFound(t *testing.T) {
	app := New(Options{}, zap.NewNop())

	resp, err := app.Test(httptest.NewRequest("GET", "/nope", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if resp.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Fatalf("expected a request id header")
	}

	var body errorResponse
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "not_found" {
		t.Fatalf("expected not_found, got %+v", body)
	}
}

func TestRecoverAndUnhandledError(t *testing.T) {
	app := New(Options{}, zap.NewNop())
	app.Get("/panic", func(*fiber.Ctx) error { panic("boom") })
	app.Get("/fail", func(*fiber.Ctx) error { return errors.New("db exploded") })

	for _, path := range []string{"/panic", "/fail"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatalf("%s: request failed: %v", path, err)
		}
		if resp.StatusCode != fiber.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", path, resp.StatusCode)
		}
		raw, _ := io.ReadAll(resp.Body)
		if strings.Contains(string(raw), "exploded") {
			t.Fatalf("%s: internal error text leaked: %s", path, raw)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app := New(Options{}, zap.NewNop())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(string(raw), "go_goroutines") {
		t.Fatalf("unexpected metrics response %d", resp.StatusCode)
	}
}

func TestStatusClass(t *testing.T) {
	for code, want := range map[int]string{200: "2xx", 404: "4xx", 503: "5xx", 0: "unknown"} {
		if got := statusClass(code); got != want {
			t.Fatalf("statusClass(%d) = %s, want %s", code, got, want)
		}
	}
}
