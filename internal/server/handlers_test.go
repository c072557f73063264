package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestServer() *Server {
	return NewServer(8080, newTestLogger())
}

func postEval(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/eval", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handleEval(rec, req)
	return rec
}

func TestHandleEval_Success(t *testing.T) {
	s := newTestServer()

	rec := postEval(t, s, `{"expression":"(1+sqrt(2))^2"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var resp EvalResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Text != "3+2√2" {
		t.Errorf("Text = %q, want %q", resp.Text, "3+2√2")
	}
	if resp.Latex != `\frac{+3+2\sqrt{2}}{1}` {
		t.Errorf("Latex = %q, want %q", resp.Latex, `\frac{+3+2\sqrt{2}}{1}`)
	}
	if resp.IsInteger || resp.IsRational {
		t.Errorf("classification: IsInteger=%v IsRational=%v, want false/false", resp.IsInteger, resp.IsRational)
	}
	want := 3 + 2*1.4142135623730951
	if diff := resp.Float - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Float = %v, want about %v", resp.Float, want)
	}
}

func TestHandleEval_RationalClassification(t *testing.T) {
	s := newTestServer()

	rec := postEval(t, s, `{"expression":"2/11"}`)

	var resp EvalResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.IsInteger {
		t.Error("2/11 should not classify as integer")
	}
	if !resp.IsRational {
		t.Error("2/11 should classify as rational")
	}
}

func TestHandleEval_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantKind   string
	}{
		{"invalid JSON", `{`, http.StatusBadRequest, "request"},
		{"missing expression", `{}`, http.StatusBadRequest, "request"},
		{"syntax error", `{"expression":"1+"}`, http.StatusUnprocessableEntity, "parse"},
		{"division by zero", `{"expression":"1/0"}`, http.StatusUnprocessableEntity, "domain"},
		{"unsupported inversion", `{"expression":"1/root(3,2)"}`, http.StatusUnprocessableEntity, "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			rec := postEval(t, s, tt.body)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding error response: %v", err)
			}
			if resp.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", resp.Kind, tt.wantKind)
			}
		})
	}
}

func TestHandleEval_MethodNotAllowed(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest("GET", "/eval", http.NoBody)
	rec := httptest.NewRecorder()
	s.handleEval(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandleEval_ExpressionTooLong(t *testing.T) {
	s := newTestServer()
	s.security.MaxExpressionLength = 8

	rec := postEval(t, s, `{"expression":"1+1+1+1+1+1"}`)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestHandleHealthz(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	rec := httptest.NewRecorder()
	s.handleHealthz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q, want it to contain %q", rec.Body.String(), "ok")
	}
}

func TestServer_RunShutsDownOnCancel(t *testing.T) {
	s := NewServer(0, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// Give the listener a moment, then cancel and expect a prompt return.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil && err != context.Canceled {
			t.Errorf("Run() error = %v, want nil or context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancellation")
	}
}
