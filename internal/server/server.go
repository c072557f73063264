// Package server exposes expression evaluation over HTTP. It serves a JSON
// evaluation endpoint, a liveness probe and Prometheus metrics, with
// request hardening and OpenTelemetry tracing on the evaluation path.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/goessl/sumofradicals/internal/config"
	apperrors "github.com/goessl/sumofradicals/internal/errors"
	"github.com/goessl/sumofradicals/internal/logging"
	"github.com/goessl/sumofradicals/internal/parser"
)

// Server is the HTTP evaluation server.
type Server struct {
	addr     string
	logger   logging.Logger
	metrics  *Metrics
	security SecurityConfig
	tracer   trace.Tracer

	httpServer *http.Server
}

// NewServer creates a server listening on the given port.
//
// Parameters:
//   - port: The TCP port to listen on.
//   - logger: The structured logger for request and lifecycle events.
//
// Returns:
//   - *Server: A configured server, not yet listening.
func NewServer(port int, logger logging.Logger) *Server {
	s := &Server{
		addr:     fmt.Sprintf(":%d", port),
		logger:   logger,
		metrics:  NewMetrics(),
		security: DefaultSecurityConfig(),
		tracer:   otel.Tracer("radcalc/server"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/eval", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleEval)))
	mux.HandleFunc("/healthz", s.metricsMiddleware(s.handleHealthz))
	mux.HandleFunc("/metrics", s.handleMetrics)

	s.httpServer = &http.Server{
		Addr:         s.addr,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
	}
	return s
}

// Run starts the server and blocks until the context is canceled or the
// listener fails. Shutdown is graceful within config.ServerShutdownGrace.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", logging.String("addr", s.addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		return apperrors.WrapError(err, "http server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownGrace)
	defer cancel()
	s.logger.Info("http server shutting down")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.WrapError(err, "http server shutdown")
	}
	return ctx.Err()
}

// metricsMiddleware tracks in-flight requests, total counts and latency for
// the wrapped handler.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.ObserveRequest(r.URL.Path, strconv.Itoa(rec.status), time.Since(start).Seconds())
	}
}

// statusRecorder captures the response status code for metrics labels.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// EvalRequest is the JSON body of an evaluation request.
type EvalRequest struct {
	// Expression is the source text to evaluate.
	Expression string `json:"expression"`
}

// EvalResponse is the JSON body of a successful evaluation.
type EvalResponse struct {
	// Input echoes the evaluated expression.
	Input string `json:"input"`
	// Text is the canonical Unicode rendering of the result.
	Text string `json:"text"`
	// Latex is the LaTeX rendering of the result.
	Latex string `json:"latex"`
	// Float is a floating-point approximation of the result.
	Float float64 `json:"float"`
	// IsInteger and IsRational classify the result's exact form.
	IsInteger  bool `json:"isInteger"`
	IsRational bool `json:"isRational"`
}

// ErrorResponse is the JSON body of a failed evaluation.
type ErrorResponse struct {
	// Error describes what went wrong.
	Error string `json:"error"`
	// Kind classifies the failure ("parse", "domain", "unsupported", "internal").
	Kind string `json:"kind"`
}

// handleEval evaluates the expression in a POST body and returns the exact
// result with its renderings.
func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "only POST is accepted", "method")
		return
	}

	_, span := s.tracer.Start(r.Context(), "radcalc.eval")
	defer span.End()

	r.Body = http.MaxBytesReader(w, r.Body, s.security.MaxBodyBytes)
	var req EvalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.CountEvaluation("bad_request")
		s.writeError(w, http.StatusBadRequest, "invalid JSON body", "request")
		return
	}
	if req.Expression == "" {
		s.metrics.CountEvaluation("bad_request")
		s.writeError(w, http.StatusBadRequest, "missing expression", "request")
		return
	}
	if len(req.Expression) > s.security.MaxExpressionLength {
		s.metrics.CountEvaluation("bad_request")
		s.writeError(w, http.StatusRequestEntityTooLarge, "expression too long", "request")
		return
	}

	span.SetAttributes(attribute.Int("radcalc.expression_length", len(req.Expression)))

	v, err := parser.Parse(req.Expression)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		status, kind := classifyError(err)
		s.metrics.CountEvaluation(kind + "_error")
		s.logger.Debug("evaluation failed",
			logging.String("kind", kind),
			logging.Err(err))
		s.writeError(w, status, err.Error(), kind)
		return
	}

	s.metrics.CountEvaluation("ok")
	s.writeJSON(w, http.StatusOK, EvalResponse{
		Input:      req.Expression,
		Text:       v.String(),
		Latex:      v.Latex(),
		Float:      v.Float64(),
		IsInteger:  v.IsInteger(),
		IsRational: v.IsRational(),
	})
}

// classifyError maps evaluation errors to HTTP statuses and outcome kinds.
func classifyError(err error) (status int, kind string) {
	var parseErr apperrors.ParseError
	var domainErr apperrors.DomainError
	var unsupportedErr apperrors.UnsupportedError
	switch {
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity, "parse"
	case errors.As(err, &domainErr):
		return http.StatusUnprocessableEntity, "domain"
	case errors.As(err, &unsupportedErr):
		return http.StatusUnprocessableEntity, "unsupported"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// handleHealthz answers liveness probes.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "only GET is accepted", "method")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics serves the Prometheus exposition endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("metrics endpoint rejected method", logging.String("method", r.Method))
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("writing response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg, kind string) {
	s.writeJSON(w, status, ErrorResponse{Error: msg, Kind: kind})
}
