package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"wiki-resolver-go/internal/logger"
	"wiki-resolver-go/internal/processor"
	"wiki-resolver-go/internal/resolver"
	"wiki-resolver-go/internal/types"
	"wiki-resolver-go/internal/wikipedia"
)

const defaultSearchTimeout = 40 * time.Second

type Server struct {
	proc     *processor.Processor
	resolver *resolver.Resolver
	log      *logger.Logger
}

// New builds the HTTP surface. res supplies the default thresholds for
// POST /resolve.
func New(proc *processor.Processor, res *resolver.Resolver, log *logger.Logger) *Server {
	return &Server{proc: proc, resolver: res, log: log}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /search", s.handleSearch)
	mux.HandleFunc("POST /resolve", s.handleResolve)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.log.WithRequest(r).Debug("health check")
	fmt.Fprint(w, "ok")
}

type searchResponse struct {
	Query   string                 `json:"query"`
	Outcome string                 `json:"outcome"`
	Result  types.ResolutionResult `json:"result"`
}

// handleSearch fetches candidates from Wikipedia and resolves them.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "search")

	query := r.URL.Query().Get("query")
	if query == "" {
		reqLog.Warn("missing query")
		writeError(w, http.StatusBadRequest, errors.New("missing query"))
		return
	}
	timeout := defaultSearchTimeout
	if t := r.URL.Query().Get("timeout_sec"); t != "" {
		if sec, err := strconv.Atoi(t); err == nil && sec > 0 {
			timeout = time.Duration(sec) * time.Second
		}
	}
	reqLog = reqLog.WithFields(logrus.Fields{"query": query, "timeout": timeout.String()})

	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	start := time.Now()
	res, err := s.proc.ArticleSearch(ctx, query)
	reqLog = reqLog.WithField("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		reqLog.WithField("error", err.Error()).Warn("search failed")
		writeError(w, statusFor(err), err)
		return
	}
	reqLog.Info("search finished")
	writeJSON(w, http.StatusOK, searchResponse{Query: query, Outcome: processor.Outcome(res), Result: res})
}

type resolveRequest struct {
	Query      string            `json:"query"`
	Candidates []types.Candidate `json:"candidates"`
	Thresholds *types.Thresholds `json:"thresholds,omitempty"`
}

// handleResolve runs the resolver over caller-supplied candidates; no
// network access is involved.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	reqLog := s.log.WithRequest(r).WithField("handler", "resolve")

	th := s.resolver.Thresholds()
	req := resolveRequest{Thresholds: &th}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		reqLog.WithField("error", err.Error()).Warn("bad request body")
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	if req.Thresholds == nil {
		req.Thresholds = &th
	}
	res, err := resolver.New(*req.Thresholds, reqLog).Resolve(req.Query, req.Candidates)
	if err != nil {
		reqLog.WithField("error", err.Error()).Warn("resolve rejected")
		writeError(w, statusFor(err), err)
		return
	}
	reqLog.WithField("candidates", len(req.Candidates)).Info("resolve finished")
	writeJSON(w, http.StatusOK, searchResponse{Query: req.Query, Outcome: processor.Outcome(res), Result: res})
}

func statusFor(err error) int {
	var netErr *wikipedia.NetworkError
	var retErr *wikipedia.RetrievalError
	switch {
	case errors.Is(err, resolver.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &netErr), errors.As(err, &retErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
