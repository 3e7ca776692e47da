package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"marketing_strategy_assistant/generator"
	"marketing_strategy_assistant/render"
)

const maxBodyBytes = 64 << 10

type Server struct {
	llm     generator.LLMClient
	timeout time.Duration
	logger  *zap.Logger
	store   *sessionStore
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*generator.Session
}

func newStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*generator.Session)}
}

func (s *sessionStore) set(id string, sess *generator.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
}

func (s *sessionStore) get(id string) (*generator.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// New builds a server. timeout bounds each model call; zero means no deadline.
func New(llm generator.LLMClient, timeout time.Duration, logger *zap.Logger) (*Server, error) {
	if llm == nil {
		return nil, errors.New("llm client required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		llm:     llm,
		timeout: timeout,
		logger:  logger,
		store:   newStore(),
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", s.handleSessionCreate)
	mux.HandleFunc("GET /api/sessions/{id}", s.withSession(s.handleSessionGet))
	mux.HandleFunc("PUT /api/sessions/{id}/brief", s.withSession(s.handleBrief))
	mux.HandleFunc("POST /api/sessions/{id}/generate", s.withSession(s.handleGenerate))
	mux.HandleFunc("POST /api/sessions/{id}/reset", s.withSession(s.handleReset))
	mux.HandleFunc("GET /api/sessions/{id}/sections/{name}", s.withSession(s.handleSection))
	mux.HandleFunc("GET /api/sessions/{id}/strategy.html", s.withSession(s.handleStrategyHTML))
	return logMiddleware(s.logger, mux)
}

// --- Handlers ---

type briefReq struct {
	Brief *string `json:"brief"`
}

type notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type sessionResp struct {
	SessionID   string                `json:"session_id"`
	Brief       string                `json:"brief"`
	Eligibility generator.Eligibility `json:"eligibility"`
	State       generator.State       `json:"state"`
	Notice      *notice               `json:"notice,omitempty"`
}

func newSessionResp(sess *generator.Session, state generator.State) sessionResp {
	brief := sess.Brief()
	return sessionResp{
		SessionID:   sess.ID,
		Brief:       brief,
		Eligibility: generator.ValidateBrief(brief),
		State:       state,
	}
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	sess, err := generator.NewSession(id, s.llm, s.logger)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	s.store.set(id, sess)
	writeJSON(w, http.StatusCreated, newSessionResp(sess, sess.State()))
}

func (s *Server) withSession(h func(http.ResponseWriter, *http.Request, *generator.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.store.get(r.PathValue("id"))
		if !ok {
			writeProblem(w, http.StatusNotFound, "Session not found", "")
			return
		}
		h(w, r, sess)
	}
}

func (s *Server) handleSessionGet(w http.ResponseWriter, _ *http.Request, sess *generator.Session) {
	writeJSON(w, http.StatusOK, newSessionResp(sess, sess.State()))
}

func (s *Server) handleBrief(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	var req briefReq
	if err := decodeBody(r, &req); err != nil || req.Brief == nil {
		writeProblem(w, http.StatusBadRequest, "Bad request", "body must be a JSON object with a brief")
		return
	}
	sess.SetBrief(*req.Brief)
	writeJSON(w, http.StatusOK, newSessionResp(sess, sess.State()))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	var req briefReq
	if err := decodeBody(r, &req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad request", err.Error())
		return
	}
	brief := sess.Brief()
	if req.Brief != nil {
		brief = *req.Brief
	}

	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	state, err := sess.Submit(ctx, brief)

	var verr *generator.ValidationError
	switch {
	case errors.Is(err, generator.ErrInFlight):
		writeProblem(w, http.StatusConflict, "Generation in progress", err.Error())
	case errors.As(err, &verr):
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid brief", verr.Reason)
	case errors.Is(err, generator.ErrSuperseded):
		writeProblem(w, http.StatusConflict, "Generation superseded", err.Error())
	case err != nil:
		resp := newSessionResp(sess, state)
		resp.Notice = &notice{Kind: "error", Message: "Generation failed. Please try again."}
		writeJSON(w, http.StatusBadGateway, resp)
	default:
		resp := newSessionResp(sess, state)
		resp.Notice = &notice{Kind: "success", Message: "Marketing strategy generated!"}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request, sess *generator.Session) {
	state := sess.Reset()
	writeJSON(w, http.StatusOK, newSessionResp(sess, state))
}

// handleSection serves one field as plain text, the source for a copy-to-clipboard button.
func (s *Server) handleSection(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	state := sess.State()
	if state.Strategy == nil {
		writeProblem(w, http.StatusConflict, "No strategy", "generate a strategy first")
		return
	}
	name := r.PathValue("name")
	text, err := state.Strategy.Section(name)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Unknown section", err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Notice", generator.SectionTitle(name)+" copied to clipboard!")
	_, _ = io.WriteString(w, text)
}

func (s *Server) handleStrategyHTML(w http.ResponseWriter, _ *http.Request, sess *generator.Session) {
	state := sess.State()
	if state.Strategy == nil {
		writeProblem(w, http.StatusConflict, "No strategy", "generate a strategy first")
		return
	}
	html, err := render.HTML(*state.Strategy)
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "Internal server error", err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

// --- Helpers ---

// decodeBody accepts an empty body as an empty object.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type problem struct {
	Title  string `json:"title,omitempty"`
	Status int    `json:"status,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem{Title: title, Status: status, Detail: detail})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}
