// Package api exposes the reservation manager over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"rtrsv/internal/rsv"
)

// Server routes HTTP requests to a reservation manager.
type Server struct {
	m      *rsv.Manager
	log    *slog.Logger
	router *mux.Router
}

// NewServer creates the server and registers its routes.
func NewServer(m *rsv.Manager, log *slog.Logger) *Server {
	s := &Server{m: m, log: log, router: mux.NewRouter()}

	s.router.HandleFunc("/reservations", s.list).Methods(http.MethodGet)
	s.router.HandleFunc("/reservations", s.register).Methods(http.MethodPost)
	s.router.HandleFunc("/reservations/{id:[0-9]+}", s.get).Methods(http.MethodGet)
	s.router.HandleFunc("/reservations/{id:[0-9]+}", s.cancel).Methods(http.MethodDelete)
	s.router.HandleFunc("/reservations/{id:[0-9]+}/wait", s.wait).Methods(http.MethodPost)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// RegisterRequest is the body of POST /reservations. Durations use Go
// syntax, e.g. "2ms".
type RegisterRequest struct {
	TaskID uint64 `json:"task_id"`
	Budget string `json:"budget"`
	Period string `json:"period"`
}

// WaitResponse is the body of a successful POST /reservations/{id}/wait.
// Sequence is the boundary observed at wake-up, reported even when the
// reservation is cancelled before the reply is written.
type WaitResponse struct {
	TaskID   rsv.TaskID `json:"task_id"`
	Sequence uint64     `json:"sequence"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, fmt.Errorf("decode request: %v: %w", err, rsv.ErrInvalidArgument))
		return
	}
	budget, err := time.ParseDuration(req.Budget)
	if err != nil {
		s.fail(w, fmt.Errorf("budget: %v: %w", err, rsv.ErrInvalidArgument))
		return
	}
	period, err := time.ParseDuration(req.Period)
	if err != nil {
		s.fail(w, fmt.Errorf("period: %v: %w", err, rsv.ErrInvalidArgument))
		return
	}
	// no caller identity over HTTP
	if req.TaskID == uint64(rsv.Self) {
		s.fail(w, fmt.Errorf("task_id required: %w", rsv.ErrInvalidArgument))
		return
	}

	id := rsv.TaskID(req.TaskID)
	if err := s.m.Register(id, budget, period); err != nil {
		s.fail(w, err)
		return
	}

	snap, _ := s.m.Lookup(id)
	s.reply(w, http.StatusCreated, snap)
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	s.reply(w, http.StatusOK, s.m.Reservations())
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	snap, ok := s.m.Lookup(id)
	if !ok {
		s.fail(w, fmt.Errorf("task %d has no reservation: %w", id, rsv.ErrNotFound))
		return
	}
	s.reply(w, http.StatusOK, snap)
}

func (s *Server) cancel(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if err := s.m.Cancel(id); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// wait holds the request until the task's next period boundary. A client
// that goes away interrupts the wait.
func (s *Server) wait(w http.ResponseWriter, r *http.Request) {
	id, err := taskID(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	seq, err := s.m.WaitNext(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.reply(w, http.StatusOK, WaitResponse{TaskID: id, Sequence: seq})
}

func taskID(r *http.Request) (rsv.TaskID, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("task id %q: %w", mux.Vars(r)["id"], rsv.ErrInvalidArgument)
	}
	return rsv.TaskID(id), nil
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, rsv.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, rsv.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, rsv.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, rsv.ErrResourceExhausted), errors.Is(err, rsv.ErrClosed):
		return http.StatusServiceUnavailable
	case errors.Is(err, rsv.ErrInterrupted):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	code := statusOf(err)
	if code == http.StatusInternalServerError {
		s.log.Error("request failed", "err", err)
	}
	s.reply(w, code, errorResponse{Error: err.Error()})
}

func (s *Server) reply(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Warn("write response", "err", err)
	}
}
