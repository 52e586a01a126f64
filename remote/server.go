// Package remote exposes playback control over HTTP, e.g. for a foot pedal or a phone on the
// same network. It is a second input listener next to the terminal UI.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/gorilla/mux"
	"github.com/robmorgan/metronome/control"
	"github.com/robmorgan/metronome/logger"
	"github.com/robmorgan/metronome/output"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 2 * time.Second

// Status is the JSON document returned by every endpoint.
type Status struct {
	Session string `json:"session"`
	BPM     int    `json:"bpm"`
	Ramping bool   `json:"ramping"`
	Stopped bool   `json:"stopped"`

	// Beat is the index of the last beat played, absent before the first one
	Beat   *uint64 `json:"beat,omitempty"`
	Played uint64  `json:"played"`
	Muted  uint64  `json:"muted"`
	Chord  string  `json:"chord,omitempty"`
	Tempo  string  `json:"tempo,omitempty"`
}

// Server serves the control endpoints for one playback session.
type Server struct {
	session string
	state   *control.State
	latest  *output.Latest
	logger  *logrus.Entry

	// debounced collapses a burst of tempo changes into one log line
	debounced func(f func())

	handler http.Handler
}

// NewServer creates a server. latest supplies the beat shown by /status and may be nil.
func NewServer(session string, state *control.State, latest *output.Latest) *Server {
	s := &Server{
		session:   session,
		state:     state,
		latest:    latest,
		logger:    logger.GetProjectLogger().WithField("session", session),
		debounced: debounce.New(500 * time.Millisecond),
	}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	router.HandleFunc("/tempo/increase", s.handleCommand(control.Increase)).Methods(http.MethodPost)
	router.HandleFunc("/tempo/decrease", s.handleCommand(control.Decrease)).Methods(http.MethodPost)
	router.HandleFunc("/stop", s.handleCommand(control.Stop)).Methods(http.MethodPost)

	s.handler = cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(router)

	return s
}

// Handler returns the HTTP handler, with CORS applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is cancelled or playback stops.
func (s *Server) ListenAndServe(ctx context.Context, addr string, wg *sync.WaitGroup) error {
	defer wg.Done()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		select {
		case <-ctx.Done():
		case <-s.state.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.WithError(err).Warn("HTTP control shutdown")
		}
	}()

	s.logger.WithField("addr", addr).Info("HTTP control listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.writeStatus(w, http.StatusOK)
}

// handleCommand applies cmd. A rejected command, e.g. an adjustment while ramping, answers
// 409 with the unchanged status.
func (s *Server) handleCommand(cmd control.Command) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.state.Dispatch(cmd) {
			s.writeStatus(w, http.StatusConflict)
			return
		}

		if cmd == control.Stop {
			s.logger.Info("playback stopped over HTTP")
		} else {
			s.debounced(func() {
				s.logger.WithField("bpm", s.state.BPM()).Info("tempo changed over HTTP")
			})
		}
		s.writeStatus(w, http.StatusOK)
	}
}

func (s *Server) status() Status {
	st := Status{
		Session: s.session,
		BPM:     s.state.BPM(),
		Ramping: s.state.Ramping(),
		Stopped: s.state.Stopped(),
	}
	if s.latest == nil {
		return st
	}
	if ev, found := s.latest.Last(); found {
		beat := ev.Beat
		st.Beat = &beat
		st.Chord = ev.Chord
		st.Tempo = ev.Tempo.String()
	}
	st.Played, st.Muted = s.latest.Counts()
	return st
}

func (s *Server) writeStatus(w http.ResponseWriter, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(s.status()); err != nil {
		s.logger.WithError(err).Warn("writing status response")
	}
}
