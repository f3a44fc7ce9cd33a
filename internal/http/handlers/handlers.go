package handlers

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/goal-light/internal/history"
	"github.com/preston-bernstein/goal-light/internal/poller"
)

// Journal is the read side of the history log.
type Journal interface {
	Entries() []history.Entry
	Lines() []string
	LastCall() time.Time
	FormatTime(t time.Time) string
}

// StatusResponse is the JSON form of the status page.
type StatusResponse struct {
	Team     string         `json:"team"`
	LastCall *time.Time     `json:"lastCall,omitempty"`
	History  []HistoryLine  `json:"history"`
	Poller   *poller.Status `json:"poller,omitempty"`
}

// HistoryLine is one history entry with its display stamp.
type HistoryLine struct {
	At      time.Time `json:"at"`
	Stamp   string    `json:"stamp"`
	Message string    `json:"message"`
}

// Handler serves the read-only status endpoints.
type Handler struct {
	team     string
	journal  Journal
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. journal and statusFn may be nil.
func NewHandler(team string, journal Journal, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		team:     team,
		journal:  journal,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Index renders the plain-text status page.
func (h *Handler) Index(w nethttp.ResponseWriter, r *nethttp.Request) {
	var b strings.Builder
	fmt.Fprintf(&b, "Running for %s\n", h.team)
	fmt.Fprintf(&b, "Last call: %s\n", h.lastCallText())
	if h.journal != nil {
		b.WriteString(strings.Join(h.journal.Lines(), "\n"))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(nethttp.StatusOK)
	if _, err := w.Write([]byte(b.String())); err != nil {
		loggerFromContext(r, h.logger).Warn("failed to write status page", "err", err)
	}
}

// Status returns the same information as Index in JSON.
func (h *Handler) Status(w nethttp.ResponseWriter, r *nethttp.Request) {
	resp := StatusResponse{Team: h.team, History: []HistoryLine{}}
	if h.journal != nil {
		if last := h.journal.LastCall(); !last.IsZero() {
			resp.LastCall = &last
		}
		for _, e := range h.journal.Entries() {
			resp.History = append(resp.History, HistoryLine{
				At:      e.At,
				Stamp:   h.journal.FormatTime(e.At),
				Message: e.Message,
			})
		}
	}
	if h.statusFn != nil {
		st := h.statusFn()
		resp.Poller = &st
	}
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports whether the poller has reached the API recently.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	st := h.statusFn()
	if st.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := st.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// NotFound answers unknown routes with a JSON error.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func (h *Handler) lastCallText() string {
	if h.journal == nil {
		return "never"
	}
	last := h.journal.LastCall()
	if last.IsZero() {
		return "never"
	}
	return h.journal.FormatTime(last)
}
