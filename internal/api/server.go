// Package api serves the remote tool endpoints over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"ytbridge/internal/config"
	"ytbridge/internal/deps"
	"ytbridge/internal/download"
	"ytbridge/internal/history"
	"ytbridge/internal/logging"
	"ytbridge/internal/services"
	"ytbridge/internal/subtitles"
)

// DownloadService is the download workflow surface the server invokes.
type DownloadService interface {
	Run(ctx context.Context, req download.Request) (string, error)
	RunAudio(ctx context.Context, url string) (string, error)
}

// SubtitleService is the subtitle surface the server invokes.
type SubtitleService interface {
	List(ctx context.Context, url string) (string, error)
	Download(ctx context.Context, url, language string) (subtitles.Download, error)
	Transcript(ctx context.Context, url, language string) (string, error)
}

// Server exposes the tool endpoints over HTTP with optional bearer auth.
type Server struct {
	bind      string
	cfg       *config.Config
	logger    *slog.Logger
	downloads DownloadService
	subs      SubtitleService
	store     *history.Store

	listener net.Listener
	server   *http.Server
}

// NewServer wires the tool services into an HTTP server. The history store
// may be nil when history is disabled.
func NewServer(cfg *config.Config, downloads DownloadService, subs SubtitleService, store *history.Store, logger *slog.Logger) *Server {
	srv := &Server{
		bind:      strings.TrimSpace(cfg.Paths.APIBind),
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "api-server"),
		downloads: downloads,
		subs:      subs,
		store:     store,
	}

	token := cfg.Paths.APIToken
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", srv.handleHealth)
	mux.HandleFunc("/api/history", authMiddleware(token, srv.handleHistory))
	mux.HandleFunc("/api/tools/download_video", authMiddleware(token, srv.handleDownloadVideo))
	mux.HandleFunc("/api/tools/download_audio", authMiddleware(token, srv.handleDownloadAudio))
	mux.HandleFunc("/api/tools/list_subtitles", authMiddleware(token, srv.handleListSubtitles))
	mux.HandleFunc("/api/tools/download_subtitles", authMiddleware(token, srv.handleDownloadSubtitles))
	mux.HandleFunc("/api/tools/download_transcript", authMiddleware(token, srv.handleTranscript))

	srv.server = &http.Server{
		Handler:           srv.withRequestID(mux),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Handler returns the configured HTTP handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start begins serving on the configured bind address. Serving stops when
// ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s == nil || s.server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr returns the bound listener address, or empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := services.WithRequestID(r.Context(), uuid.NewString())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	statuses := deps.CheckBinaries(deps.Requirements(s.cfg))
	payload := HealthResponse{Status: "ok"}
	for _, status := range statuses {
		payload.Dependencies = append(payload.Dependencies, DependencyStatus{
			Name:      status.Name,
			Available: status.Available,
			Detail:    status.Detail,
		})
		if !status.Available && !status.Optional {
			payload.Status = "degraded"
		}
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		s.writeJSON(w, http.StatusOK, HistoryResponse{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	records, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	payload := HistoryResponse{}
	for _, record := range records {
		payload.Records = append(payload.Records, HistoryRecord{
			ID:          record.ID,
			Kind:        string(record.Kind),
			URL:         record.URL,
			Destination: record.Destination,
			Outcome:     string(record.Outcome),
			Message:     record.Message,
			CreatedAt:   record.CreatedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleDownloadVideo(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeToolRequest(w, r)
	if !ok {
		return
	}
	ctx := services.WithTool(r.Context(), "download_video")
	result, err := s.downloads.Run(ctx, download.Request{
		URL:        req.URL,
		Resolution: req.Resolution,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Chapter:    req.Chapter,
	})
	s.record(ctx, history.KindVideo, req.URL, result, err)
	if err != nil {
		s.writeToolError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ToolResponse{Result: result})
}

func (s *Server) handleDownloadAudio(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeToolRequest(w, r)
	if !ok {
		return
	}
	ctx := services.WithTool(r.Context(), "download_audio")
	result, err := s.downloads.RunAudio(ctx, req.URL)
	s.record(ctx, history.KindAudio, req.URL, result, err)
	if err != nil {
		s.writeToolError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ToolResponse{Result: result})
}

func (s *Server) handleListSubtitles(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeToolRequest(w, r)
	if !ok {
		return
	}
	listing, err := s.subs.List(services.WithTool(r.Context(), "list_subtitles"), req.URL)
	if err != nil {
		s.writeToolError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ToolResponse{Result: listing})
}

func (s *Server) handleDownloadSubtitles(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeToolRequest(w, r)
	if !ok {
		return
	}
	ctx := services.WithTool(r.Context(), "download_subtitles")
	out, err := s.subs.Download(ctx, req.URL, req.Language)
	s.record(ctx, history.KindSubtitles, req.URL, strings.Join(out.Paths, ", "), err)
	if err != nil {
		s.writeToolError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ToolResponse{Result: out.Content, Files: out.Paths})
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeToolRequest(w, r)
	if !ok {
		return
	}
	ctx := services.WithTool(r.Context(), "download_transcript")
	transcript, err := s.subs.Transcript(ctx, req.URL, req.Language)
	s.record(ctx, history.KindTranscript, req.URL, "", err)
	if err != nil {
		s.writeToolError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ToolResponse{Result: transcript})
}

func (s *Server) decodeToolRequest(w http.ResponseWriter, r *http.Request) (ToolRequest, bool) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return ToolRequest{}, false
	}
	var req ToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return ToolRequest{}, false
	}
	return req, true
}

// record persists a history entry. History is best effort and never affects
// the response.
func (s *Server) record(ctx context.Context, kind history.Kind, url, message string, toolErr error) {
	if s.store == nil {
		return
	}
	record := history.Record{
		Kind:        kind,
		URL:         url,
		Destination: s.cfg.Paths.DownloadsDir,
		Outcome:     history.OutcomeSuccess,
		Message:     message,
	}
	if toolErr != nil {
		record.Outcome = history.OutcomeFailure
		record.Message = services.Message(toolErr)
	}
	if _, err := s.store.Add(ctx, record); err != nil {
		s.logger.Warn("failed to record history entry", logging.Error(err))
	}
}

func (s *Server) writeToolError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusForError(err), ErrorResponse{Error: services.Message(err)})
}

// statusForError maps service sentinels onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNoOutput):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDownloadFailed),
		errors.Is(err, services.ErrMetadataUnavailable),
		errors.Is(err, services.ErrExternalTool):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: message})
}
