package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"examgame/internal/domain"
	"examgame/internal/storage"
	"examgame/internal/sync"
)

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type importResponse struct {
	Status   string `json:"status"`
	Imported int    `json:"imported"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) handleListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.db.ListTopics()
	if err != nil {
		slog.Error("Error listing topics", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list topics"})
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

func (s *Server) handleCreateTopic(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	topic, err := s.db.CreateTopic(req.Name)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateTopic) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Topic already exists"})
			return
		}
		slog.Error("Error creating topic", "name", req.Name, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to create topic"})
		return
	}
	writeJSON(w, http.StatusCreated, topic)
}

func (s *Server) handleImportQuestions(w http.ResponseWriter, r *http.Request) {
	topic := r.PathValue("topic")

	var doc domain.ImportDocument
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	imported, err := s.db.ImportQuestions(topic, doc)
	if err != nil {
		if errors.Is(err, storage.ErrTopicNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "Topic not found"})
			return
		}
		// The whole import was rolled back; report the underlying failure.
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, importResponse{Status: "success", Imported: imported})
}

func (s *Server) handleTopicForEditing(w http.ResponseWriter, r *http.Request) {
	tree, err := s.db.TopicTree(r.PathValue("topic"))
	if err != nil {
		slog.Error("Error building topic tree", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load topic"})
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (s *Server) handleTopicQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := s.db.FlatQuestions(r.PathValue("topic"))
	if err != nil {
		slog.Error("Error loading questions", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load questions"})
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	state, err := s.db.GameState()
	if err != nil {
		slog.Error("Error reading game state", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to read game state"})
		return
	}
	if state == nil {
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSetGameState(w http.ResponseWriter, r *http.Request) {
	var state domain.GameState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if err := s.db.SetGameState(state); err != nil {
		slog.Error("Error writing game state", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to write game state"})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}

type sourceResponse struct {
	ID          int64      `json:"id"`
	Path        string     `json:"path"`
	Type        string     `json:"type"`
	LastScanned *time.Time `json:"last_scanned"`
}

func toSourceResponse(s storage.Source) sourceResponse {
	resp := sourceResponse{ID: s.ID, Path: s.Path, Type: s.Type}
	if s.LastScanned.Valid {
		t := s.LastScanned.Time
		resp.LastScanned = &t
	}
	return resp
}

func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := s.db.ListSources()
	if err != nil {
		slog.Error("Error listing sources", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list sources"})
		return
	}
	resp := make([]sourceResponse, 0, len(sources))
	for _, src := range sources {
		resp = append(resp, toSourceResponse(src))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddSource(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "path is required"})
		return
	}

	sourceType := DetectSourceType(req.Path)
	id, err := s.db.AddSource(req.Path, sourceType)
	if err != nil {
		slog.Error("Error adding source", "path", req.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to add source"})
		return
	}
	writeJSON(w, http.StatusCreated, sourceResponse{ID: id, Path: req.Path, Type: sourceType})
}

// handleSync runs reconciliation in the foreground so the caller sees the
// result of their own request.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if err := sync.Run(s.db, s.reposDir); err != nil {
		slog.Error("Error running sync", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "sync failed"})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}

// DetectSourceType classifies a source path as a git URL or a local directory.
func DetectSourceType(path string) string {
	if strings.HasSuffix(path, ".git") || strings.HasPrefix(path, "git@") || strings.HasPrefix(path, "https://") {
		return "git"
	}
	return "local"
}
