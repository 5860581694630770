package web

import (
	"net/http"

	"examgame/internal/storage"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	db       *storage.DB
	reposDir string
	router   *http.ServeMux
}

// NewServer creates and configures a new server.
func NewServer(db *storage.DB, reposDir string) *Server {
	s := &Server{
		db:       db,
		reposDir: reposDir,
		router:   http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	s.router.HandleFunc("GET /api/topics", s.handleListTopics)
	s.router.HandleFunc("POST /api/topics", s.handleCreateTopic)

	s.router.HandleFunc("POST /api/questions/import/{topic}", s.handleImportQuestions)
	s.router.HandleFunc("GET /api/questions/for-editing/{topic}", s.handleTopicForEditing)
	s.router.HandleFunc("GET /api/questions/{topic}", s.handleTopicQuestions)

	s.router.HandleFunc("GET /api/game/state", s.handleGetGameState)
	s.router.HandleFunc("POST /api/game/state", s.handleSetGameState)

	// Source management routes
	s.router.HandleFunc("GET /api/sources", s.handleListSources)
	s.router.HandleFunc("POST /api/sources", s.handleAddSource)
	s.router.HandleFunc("POST /api/sync", s.handleSync)
}
