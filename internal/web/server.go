package web

import (
	"net/http"

	"github.com/example/quizkit/internal/auth"
	"github.com/example/quizkit/internal/database"
	"github.com/gorilla/mux"
)

// Quotas enforced at creation time
const (
	MaxKitsPerUser  = 5
	MaxNotesPerUser = 5
)

// searchPageSize is how many results a search endpoint returns per page
const searchPageSize = 10

// Server holds the dependencies for the HTTP API.
type Server struct {
	router *mux.Router
	auth   *auth.Service

	users     *database.UserRepository
	kits      *database.KitRepository
	notes     *database.NoteRepository
	progress  *database.ProgressRepository
	favorites *database.FavoriteRepository
}

// NewServer creates and configures a new server.
func NewServer(authService *auth.Service) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		auth:      authService,
		users:     database.NewUserRepository(),
		kits:      database.NewKitRepository(),
		notes:     database.NewNoteRepository(),
		progress:  database.NewProgressRepository(),
		favorites: database.NewFavoriteRepository(),
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server. Mutating routes go
// through requireCSRF, which consumes a single-use token; progress
// routes match the original surface and need only a session.
func (s *Server) routes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Auth
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/auth/csrf-token", s.requireSession(s.handleCSRFToken)).Methods(http.MethodGet)

	// Kits
	api.HandleFunc("/kits", s.requireCSRF(s.handleAddKit)).Methods(http.MethodPost)
	api.HandleFunc("/kits", s.handleKitsByUser).Methods(http.MethodGet)
	api.HandleFunc("/kits/search", s.handleSearchKits).Methods(http.MethodGet)
	api.HandleFunc("/kits/import", s.requireCSRF(s.handleImportKit)).Methods(http.MethodPost)
	api.HandleFunc("/kits/{id}", s.handleGetKit).Methods(http.MethodGet)
	api.HandleFunc("/kits/{id}", s.requireCSRF(s.handleEditKit)).Methods(http.MethodPut)
	api.HandleFunc("/kits/{id}", s.requireCSRF(s.handleDeleteKit)).Methods(http.MethodDelete)
	api.HandleFunc("/kits/{id}/with-progress", s.requireSession(s.handleGetKitWithProgress)).Methods(http.MethodGet)
	api.HandleFunc("/kits/{id}/exam", s.handleStartExam).Methods(http.MethodGet)
	api.HandleFunc("/kits/{id}/learn", s.requireSession(s.handleStartLearn)).Methods(http.MethodGet)

	// Notes
	api.HandleFunc("/notes", s.requireCSRF(s.handleAddNote)).Methods(http.MethodPost)
	api.HandleFunc("/notes/search", s.handleSearchNotes).Methods(http.MethodGet)
	api.HandleFunc("/notes/{id}", s.handleGetNote).Methods(http.MethodGet)
	api.HandleFunc("/notes/{id}", s.requireCSRF(s.handleEditNote)).Methods(http.MethodPut)
	api.HandleFunc("/notes/{id}", s.requireCSRF(s.handleDeleteNote)).Methods(http.MethodDelete)

	// Progress
	api.HandleFunc("/progress", s.requireSession(s.handleGetProgress)).Methods(http.MethodGet)
	api.HandleFunc("/progress", s.requireSession(s.handleUpsertProgress)).Methods(http.MethodPut)
	api.HandleFunc("/progress", s.requireSession(s.handleResetProgress)).Methods(http.MethodDelete)

	// Favorites
	api.HandleFunc("/favorites/kit", s.requireSession(s.handleFavoriteKit)).Methods(http.MethodPost)
	api.HandleFunc("/favorites/note", s.requireSession(s.handleFavoriteNote)).Methods(http.MethodPost)

	// Users and page loaders
	api.HandleFunc("/user", s.requireCSRF(s.handleEditUser)).Methods(http.MethodPut)
	api.HandleFunc("/users/search", s.handleSearchUsers).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", s.requireSession(s.handleDashboard)).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.requireSession(s.handleSettings)).Methods(http.MethodGet)
}
