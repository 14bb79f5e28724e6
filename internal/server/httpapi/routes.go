package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/", s.handleRoot)

		r.Post("/auth/register/", s.handleRegister)
		r.Post("/auth/login/", s.handleLogin)
		r.Post("/auth/refresh/", s.handleRefresh)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Post("/auth/logout/", s.handleLogout)
			r.Get("/users/me/", s.handleMe)

			r.Route("/agents", func(r chi.Router) {
				r.Get("/", s.handleListAgents)
				r.Post("/", s.handleCreateAgent)
				r.Get("/default/", s.handleDefaultAgent)
				r.Get("/{id}/", s.handleGetAgent)
				r.Patch("/{id}/", s.handleUpdateAgent)
				r.Put("/{id}/", s.handleUpdateAgent)
				r.Delete("/{id}/", s.handleDeleteAgent)
			})

			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", s.handleListConversations)
				r.Post("/", s.handleCreateConversation)
				r.Get("/{id}/", s.handleGetConversation)
				r.Patch("/{id}/", s.handleUpdateConversation)
				r.Put("/{id}/", s.handleUpdateConversation)
				r.Delete("/{id}/", s.handleDeleteConversation)
				r.Post("/{id}/send_message/", s.handleSendMessage)
			})

			r.Get("/messages/", s.handleListMessages)
			r.Get("/messages/{id}/", s.handleGetMessage)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, detail("Not found."))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, detail("Method \""+r.Method+"\" not allowed."))
	})
	return r
}

// handleRoot lists the resource collections, like a browsable API root.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	base := absoluteURL(r, "/api/")
	writeJSON(w, http.StatusOK, map[string]string{
		"users":         base + "users/",
		"agents":        base + "agents/",
		"conversations": base + "conversations/",
		"messages":      base + "messages/",
	})
}
