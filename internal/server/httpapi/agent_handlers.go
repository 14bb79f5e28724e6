package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	wire "github.com/dmitrijs2005/meggy/internal/client/models"
	"github.com/dmitrijs2005/meggy/internal/server/services"
)

func (s *Server) handleListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := s.agents.List(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]wire.Agent, 0, len(agents))
	for i := range agents {
		out = append(out, agentOut(&agents[i]))
	}
	if p, ok := paginate(w, r, out); ok {
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) handleCreateAgent(w http.ResponseWriter, r *http.Request) {
	var f services.AgentFields
	if !decodeJSON(w, r, &f) {
		return
	}

	a, err := s.agents.Create(r.Context(), currentUser(r).ID, f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, agentOut(a))
}

func (s *Server) handleDefaultAgent(w http.ResponseWriter, r *http.Request) {
	a, err := s.agents.Default(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agentOut(a))
}

func (s *Server) handleGetAgent(w http.ResponseWriter, r *http.Request) {
	a, err := s.agents.Get(r.Context(), currentUser(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agentOut(a))
}

func (s *Server) handleUpdateAgent(w http.ResponseWriter, r *http.Request) {
	var f services.AgentFields
	if !decodeJSON(w, r, &f) {
		return
	}

	a, err := s.agents.Update(r.Context(), currentUser(r).ID, chi.URLParam(r, "id"), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, agentOut(a))
}

func (s *Server) handleDeleteAgent(w http.ResponseWriter, r *http.Request) {
	if err := s.agents.Delete(r.Context(), currentUser(r).ID, chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
