package httpapi

import (
	"net/http"

	wire "github.com/dmitrijs2005/meggy/internal/client/models"
	"github.com/dmitrijs2005/meggy/internal/server/models"
	"github.com/dmitrijs2005/meggy/internal/server/services"
)

func authResponse(u *models.User, pair *services.TokenPair) wire.AuthResponse {
	return wire.AuthResponse{
		User:         userOut(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req wire.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, pair, err := s.users.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, authResponse(user, pair))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req wire.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, pair, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse(user, pair))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req wire.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	access, err := s.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.RefreshResponse{AccessToken: access})
}

// handleLogout only acknowledges: tokens are stateless and the client drops
// them.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userOut(currentUser(r)))
}
