package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	wire "github.com/dmitrijs2005/meggy/internal/client/models"
)

type conversationInput struct {
	Agent *string `json:"agent"`
	Title *string `json:"title"`
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	rows, err := s.convs.List(r.Context(), currentUser(r).ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]wire.Conversation, 0, len(rows))
	for i := range rows {
		out = append(out, summaryOut(&rows[i]))
	}
	if p, ok := paginate(w, r, out); ok {
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	var in conversationInput
	if !decodeJSON(w, r, &in) {
		return
	}

	var agentID, title string
	if in.Agent != nil {
		agentID = *in.Agent
	}
	if in.Title != nil {
		title = *in.Title
	}

	c, err := s.convs.Create(r.Context(), currentUser(r).ID, agentID, title)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, detailOut(c))
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	c, err := s.convs.Get(r.Context(), currentUser(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detailOut(c))
}

func (s *Server) handleUpdateConversation(w http.ResponseWriter, r *http.Request) {
	var in conversationInput
	if !decodeJSON(w, r, &in) {
		return
	}

	c, err := s.convs.Update(r.Context(), currentUser(r).ID, chi.URLParam(r, "id"), in.Title, in.Agent)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detailOut(c))
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := s.convs.Delete(r.Context(), currentUser(r).ID, chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req wire.SendMessageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, reply, err := s.convs.SendMessage(r.Context(), currentUser(r).ID, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.SendMessageResponse{
		UserMessage:      messageOut(user),
		AssistantMessage: messageOut(reply),
	})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.convs.Messages(r.Context(), currentUser(r).ID, r.URL.Query().Get("conversation"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]wire.Message, 0, len(msgs))
	for i := range msgs {
		out = append(out, messageOut(&msgs[i]))
	}
	if p, ok := paginate(w, r, out); ok {
		writeJSON(w, http.StatusOK, p)
	}
}

func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	m, err := s.convs.GetMessage(r.Context(), currentUser(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageOut(m))
}
