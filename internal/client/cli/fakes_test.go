package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/meggy/internal/client/client"
	"github.com/dmitrijs2005/meggy/internal/client/config"
	"github.com/dmitrijs2005/meggy/internal/client/models"
)

// fakeAuth is a scripted services.AuthService.
type fakeAuth struct {
	loggedIn bool

	LastLoginEmail    string
	LastLoginPassword string
	LoginErr          error

	LastRegisterEmail string
	LastRegisterName  string
	RegisterErr       error

	LogoutCalls int
	LogoutErr   error

	RefreshCalls int
	RefreshErr   error

	User      *models.User
	UserErr   error
	Cached    *models.User
	Expiry    time.Time
	PingErr   error
	PingCalls int
}

func (f *fakeAuth) Register(_ context.Context, email, name, password string) (*models.AuthResponse, error) {
	f.LastRegisterEmail, f.LastRegisterName = email, name
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	f.loggedIn = true
	return &models.AuthResponse{User: models.User{ID: "u1", Email: email, Name: name}}, nil
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.AuthResponse, error) {
	f.LastLoginEmail, f.LastLoginPassword = email, password
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	f.loggedIn = true
	return &models.AuthResponse{User: models.User{ID: "u1", Email: email, Name: "Ann"}}, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.LogoutCalls++
	if f.LogoutErr != nil {
		return f.LogoutErr
	}
	f.loggedIn = false
	return nil
}

func (f *fakeAuth) RefreshAccessToken(context.Context) (string, error) {
	f.RefreshCalls++
	if f.RefreshErr != nil {
		return "", f.RefreshErr
	}
	f.loggedIn = true
	return "acc", nil
}

func (f *fakeAuth) IsAuthenticated(context.Context) bool { return f.loggedIn }

func (f *fakeAuth) CurrentUser(context.Context) (*models.User, error) { return f.User, f.UserErr }

func (f *fakeAuth) CachedUser(context.Context) (*models.User, error) { return f.Cached, nil }

func (f *fakeAuth) AccessTokenExpiry(context.Context) (time.Time, bool) {
	return f.Expiry, !f.Expiry.IsZero()
}

func (f *fakeAuth) Ping(context.Context) error {
	f.PingCalls++
	return f.PingErr
}

// fakeAgentSvc is an in-memory services.AgentService.
type fakeAgentSvc struct {
	agents     []models.Agent
	LastCreate models.CreateAgentRequest
	LastUpdate models.UpdateAgentRequest
	DeleteErr  error
	ListErr    error
}

func (f *fakeAgentSvc) List(context.Context) ([]models.Agent, error) {
	return append([]models.Agent(nil), f.agents...), f.ListErr
}

func (f *fakeAgentSvc) Get(_ context.Context, id string) (*models.Agent, error) {
	for _, a := range f.agents {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, &client.APIError{StatusCode: 404, Message: "Not found."}
}

func (f *fakeAgentSvc) Default(context.Context) (*models.Agent, error) {
	return &models.Agent{ID: "agent-default", Name: "Bruno", IsDefault: true}, nil
}

func (f *fakeAgentSvc) Create(_ context.Context, req models.CreateAgentRequest) (*models.Agent, error) {
	f.LastCreate = req
	a := models.Agent{ID: "agent-new", Name: req.Name}
	f.agents = append(f.agents, a)
	return &a, nil
}

func (f *fakeAgentSvc) Update(_ context.Context, id string, req models.UpdateAgentRequest) (*models.Agent, error) {
	f.LastUpdate = req
	name := id
	if req.Name != nil {
		name = *req.Name
	}
	return &models.Agent{ID: id, Name: name}, nil
}

func (f *fakeAgentSvc) Delete(context.Context, string) error { return f.DeleteErr }

// fakeConvSvc is a scripted services.ConversationService.
type fakeConvSvc struct {
	LastCreate  models.CreateConversationRequest
	LastSendID  string
	LastContent string
	SendErr     error
	messages    []models.Message
}

func (f *fakeConvSvc) List(context.Context) ([]models.Conversation, error) {
	n := 2
	return []models.Conversation{{
		ID: "conv-1", Title: "Chat with Meggy", MessageCount: &n,
		LastMessage: &models.MessagePreview{Role: models.RoleAssistant, Content: "Hello\nthere"},
	}}, nil
}

func (f *fakeConvSvc) Get(_ context.Context, id string) (*models.Conversation, error) {
	return &models.Conversation{ID: id, Title: "Chat with Meggy"}, nil
}

func (f *fakeConvSvc) Create(_ context.Context, req models.CreateConversationRequest) (*models.Conversation, error) {
	f.LastCreate = req
	return &models.Conversation{ID: "conv-new", Agent: req.Agent, Title: "Chat with Meggy"}, nil
}

func (f *fakeConvSvc) Update(_ context.Context, id string, req models.UpdateConversationRequest) (*models.Conversation, error) {
	return &models.Conversation{ID: id, Title: *req.Title}, nil
}

func (f *fakeConvSvc) Delete(context.Context, string) error { return nil }

func (f *fakeConvSvc) SendMessage(_ context.Context, id string, req models.SendMessageRequest) (*models.SendMessageResponse, error) {
	f.LastSendID, f.LastContent = id, req.Content
	if f.SendErr != nil {
		return nil, f.SendErr
	}
	user := models.Message{Role: models.RoleUser, Content: req.Content}
	reply := models.Message{Role: models.RoleAssistant, Content: "Hello from Bruno"}
	f.messages = append(f.messages, user, reply)
	return &models.SendMessageResponse{UserMessage: user, AssistantMessage: reply}, nil
}

func (f *fakeConvSvc) Messages(context.Context, string) ([]models.Message, error) {
	return append([]models.Message(nil), f.messages...), nil
}

type harness struct {
	app    *App
	auth   *fakeAuth
	agents *fakeAgentSvc
	convs  *fakeConvSvc
	out    *bytes.Buffer
}

func newHarness(t *testing.T, input string) *harness {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	h := &harness{
		auth:   &fakeAuth{},
		agents: &fakeAgentSvc{},
		convs:  &fakeConvSvc{},
		out:    &bytes.Buffer{},
	}
	h.app = newApp(cfg, nil, h.auth, h.agents, h.convs)
	h.app.out = h.out
	h.app.reader = bufio.NewReader(strings.NewReader(input))
	return h
}

// stubInputs answers text prompts in order and the password prompt with pw.
func stubInputs(t *testing.T, answers []string, pw string) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline = origST, origGP, origML
	})

	next := func() string {
		if len(answers) == 0 {
			return ""
		}
		a := answers[0]
		answers = answers[1:]
		return a
	}
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return next(), nil }
	getMultiline = func(*bufio.Reader, string, io.Writer) (string, error) { return next(), nil }
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
}
