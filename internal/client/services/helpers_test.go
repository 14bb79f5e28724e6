package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/meggy/internal/client/client"
	"github.com/dmitrijs2005/meggy/internal/client/tokenstore"
)

// recorder is a scripted API: each path maps to a handler, and every call is
// logged as "METHOD path".
type recorder struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []string
	bodies map[string]map[string]any
}

func newRecorder() *recorder {
	return &recorder{routes: map[string]http.HandlerFunc{}, bodies: map[string]map[string]any{}}
}

func (r *recorder) on(method, path string, h http.HandlerFunc) {
	r.routes[method+" "+path] = h
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	key := req.Method + " " + req.URL.Path
	r.mu.Lock()
	r.calls = append(r.calls, key)
	if req.Body != nil {
		var body map[string]any
		if err := json.NewDecoder(req.Body).Decode(&body); err == nil {
			r.bodies[key] = body
		}
	}
	h, ok := r.routes[key]
	r.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found."}`))
		return
	}
	h(w, req)
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) Body(key string) map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bodies[key]
}

func respond(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if s, ok := body.(string); ok {
			_, _ = w.Write([]byte(s))
			return
		}
		_ = json.NewEncoder(w).Encode(body)
	}
}

func setup(t *testing.T, h http.Handler) (*client.Client, *tokenstore.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	store := tokenstore.NewMemoryStore()
	c, err := client.New(srv.URL+"/api", store)
	require.NoError(t, err)
	return c, store
}
