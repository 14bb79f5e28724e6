package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/meggy/internal/common"
)

const pageSize = 50

// page is the paginated list envelope.
type page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func detail(msg string) map[string]string { return map[string]string{"detail": msg} }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, detail("JSON parse error - "+err.Error()))
		return false
	}
	return true
}

// writeError maps service errors onto status codes and payloads.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *common.ValidationError
	var aerr *common.AuthError

	switch {
	case errors.As(err, &verr):
		if verr.Message != "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Message})
			return
		}
		writeJSON(w, http.StatusBadRequest, verr.Fields)
	case errors.As(err, &aerr):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": aerr.Msg})
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, detail("Not found."))
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, detail("A server error occurred."))
	}
}

// paginate slices items by the ?page= query parameter and fills the
// next/previous links. An out-of-range page is a 404, as in DRF.
func paginate[T any](w http.ResponseWriter, r *http.Request, items []T) (page[T], bool) {
	n := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			writeJSON(w, http.StatusNotFound, detail("Invalid page."))
			return page[T]{}, false
		}
		n = v
	}

	start := (n - 1) * pageSize
	if start > 0 && start >= len(items) {
		writeJSON(w, http.StatusNotFound, detail("Invalid page."))
		return page[T]{}, false
	}
	end := min(start+pageSize, len(items))

	p := page[T]{Count: len(items), Results: append(make([]T, 0, end-start), items[start:end]...)}
	if end < len(items) {
		next := pageURL(r, n+1)
		p.Next = &next
	}
	if n > 1 {
		prev := pageURL(r, n-1)
		p.Previous = &prev
	}
	return p, true
}

func pageURL(r *http.Request, n int) string {
	q := r.URL.Query()
	if n == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(n))
	}
	u := url.URL{Path: r.URL.Path, RawQuery: q.Encode()}
	return absoluteURL(r, u.RequestURI())
}

func absoluteURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, r.Host, path)
}
