// Package httpx provides HTTP response utilities following RFC7807 problem details.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// ProblemDetail represents RFC7807 problem details. Entity and Field are
// extension members set for validation and referential integrity failures.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Entity string `json:"entity,omitempty"`
	Field  string `json:"field,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Problem sends an RFC7807 problem details response.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	writeProblem(w, ProblemDetail{
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

func writeProblem(w http.ResponseWriter, problem ProblemDetail) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(problem.Status)
	_ = json.NewEncoder(w).Encode(problem)
}

// DecodeJSON decodes the request body into target, rejecting unknown fields
// and trailing data. Failures wrap ErrBadRequest.
func DecodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrBadRequest)
		}
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON body", ErrBadRequest)
	}
	return nil
}

// IDParam parses a positive int64 URL parameter.
func IDParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrBadRequest, name, raw)
	}
	return id, nil
}

// SortParams reads ?sort= and ?dir= from the query string.
func SortParams(r *http.Request) (field string, desc bool) {
	q := r.URL.Query()
	return q.Get("sort"), strings.EqualFold(q.Get("dir"), "desc")
}
