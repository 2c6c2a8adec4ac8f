// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/shop24/shop24/internal/shared"
)

// ErrBadRequest marks malformed input that never reached the domain layer,
// such as undecodable JSON or a non-numeric id in the path.
var ErrBadRequest = errors.New("bad request")

// StatusFor returns the HTTP status matching the kind of err.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, shared.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrReferentialIntegrity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps domain errors to HTTP responses using RFC7807. Internal
// errors are reported without detail.
func RespondError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		Problem(w, status, "Internal Error", "")
		return
	}

	problem := ProblemDetail{Title: titleFor(err), Status: status, Detail: err.Error()}
	var (
		verr *shared.ValidationError
		rerr *shared.ReferentialIntegrityError
	)
	switch {
	case errors.As(err, &verr):
		problem.Entity, problem.Field = verr.Entity, verr.Field
	case errors.As(err, &rerr):
		problem.Entity, problem.Field = rerr.Entity, rerr.Field
	}
	writeProblem(w, problem)
}

func titleFor(err error) string {
	switch {
	case errors.Is(err, ErrBadRequest):
		return "Bad Request"
	case errors.Is(err, shared.ErrValidation):
		return "Validation Failed"
	case errors.Is(err, shared.ErrReferentialIntegrity):
		return "Referential Integrity Violation"
	case errors.Is(err, shared.ErrNotFound):
		return "Not Found"
	case errors.Is(err, shared.ErrConflict):
		return "Conflict"
	}
	return "Internal Error"
}

// Fail logs server-side failures with the request id and renders err.
// Client errors are logged at debug level only.
func Fail(w http.ResponseWriter, r *http.Request, logger *slog.Logger, msg string, err error) {
	attrs := []any{slog.Any("error", err), slog.String("request_id", middleware.GetReqID(r.Context()))}
	if StatusFor(err) >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), msg, attrs...)
	} else {
		logger.DebugContext(r.Context(), msg, attrs...)
	}
	RespondError(w, err)
}
