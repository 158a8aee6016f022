package httpx

import (
	"errors"
	"net/http"

	"github.com/storefront-admin/storefront-admin/internal/shared"
)

// RespondError maps domain errors to problem-detail responses. Errors that
// match no sentinel are reported as 500 without leaking their text.
func RespondError(w http.ResponseWriter, err error, path ...string) {
	var verr ValidationError
	switch {
	case errors.As(err, &verr):
		Problem(w, http.StatusUnprocessableEntity, verr.Problem())
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, NewProblem("int", err.Error(), CodeNotFound, path...))
	case errors.Is(err, shared.ErrValidation):
		Problem(w, http.StatusUnprocessableEntity, NewProblem("str", err.Error(), CodeValidation, path...))
	case errors.Is(err, shared.ErrConstraint):
		Problem(w, http.StatusUnprocessableEntity, NewProblem("str", err.Error(), CodeConstraint, path...))
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, NewProblem("str", "invalid credentials, make sure the account exists and the password is correct", CodeInvalidCreds, "body", "email", "senha"))
	case errors.Is(err, shared.ErrUnauthorized):
		Problem(w, http.StatusUnauthorized, NewProblem("str", "authentication required", CodeUnauthorized, "header", "Authorization"))
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, NewProblem("str", "profile not allowed", CodeForbidden))
	default:
		Problem(w, http.StatusInternalServerError, NewProblem("str", http.StatusText(http.StatusInternalServerError), CodeInternal))
	}
}

// IsClientError reports whether err maps to a 4xx response.
func IsClientError(err error) bool {
	var verr ValidationError
	return errors.As(err, &verr) ||
		errors.Is(err, shared.ErrNotFound) ||
		errors.Is(err, shared.ErrValidation) ||
		errors.Is(err, shared.ErrConstraint) ||
		errors.Is(err, shared.ErrInvalidCredentials) ||
		errors.Is(err, shared.ErrUnauthorized) ||
		errors.Is(err, shared.ErrForbidden)
}
