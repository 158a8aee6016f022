// Package httpx provides HTTP response utilities built around problem-detail bodies.
package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Problem codes carried in ProblemDetail.Code.
const (
	CodeNotFound          = "value_not_found"
	CodeInvalidTransition = "invalid_transition"
	CodeStateConflict     = "state_conflict"
	CodeValidation        = "validation_error"
	CodeInvalidImage      = "invalid_image"
	CodeConstraint        = "constraint_violation"
	CodeInvalidCreds      = "invalid_credentials"
	CodeUnauthorized      = "unauthorized"
	CodeForbidden         = "forbidden"
	CodeInternal          = "internal_error"
)

// ProblemDetail is the error body returned on every 4xx and 5xx response.
type ProblemDetail struct {
	Type           string   `json:"type"`
	Message        string   `json:"message"`
	Code           string   `json:"code"`
	ViolationsPath []string `json:"violations_path"`
}

// NewProblem builds a ProblemDetail. path lists the request location the
// problem refers to, e.g. "body", "id_produto".
func NewProblem(typ, message, code string, path ...string) ProblemDetail {
	if path == nil {
		path = []string{}
	}
	return ProblemDetail{Type: typ, Message: message, Code: code, ViolationsPath: path}
}

// NotFound builds the 404 body for a missing entity id.
func NotFound(entity string, id int64, path ...string) ProblemDetail {
	return NewProblem("int", fmt.Sprintf("%s with id %d was not found", entity, id), CodeNotFound, path...)
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Problem sends a problem-detail response.
func Problem(w http.ResponseWriter, status int, pd ProblemDetail) {
	if pd.ViolationsPath == nil {
		pd.ViolationsPath = []string{}
	}
	JSON(w, status, pd)
}

// NoContent writes 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// DecodeJSON decodes JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}
