package api

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"descrow/auth"
	"descrow/deal"
	"descrow/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

func (s *Server) replyJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encode response", "error", err)
	}
}

// replyError maps the failure taxonomy onto HTTP statuses. Anything outside
// the taxonomy is an internal error and is logged, not leaked.
func (s *Server) replyError(w http.ResponseWriter, err error) {
	code, status := classify(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "error", err)
		s.replyJSON(w, status, rest.Error{Code: code, Message: "internal error"})
		return
	}
	s.replyJSON(w, status, rest.Error{Code: code, Message: err.Error()})
}

func classify(err error) (code string, status int) {
	switch {
	case errors.Is(err, deal.ErrNotFound):
		return "NotFound", http.StatusNotFound
	case errors.Is(err, deal.ErrInvalidParties):
		return "InvalidParties", http.StatusBadRequest
	case errors.Is(err, deal.ErrInvalidAmount):
		return "InvalidAmount", http.StatusBadRequest
	case errors.Is(err, deal.ErrAmountMismatch):
		return "AmountMismatch", http.StatusBadRequest
	case errors.Is(err, deal.ErrInvalidState):
		return "InvalidState", http.StatusConflict
	case errors.Is(err, deal.ErrUnauthorized):
		return "Unauthorized", http.StatusForbidden
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return "InvalidCredentials", http.StatusUnauthorized
	case errors.Is(err, auth.ErrWeakPassword):
		return "WeakPassword", http.StatusBadRequest
	case errors.Is(err, auth.ErrDuplicateEmail):
		return "DuplicateEmail", http.StatusConflict
	case errors.Is(err, errBadRequest):
		return "BadRequest", http.StatusBadRequest
	default:
		return "InternalServerError", http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("api: bad request")

func badRequest(err error) error {
	return errors.Join(errBadRequest, err)
}
