package httpapi

import (
	"encoding/json"
	"net/http"

	"truthrecruit-engine/internal/apperr"
)

// APIError is the envelope for every non-analyze failure.
type APIError struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	var e APIError
	e.Error.Code = code
	e.Error.Message = message
	e.Error.RequestID = RequestIDFrom(r.Context())
	WriteJSON(w, status, e)
}

var kindCodes = map[apperr.Kind]string{
	apperr.KindValidation: "invalid_request",
	apperr.KindUpstream:   "upstream_error",
	apperr.KindNotFound:   "not_found",
	apperr.KindInternal:   "internal_error",
}

// WriteAppError renders err in the APIError envelope with the status and
// public message of its kind.
func WriteAppError(w http.ResponseWriter, r *http.Request, err error) {
	WriteError(w, r, apperr.StatusOf(err), kindCodes[apperr.KindOf(err)], apperr.PublicMessage(err))
}
