package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ana-yet/soulmate-server-side-code/pkg/domerrors"
)

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError translates a domain error into the JSON error envelope. This is
// the only place failure codes become HTTP statuses.
func WriteError(w http.ResponseWriter, err error) {
	code := domerrors.CodeOf(err)
	WriteJSON(w, domerrors.ToHTTPStatus(code), errorEnvelope{
		Error:   string(code),
		Message: domerrors.MessageOf(err),
	})
}

// decodeJSON reads the request body into dst, surfacing a validation error
// on malformed input.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domerrors.New(domerrors.CodeValidation, "invalid request body")
	}
	return nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domerrors.New(domerrors.CodeValidation, "invalid "+name)
	}
	return id, nil
}

func int64Param(r *http.Request, name string) (int64, error) {
	n, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, domerrors.New(domerrors.CodeValidation, "invalid "+name)
	}
	return n, nil
}

func invalidQueryParam(name string) error {
	return domerrors.New(domerrors.CodeValidation, name+" must be an integer")
}
