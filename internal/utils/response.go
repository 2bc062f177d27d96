package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

type ErrorPayload struct {
	Error string `json:"error"`
}

// JSONResponse sends payload as JSON with the given status
func JSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// ErrorResponse sends {"error": message}
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, ErrorPayload{Error: message})
}

// DecodeJSON reads a single JSON value from the request body into dst. An
// empty body decodes to the zero value.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
