package httputil

import (
	"encoding/json"
	"net/http"
)

// errorBody is the envelope every non-2xx response carries. The API
// client in pkg/api decodes the "error" key when mapping backend
// failures, so the shape is part of the wire contract.
type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON encodes v as the response body with the given status.
// Encoding failures after the header is written cannot be reported to
// the client and are dropped.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard {"error": msg} envelope.
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, errorBody{Error: msg})
}

// WriteOK writes a 200 {"status": "ok"} acknowledgement merged with
// any extra fields. Used by operations that have no resource body,
// such as logout and the health endpoint.
func WriteOK(w http.ResponseWriter, fields map[string]any) {
	body := map[string]any{"status": "ok"}
	for k, v := range fields {
		body[k] = v
	}
	WriteJSON(w, http.StatusOK, body)
}
