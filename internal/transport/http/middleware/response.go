package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody mirrors handler.MessageEnvelope so clients see one error shape.
type errorBody struct {
	Error     string `json:"error"`
	ErrorCode int    `json:"error_code"`
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg, ErrorCode: status})
}
