package handler

import (
	"encoding/json"
	"net/http"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SignatureEnvelope wraps the responses of the signature flow endpoints.
// Code is only populated outside production so a tester can see the issued
// code without a push subscriber; production clients receive it via the
// notification channel.
type SignatureEnvelope struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Code     string `json:"code,omitempty"`
	PrintURL string `json:"print_url,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
