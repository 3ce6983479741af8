package http

import (
	"net/http"

	"github.com/gautamkumarcode/youtube-video-management/pkg/httpx"
)

// envelope is the uniform response shape the frontend consumes.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondData(w http.ResponseWriter, status int, data any, message string) {
	httpx.WriteJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

// respondError writes the failure envelope. code is a stable machine-readable
// identifier (CODE_ALREADY_USED, NOT_FOUND, ...); message is human-readable.
func respondError(w http.ResponseWriter, status int, message, code string) {
	httpx.WriteJSON(w, status, envelope{Success: false, Message: message, Error: code})
}
