// Package response holds the JSON envelope and error mapping shared by all
// HTTP handlers.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fintra/fintra/internal/apperror"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	write(w, status, Envelope{Success: true, Data: data})
}

func Message(w http.ResponseWriter, status int, message string, data any) {
	write(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Err maps an error's kind onto a status code and writes the failure
// envelope. Errors without a kind are treated as internal.
func Err(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		status = http.StatusNotFound
	case apperror.KindInvalidInput:
		status = http.StatusBadRequest
	case apperror.KindConflict:
		status = http.StatusConflict
	case apperror.KindClassifier:
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		write(w, status, Envelope{Success: false, Message: "internal server error"})

		return
	}

	write(w, status, Envelope{Success: false, Message: err.Error()})
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
