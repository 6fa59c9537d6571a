package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Envelope statuses.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Envelope is the standard API response wrapper.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// JSON writes a JSON response with the given status code and envelope.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Success writes a 200 "success" envelope.
func Success(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Fail writes a "fail" envelope for a client-side error. data is either nil
// or a string.
func Fail(w http.ResponseWriter, status int, message string, data *string) {
	env := Envelope{Status: StatusFail, Message: message}
	if data != nil {
		env.Data = *data
	}
	JSON(w, status, env)
}

// Error writes a 500 "error" envelope.
func Error(w http.ResponseWriter, message string) {
	JSON(w, http.StatusInternalServerError, Envelope{Status: StatusError, Message: message})
}
