package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  int      `json:"status"`
	Data    any      `json:"data"`
	Message string   `json:"message"`
	Success bool     `json:"success"`
	Errors  []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respond(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, Response{
		Status:  status,
		Data:    data,
		Message: message,
		Success: status < http.StatusBadRequest,
	})
}

func writeError(w http.ResponseWriter, apiErr *Error) {
	writeJSON(w, apiErr.Status, Response{
		Status:  apiErr.Status,
		Data:    nil,
		Message: apiErr.Message,
		Success: false,
		Errors:  apiErr.Errors,
	})
}

// handlerFunc is a handler that reports failure by returning an error.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn to http.HandlerFunc and is the single place a returned
// error becomes an error envelope.
func (s *Server) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		var apiErr *Error
		if !errors.As(err, &apiErr) {
			apiErr = Internal("Something went wrong", err)
		}

		if apiErr.Status >= http.StatusInternalServerError {
			s.logger.Error("request failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", apiErr.Status),
				zap.Error(err),
			)
		}

		writeError(w, apiErr)
	}
}
