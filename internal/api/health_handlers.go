package api

import (
	"context"
	"net/http"
	"time"
)

type HealthResponse struct {
	Database string `json:"database" example:"ok"`
}

// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  Response{data=HealthResponse}
// @Failure      503  {object}  Response
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) error {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		return &Error{Status: http.StatusServiceUnavailable, Message: "Database unavailable", Err: err}
	}

	respond(w, http.StatusOK, HealthResponse{Database: "ok"}, "OK")
	return nil
}
