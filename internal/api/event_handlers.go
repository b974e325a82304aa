package api

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// @Summary      Get account events
// @Description  Lists the caller's account events newer than the given event id, oldest first, at most 100 per call. Used to catch up after a websocket reconnect.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        since  query     string  false  "Id of the last event received. Omit to start from the beginning."
// @Success      200    {object}  Response{data=[]models.AccountEvent}
// @Failure      400    {object}  Response
// @Failure      401    {object}  Response
// @Router       /users/events [get]
func (s *Server) GetEventsHandler(w http.ResponseWriter, r *http.Request) error {
	user := GetUserFromContext(r.Context())
	if user == nil {
		return Unauthorized("Unauthorized request")
	}

	sinceID := primitive.NilObjectID
	if since := r.URL.Query().Get("since"); since != "" {
		id, err := primitive.ObjectIDFromHex(since)
		if err != nil {
			return BadRequest("Invalid 'since' parameter, must be an event id")
		}
		sinceID = id
	}

	events, err := s.store.GetEventsSince(r.Context(), user.ID, sinceID)
	if err != nil {
		return Internal("Failed to retrieve events", err)
	}

	respond(w, http.StatusOK, events, "Events fetched successfully")
	return nil
}
