package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// @Summary      Get channel profile
// @Description  Returns a user's public channel data with subscriber counts and whether the caller is subscribed.
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Channel username"
// @Success      200       {object}  Response{data=models.ChannelProfile}
// @Failure      400       {object}  Response
// @Failure      401       {object}  Response
// @Failure      404       {object}  Response
// @Router       /users/c/{username} [get]
func (s *Server) GetUserChannelProfileHandler(w http.ResponseWriter, r *http.Request) error {
	viewer := GetUserFromContext(r.Context())
	if viewer == nil {
		return Unauthorized("Unauthorized request")
	}

	username := strings.TrimSpace(chi.URLParam(r, "username"))
	if username == "" {
		return BadRequest("username is missing")
	}

	channel, err := s.store.GetChannelProfile(r.Context(), username, viewer.ID)
	if err != nil {
		return Internal("Something went wrong while fetching the channel", err)
	}
	if channel == nil {
		return NotFound("channel does not exist")
	}

	respond(w, http.StatusOK, channel, "User channel fetched successfully")
	return nil
}

// @Summary      Get watch history
// @Description  Lists watched videos in history order, each with its owner's name, username and avatar.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=[]models.WatchHistoryEntry}
// @Failure      401  {object}  Response
// @Router       /users/history [get]
func (s *Server) GetWatchHistoryHandler(w http.ResponseWriter, r *http.Request) error {
	user := GetUserFromContext(r.Context())
	if user == nil {
		return Unauthorized("Unauthorized request")
	}

	history, err := s.store.GetWatchHistory(r.Context(), user.ID)
	if err != nil {
		return Internal("Something went wrong while fetching the watch history", err)
	}

	respond(w, http.StatusOK, history, "Watch history fetched successfully")
	return nil
}
