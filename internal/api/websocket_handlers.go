package api

import (
	"net/http"

	"videotube/internal/websocket"

	gorillaws "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ServeWsHandler upgrades to a websocket that receives the caller's account
// events. The access token must be passed as ?token=; the accessToken cookie
// is not accepted here because browsers attach it to cross-site handshakes.
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		writeError(w, Unauthorized("Unauthorized request"))
		return
	}

	claims, err := s.tokens.VerifyAccessToken(tokenString)
	if err != nil {
		writeError(w, Unauthorized("Invalid access token"))
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := websocket.NewClient(s.wsHub, conn, claims.UserID)
	select {
	case s.wsHub.Register <- client:
	case <-s.wsHub.Done():
		_ = conn.WriteMessage(gorillaws.CloseMessage,
			gorillaws.FormatCloseMessage(gorillaws.CloseGoingAway, "server shutting down"))
		conn.Close()
		return
	}

	go client.ReadPump()
	go client.WritePump()
}
