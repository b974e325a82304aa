package api

import (
	"context"
	"net/netip"

	"videotube/internal/auth"
	"videotube/internal/config"
	"videotube/internal/database"
	"videotube/internal/media"
	"videotube/internal/storage"
	"videotube/internal/websocket"

	gorillaws "github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Server struct {
	config   *config.Config
	store    *database.Store
	tokens   *auth.TokenIssuer
	uploader media.Uploader
	staging  *storage.LocalStorage
	wsHub    *websocket.Hub
	logger   *zap.Logger
	limiter  *ipRateLimiter

	trustedProxies []netip.Prefix
	upgrader       *gorillaws.Upgrader
}

func NewServer(
	cfg *config.Config,
	store *database.Store,
	tokens *auth.TokenIssuer,
	uploader media.Uploader,
	staging *storage.LocalStorage,
	wsHub *websocket.Hub,
	logger *zap.Logger,
) *Server {
	// Config.Validate reports bad entries; the valid ones are still used here.
	trustedProxies, _ := config.ParseTrustedProxies(cfg.HTTP.TrustedProxies)

	return &Server{
		config:   cfg,
		store:    store,
		tokens:   tokens,
		uploader: uploader,
		staging:  staging,
		wsHub:    wsHub,
		logger:   logger,
		limiter:  newIPRateLimiter(cfg.RateLimit.AuthPerMinute),

		trustedProxies: trustedProxies,
		upgrader:       websocket.NewUpgrader(allowedOrigins(cfg.HTTP.CORSOrigin)),
	}
}

// publish journals an account event and pushes it to the user's open
// websockets. A journal failure is logged and the push still happens.
func (s *Server) publish(ctx context.Context, userID primitive.ObjectID, eventType string, payload map[string]any) {
	event := websocket.NewEvent(eventType, payload)

	logged, err := s.store.LogEvent(ctx, userID, eventType, payload)
	if err != nil {
		s.logger.Warn("failed to record account event",
			zap.String("user_id", userID.Hex()),
			zap.String("type", eventType),
			zap.Error(err),
		)
	} else {
		event.ID = logged.ID.Hex()
		event.Timestamp = logged.EventTime
	}

	s.wsHub.PublishEvent(userID.Hex(), event)
}
