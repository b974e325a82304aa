package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"videotube/internal/websocket"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAPI_WebsocketReceivesAccountEvents(t *testing.T) {
	user := createTestUser(t)
	token, err := testServer.tokens.IssueAccessToken(user)
	require.NoError(t, err)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return testServer.wsHub.ConnectedClients(user.ID.Hex()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	rr := serve(withAuth(t, jsonRequest(t, http.MethodPatch, "/api/v1/users/update-account", map[string]string{
		"fullname": "Live Update",
	}), user))
	require.Equal(t, http.StatusOK, rr.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &event))
	require.Equal(t, websocket.EventAccountUpdated, event.Type)
	require.Equal(t, "Live Update", event.Data["fullname"])
	require.NotContains(t, event.Data, "password")
}

func TestAPI_WebsocketRejectsBadToken(t *testing.T) {
	srv := httptest.NewServer(testRouter)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=garbage"
	_, resp, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_WebsocketRejectsCookieOnlyAuth(t *testing.T) {
	user := createTestUser(t)
	token, err := testServer.tokens.IssueAccessToken(user)
	require.NoError(t, err)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()

	header := http.Header{}
	header.Set("Cookie", accessTokenCookie+"="+token)
	_, resp, err := gorillaws.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_WebsocketChecksOrigin(t *testing.T) {
	user := createTestUser(t)
	token, err := testServer.tokens.IssueAccessToken(user)
	require.NoError(t, err)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token

	foreign := http.Header{}
	foreign.Set("Origin", "https://evil.example")
	_, resp, err := gorillaws.DefaultDialer.Dial(wsURL, foreign)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	allowed := http.Header{}
	allowed.Set("Origin", testServer.config.HTTP.CORSOrigin)
	conn, _, err := gorillaws.DefaultDialer.Dial(wsURL, allowed)
	require.NoError(t, err)
	conn.Close()
}

func TestAPI_WebsocketAfterHubStopped(t *testing.T) {
	user := createTestUser(t)
	token, err := testServer.tokens.IssueAccessToken(user)
	require.NoError(t, err)

	hub := websocket.NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	cancel()
	<-hub.Done()

	server := NewServer(testServer.config, testServer.store, testServer.tokens, testUploader, testServer.staging, hub, zap.NewNop())
	srv := httptest.NewServer(server.Routes())
	defer srv.Close()

	conn, _, err := gorillaws.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, _, err = conn.ReadMessage()

	var closeErr *gorillaws.CloseError
	require.True(t, errors.As(err, &closeErr), "expected a close frame, got %v", err)
	require.Equal(t, gorillaws.CloseGoingAway, closeErr.Code)
	require.Zero(t, hub.ConnectedClients(user.ID.Hex()))
}
