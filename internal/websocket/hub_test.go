package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"thaitravel/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens map[string]uint

func (s stubTokens) Parse(token string) (uint, error) {
	if id, ok := s[token]; ok {
		return id, nil
	}
	return 0, errors.New("bad token")
}

type stubUsers map[uint]*model.User

func (s stubUsers) GetByID(_ context.Context, id uint) (*model.User, error) {
	return s[id], nil
}

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	tokens := stubTokens{"good": 1, "sleepy": 2}
	users := stubUsers{
		1: {ID: 1, Status: model.UserStatusActive},
		2: {ID: 2, Status: model.UserStatusInactive},
	}

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ServeWs(hub, c, tokens, users) })
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
}

func TestServeWs_RejectsBadTokens(t *testing.T) {
	_, srv := newTestServer(t)

	tests := []struct {
		token  string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"forged", http.StatusUnauthorized},
		{"sleepy", http.StatusBadRequest},
	}
	for _, tt := range tests {
		_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, tt.token), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, tt.status, resp.StatusCode, "token %q", tt.token)
		_ = resp.Body.Close()
	}
}

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub, srv := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "good"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish("province_tax.base_created", map[string]string{"province": "Chiang Mai"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, "province_tax.base_created", ev.Type)
	assert.Equal(t, "Chiang Mai", ev.Data["province"])
}

func TestHub_UnregistersOnClose(t *testing.T) {
	hub, srv := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "good"), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	_ = conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PublishWithoutClientsDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		for i := 0; i < sendBufferSize*2; i++ {
			hub.Publish("x", i)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked")
	}
}
