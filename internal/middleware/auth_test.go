package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"thaitravel/internal/model"
	"thaitravel/pkg/response"

	"github.com/gin-gonic/gin"
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

type stubUsers struct {
	users map[uint]*model.User
	err   error
}

func (s stubUsers) GetByID(_ context.Context, id uint) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users[id], nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newGuardedRouter(users stubUsers, guards ...gin.HandlerFunc) *gin.Engine {
	tokens := stubTokens{"alice-token": 1, "ghost-token": 99, "bob-token": 2}
	r := gin.New()
	chain := append([]gin.HandlerFunc{Authenticate(tokens, users, discardLogger())}, guards...)
	chain = append(chain, func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	r.GET("/protected", chain...)
	return r
}

func do(r http.Handler, authorization string) (*httptest.ResponseRecorder, response.Response) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

var (
	alice = &model.User{ID: 1, Username: "alice", Status: model.UserStatusActive, Roles: []model.Role{{Name: model.RoleUser}}}
	bob   = &model.User{ID: 2, Username: "bob", Status: model.UserStatusInactive, Roles: []model.Role{{Name: model.RoleAdmin}}}
)

func TestAuthenticate(t *testing.T) {
	users := stubUsers{users: map[uint]*model.User{1: alice, 2: bob}}
	r := newGuardedRouter(users)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{"valid token", "Bearer alice-token", http.StatusOK, ""},
		{"lowercase scheme", "bearer alice-token", http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, "Not authenticated"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Not authenticated"},
		{"unparseable token", "Bearer nope", http.StatusUnauthorized, "Could not validate credentials"},
		{"unknown subject", "Bearer ghost-token", http.StatusUnauthorized, "Could not validate credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(r, tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body.Error)
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestAuthenticate_LookupFailureIs500(t *testing.T) {
	r := newGuardedRouter(stubUsers{err: errors.New("db down")})
	w, _ := do(r, "Bearer alice-token")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireActive(t *testing.T) {
	users := stubUsers{users: map[uint]*model.User{1: alice, 2: bob}}
	r := newGuardedRouter(users, RequireActive())

	w, _ := do(r, "Bearer alice-token")
	assert.Equal(t, http.StatusOK, w.Code)

	w, body := do(r, "Bearer bob-token")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Inactive user", body.Error)
}

func TestRequireRole(t *testing.T) {
	activeBob := *bob
	activeBob.Status = model.UserStatusActive
	users := stubUsers{users: map[uint]*model.User{1: alice, 2: &activeBob}}
	r := newGuardedRouter(users, RequireActive(), RequireRole(model.RoleAdmin))

	w, body := do(r, "Bearer alice-token")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Role not permitted", body.Error)

	w, _ = do(r, "Bearer bob-token")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuards_FirstFailureWins(t *testing.T) {
	users := stubUsers{users: map[uint]*model.User{2: bob}}
	r := newGuardedRouter(users, RequireActive(), RequireRole(model.RoleUser))

	// bob is both inactive and lacks the user role; the active check runs first.
	w, body := do(r, "Bearer bob-token")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Inactive user", body.Error)
}

func TestRequireRole_WithoutAuthenticate(t *testing.T) {
	r := gin.New()
	r.GET("/protected", RequireRole(model.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w, _ := do(r, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
