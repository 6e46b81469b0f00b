package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/aptiscore/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{Auth: config.Auth{JWTSecret: "s3cret", CookieName: "session", TokenTTL: time.Hour}}
	tokens := NewTokenService(cfg)
	mw := NewMiddleware(cfg, tokens)

	r := gin.New()
	whoami := func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"userId": UserID(ctx), "role": Role(ctx)})
	}
	r.GET("/me", mw.Authenticate(), whoami)
	r.GET("/admin", mw.Authenticate(), mw.RequireAdmin(), whoami)
	return r, tokens
}

func TestAuthenticate(t *testing.T) {
	r, tokens := newTestRouter(t)
	learner, _, err := tokens.Issue(7, RoleLearner)
	require.NoError(t, err)
	admin, _, err := tokens.Issue(1, RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		cookie     string
		bearer     string
		wantStatus int
		wantUser   uint
	}{
		{name: "no token", path: "/me", wantStatus: http.StatusUnauthorized},
		{name: "invalid bearer", path: "/me", bearer: "junk", wantStatus: http.StatusUnauthorized},
		{name: "bearer", path: "/me", bearer: learner, wantStatus: http.StatusOK, wantUser: 7},
		{name: "cookie", path: "/me", cookie: learner, wantStatus: http.StatusOK, wantUser: 7},
		{name: "cookie wins over bearer", path: "/me", cookie: learner, bearer: admin, wantStatus: http.StatusOK, wantUser: 7},
		{name: "learner on admin route", path: "/admin", bearer: learner, wantStatus: http.StatusForbidden},
		{name: "admin on admin route", path: "/admin", bearer: admin, wantStatus: http.StatusOK, wantUser: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantStatus != http.StatusOK {
				assert.NotEmpty(t, body["error"])
				return
			}
			assert.Equal(t, float64(tt.wantUser), body["userId"])
		})
	}
}
