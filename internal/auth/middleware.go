package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/aptiscore/config"
	"github.com/lshigami/aptiscore/internal/dto"
)

const (
	ctxUserID = "auth.userID"
	ctxRole   = "auth.role"
)

// Middleware authenticates requests from the session cookie or a bearer header.
type Middleware struct {
	tokens     *TokenService
	cookieName string
}

func NewMiddleware(cfg *config.Config, tokens *TokenService) *Middleware {
	return &Middleware{tokens: tokens, cookieName: cfg.Auth.CookieName}
}

func (m *Middleware) CookieName() string {
	return m.cookieName
}

// Authenticate rejects the request with 401 unless it carries a valid token.
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		raw := m.extract(ctx)
		if raw == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "missing session token"})
			return
		}
		claims, err := m.tokens.Parse(raw)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
			return
		}
		userID, _ := claims.UserID()
		ctx.Set(ctxUserID, userID)
		ctx.Set(ctxRole, claims.Role)
		ctx.Next()
	}
}

// RequireAdmin must run after Authenticate.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if Role(ctx) != RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: "admin role required"})
			return
		}
		ctx.Next()
	}
}

func (m *Middleware) extract(ctx *gin.Context) string {
	if m.cookieName != "" {
		if c, err := ctx.Cookie(m.cookieName); err == nil && c != "" {
			return c
		}
	}
	h := ctx.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// UserID returns the authenticated caller, or 0 outside Authenticate.
func UserID(ctx *gin.Context) uint {
	return ctx.GetUint(ctxUserID)
}

func Role(ctx *gin.Context) string {
	return ctx.GetString(ctxRole)
}
