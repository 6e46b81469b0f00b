package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/aptiscore/internal/auth"
	"github.com/lshigami/aptiscore/internal/dto"
)

var errNoTokens = errors.New("token issuing is not available")

// AuthController issues session tokens. It is only mounted outside release mode;
// production sessions come from the platform's login.
type AuthController struct {
	tokens     *auth.TokenService
	middleware *auth.Middleware
}

func NewAuthController(tokens *auth.TokenService, middleware *auth.Middleware) *AuthController {
	return &AuthController{tokens: tokens, middleware: middleware}
}

// IssueToken godoc
// @Summary (Dev) Issue a session token
// @Description Issues a signed session token for the given user and role and sets the session cookie. Disabled in release mode.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.IssueTokenRequest true "User and role"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Token could not be signed"
// @Router /auth/token [post]
func (c *AuthController) IssueToken(ctx *gin.Context) {
	var req dto.IssueTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		BindError(ctx, err)
		return
	}
	token, expires, err := c.tokens.Issue(req.UserID, req.Role)
	if err != nil {
		RespondError(ctx, errNoTokens)
		return
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.middleware.CookieName(), token, int(c.tokens.TTL().Seconds()), "/", "", false, true)
	ctx.JSON(http.StatusOK, dto.TokenResponse{Token: token, ExpiresAt: expires})
}
