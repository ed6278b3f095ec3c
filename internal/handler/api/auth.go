package api

import (
	"net/http"

	reqdto "lashdiary/internal/handler/dto/request"
	resdto "lashdiary/internal/handler/dto/response"
	"lashdiary/internal/handler/httperr"
	"lashdiary/internal/handler/middleware"
	"lashdiary/internal/pkg/config"
	"lashdiary/internal/pkg/cookie"
	"lashdiary/internal/pkg/errs"
	"lashdiary/internal/usecase/commands"
	"lashdiary/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errNotAuthenticated = errs.New("not authenticated")

type AuthHandler struct {
	cmds      commands.AuthCommands
	q         queries.UserQueries
	cookieCfg config.CookieConfig
	jwtCfg    config.JWTConfig
}

func NewAuthHandler(cmds commands.AuthCommands, q queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds:      cmds,
		q:         q,
		cookieCfg: cfg.Cookie,
		jwtCfg:    cfg.JWT,
	}
}

// @Summary Console login
// @Description Login with email and password. The access token is also set as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errs.Is(err, commands.ErrInvalidCredentials) {
			httperr.AbortWithReason(c, http.StatusUnauthorized, err, "Invalid email or password", "invalid_credentials")
			return
		}
		abortWithUsecaseError(c, err)
		return
	}

	cookie.SetAccessTokenCookie(c, h.cookieCfg, result.AccessToken, h.jwtCfg.Duration)
	c.JSON(http.StatusOK, resdto.FromLoginResult(result))
}

// @Summary Console logout
// @Description Clears the access token cookie. Bearer tokens expire on their own.
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessTokenCookie(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Current console user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithReason(c, http.StatusUnauthorized, errNotAuthenticated, "User not authenticated", "unauthenticated")
		return
	}

	view, err := h.q.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errs.Is(err, queries.ErrUserNotFound) {
			httperr.AbortWithReason(c, http.StatusNotFound, err, "User not found", "user_not_found")
			return
		}
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAuthorizedUser(view))
}
