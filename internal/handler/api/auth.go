package api

import (
	"net/http"

	reqdto "boardinghouse/internal/handler/dto/request"
	resdto "boardinghouse/internal/handler/dto/response"
	"boardinghouse/internal/handler/httperr"
	"boardinghouse/internal/handler/middleware"
	"boardinghouse/internal/pkg/config"
	"boardinghouse/internal/pkg/cookie"
	"boardinghouse/internal/pkg/errs"
	"boardinghouse/internal/pkg/jwt"
	"boardinghouse/internal/usecase/commands"
	"boardinghouse/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errRefreshTokenMissing = errs.New("refresh token missing")

type AuthHandler struct {
	cmds       commands.AuthCommands
	users      queries.UserQueries
	jwtService *jwt.Service
	cookieCfg  config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, users queries.UserQueries, jwtService *jwt.Service, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds:       cmds,
		users:      users,
		jwtService: jwtService,
		cookieCfg:  cfg.Cookie,
	}
}

// @Summary User login
// @Description Login with email and password. Bookings made earlier without an account under the same contact are attached to the user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeBadRequest, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), commands.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		if errs.Is(err, commands.ErrInvalidCredentials) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, httperr.CodeUnauthorized, "Invalid email or password", nil)
			return
		}
		httperr.AbortWithUsecaseError(c, err)
		return
	}

	user, err := resdto.FromUserView(result.User)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}

	h.setTokenCookies(c, result.TokenPair)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken:     result.TokenPair.AccessToken,
		RefreshToken:    result.TokenPair.RefreshToken,
		User:            user,
		ClaimedBookings: result.ClaimedBookings,
	})
}

// @Summary Refresh tokens
// @Description Exchange a refresh token (body or cookie) for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RefreshRequest false "Refresh request"
// @Success 200 {object} resdto.TokenResponse
// @Failure 401 {object} httperr.Response
// @Router /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req reqdto.RefreshRequest
	_ = c.ShouldBindJSON(&req)
	token := req.RefreshToken
	if token == "" {
		token = cookie.GetRefreshToken(c)
	}
	if token == "" {
		httperr.AbortWithError(c, http.StatusUnauthorized, errRefreshTokenMissing, httperr.CodeUnauthorized, "Refresh token required", nil)
		return
	}

	pair, err := h.cmds.RefreshToken(c.Request.Context(), token)
	if err != nil {
		if errs.Is(err, commands.ErrTokenValidation) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, httperr.CodeUnauthorized, "Invalid or expired refresh token", nil)
			return
		}
		httperr.AbortWithUsecaseError(c, err)
		return
	}

	h.setTokenCookies(c, pair)
	c.JSON(http.StatusOK, resdto.TokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// @Summary User logout
// @Description Clears the token cookies. Bearer tokens expire on their own.
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookies(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("no user in context"), httperr.CodeUnauthorized, "User not authenticated", nil)
		return
	}

	view, err := h.users.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}

	res, err := resdto.FromUserView(view)
	if err != nil {
		httperr.AbortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) setTokenCookies(c *gin.Context, pair *commands.TokenPair) {
	cookie.SetTokenCookies(c, h.cookieCfg, pair.AccessToken, pair.RefreshToken,
		h.jwtService.AccessTokenDuration(), h.jwtService.RefreshTokenDuration())
}
