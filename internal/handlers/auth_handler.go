package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/config"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/middleware"
	"fintrack/internal/services"
)

// AuthHandler handles login, logout, token lifecycle, and identity
// introspection. Tokens travel in httpOnly cookies.
type AuthHandler struct {
	userService services.UserServicer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService services.UserServicer) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenRequest carries a token in the body for refresh/verify when no
// cookie is present.
type TokenRequest struct {
	Token string `json:"token"`
}

// setAuthCookie writes one token cookie: httpOnly, SameSite=Lax, and
// Secure per configuration.
func setAuthCookie(c *gin.Context, name, value string, maxAge int) {
	cfg := config.Get()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", cfg.CookieSecure, true)
}

// clearAuthCookie expires one token cookie.
func clearAuthCookie(c *gin.Context, name string) {
	cfg := config.Get()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", cfg.CookieSecure, true)
}

// Login handles user login
// @Summary     Log in
// @Description Authenticate with username and password; on success the access and refresh tokens are set as httpOnly cookies
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "Credentials"
// @Success     200 {object} map[string]string "Login successful"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Router      /token/ [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.Authenticate(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	accessToken, err := middleware.GenerateAccessToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	refreshToken, err := middleware.GenerateRefreshToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	cfg := config.Get()
	setAuthCookie(c, middleware.AccessTokenCookie, accessToken, int(cfg.AccessTokenTTL.Seconds()))
	setAuthCookie(c, middleware.RefreshTokenCookie, refreshToken, int(cfg.RefreshTokenTTL.Seconds()))

	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

// Refresh rotates the access token
// @Summary     Refresh the access token
// @Description Validate the refresh token (cookie or body) and set a fresh access-token cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Success     200 {object} map[string]string "Token refreshed"
// @Failure     401 {object} ErrorResponse "Invalid refresh token"
// @Router      /token/refresh/ [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	tokenString, _ := c.Cookie(middleware.RefreshTokenCookie)
	if tokenString == "" {
		var req TokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			tokenString = req.Token
		}
	}
	if tokenString == "" {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	claims, err := middleware.ValidateRefreshToken(tokenString)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	accessToken, err := middleware.GenerateAccessToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	setAuthCookie(c, middleware.AccessTokenCookie, accessToken, int(config.Get().AccessTokenTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"message": "Token refreshed"})
}

// Verify checks token validity
// @Summary     Verify a token
// @Description Validate the token carried in the body or the access-token cookie
// @Tags        auth
// @Accept      json
// @Produce     json
// @Success     200 {object} map[string]string "Token is valid"
// @Failure     401 {object} ErrorResponse "Invalid token"
// @Router      /token/verify/ [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	var req TokenRequest
	_ = c.ShouldBindJSON(&req)

	tokenString := req.Token
	if tokenString == "" {
		tokenString, _ = c.Cookie(middleware.AccessTokenCookie)
	}
	if tokenString == "" {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	if _, err := middleware.ParseToken(tokenString); err != nil {
		respondWithError(c, apperrors.ErrInvalidToken)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token is valid"})
}

// Me returns the caller's identity
// @Summary     Get caller identity
// @Description Return id, username, email, and privilege flags for the authenticated caller
// @Tags        auth
// @Produce     json
// @Success     200 {object} map[string]interface{} "Caller identity"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /me/ [get]
func (h *AuthHandler) Me(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(actor.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"is_superuser": user.IsSuperuser,
		"is_staff":     user.IsStaff,
	})
}

// Logout clears the auth cookies
// @Summary     Log out
// @Description Clear both token cookies; succeeds regardless of prior auth state
// @Tags        auth
// @Produce     json
// @Success     200 {object} map[string]string "Logged out"
// @Router      /logout/ [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	clearAuthCookie(c, middleware.AccessTokenCookie)
	clearAuthCookie(c, middleware.RefreshTokenCookie)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
