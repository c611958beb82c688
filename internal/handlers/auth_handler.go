package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/auth"
	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	users        repository.UserRepositoryInterface
	tokens       *auth.TokenManager
	secureCookie bool
}

func NewAuthHandler(users repository.UserRepositoryInterface, tokens *auth.TokenManager, secureCookie bool) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, secureCookie: secureCookie}
}

// Register creates an account and signs the user in.
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if _, err := h.users.GetUserByEmail(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "USER_EXISTS",
				Message: "User already exists",
			},
		})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondServerError(c, "Failed to register user")
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := h.users.CreateUser(c.Request.Context(), user); err != nil {
		respondServerError(c, "Failed to register user")
		return
	}

	h.issueSession(c, user, http.StatusCreated)
}

// Login authenticates a user and issues tokens.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	user, err := h.users.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_CREDENTIALS",
				Message: "Invalid email or password",
			},
		})
		return
	}

	h.issueSession(c, user, http.StatusOK)
}

// issueSession generates both tokens, persists the refresh token, sets the
// refresh cookie, and writes the auth response.
func (h *AuthHandler) issueSession(c *gin.Context, user *models.User, status int) {
	accessToken, err := h.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		respondServerError(c, "Failed to issue token")
		return
	}
	refreshToken, err := h.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		respondServerError(c, "Failed to issue token")
		return
	}

	if err := h.users.SaveRefreshToken(c.Request.Context(), user.ID, &refreshToken); err != nil {
		respondServerError(c, "Failed to persist session")
		return
	}

	h.setRefreshCookie(c, refreshToken, int(auth.RefreshTokenTTL.Seconds()))

	c.JSON(status, models.AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: accessToken,
	})
}

// Logout revokes the refresh token and clears the cookie.
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if refreshToken, err := c.Cookie(refreshCookieName); err == nil && refreshToken != "" {
		if user, err := h.users.GetUserByRefreshToken(c.Request.Context(), refreshToken); err == nil {
			_ = h.users.SaveRefreshToken(c.Request.Context(), user.ID, nil)
		}
	}

	h.setRefreshCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Refresh exchanges a valid refresh cookie for a new access token. The token
// must both verify and match the one persisted for the user, so a revoked
// token cannot be replayed.
// @Summary Refresh access token
// @Tags auth
// @Produce json
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil || refreshToken == "" {
		respondRefreshFailed(c, "Not authorized, no refresh token")
		return
	}

	userID, err := h.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		respondRefreshFailed(c, "Not authorized, token failed")
		return
	}

	user, err := h.users.GetUserByID(c.Request.Context(), userID)
	if err != nil || user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		respondRefreshFailed(c, "Invalid refresh token")
		return
	}

	accessToken, err := h.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		respondServerError(c, "Failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": accessToken})
}

// Me returns the authenticated user's profile.
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		respondRefreshFailed(c, "Not authorized")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, value, maxAge, "/", "", h.secureCookie, true)
}

func respondRefreshFailed(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "UNAUTHORIZED",
			Message: message,
		},
	})
}

func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "VALIDATION_ERROR",
			Message: message,
		},
	})
}

func respondServerError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "INTERNAL_ERROR",
			Message: message,
		},
	})
}
