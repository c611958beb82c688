package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront-service/internal/auth"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
)

// RequireAuth validates the bearer token and loads the current user into the
// request context under "user". Requests without a valid token get a 401.
func RequireAuth(tokens *auth.TokenManager, users repository.UserRepositoryInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "Not authorized, no token")
			return
		}

		userID, err := tokens.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortUnauthorized(c, "Not authorized, token failed")
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c, "Not authorized, user not found")
			return
		}

		c.Set("user", user)
		c.Next()
	}
}

// RequireAdmin allows only admin users past. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Success: false,
				Error: models.Error{
					Code:    "FORBIDDEN",
					Message: "Admin access required",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from the gin context.
func CurrentUser(c *gin.Context) *models.User {
	val, ok := c.Get("user")
	if !ok {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Success: false,
		Error: models.Error{
			Code:    "UNAUTHORIZED",
			Message: message,
		},
	})
	c.Abort()
}
