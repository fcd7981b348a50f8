package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princev89/chai-backend/httpx"
	"github.com/princev89/chai-backend/models"
	"gorm.io/gorm"
)

// Middleware resolves the caller identity and attaches it to the context as
// user_id/email. It accepts either a session-token cookie or a Bearer JWT;
// everything downstream only ever reads the resolved identity.
func Middleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			claims, err := ValidateJWT(token)
			if err != nil {
				abort(c, "Invalid or expired token")
				return
			}
			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Next()
			return
		}

		sessionToken, err := c.Cookie("session_token")
		if err != nil || sessionToken == "" {
			abort(c, "No authentication token provided")
			return
		}

		var session models.Session
		result := db.Preload("User").Where("session_token = ?", sessionToken).First(&session)
		if result.Error != nil {
			abort(c, "Invalid or expired session")
			return
		}

		if session.IsExpired() {
			db.Delete(&session)
			abort(c, "Session expired")
			return
		}

		session.UpdateLastAccessed(db)

		c.Set("user_id", session.UserID)
		c.Set("email", session.User.Email)
		c.Set("session", &session)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func abort(c *gin.Context, message string) {
	httpx.Fail(c, httpx.ErrUnauthorized(message))
	c.Abort()
}
