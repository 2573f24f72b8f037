package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"github.com/codeRisshi25/UrbanPulse/internal/auth"
)

const claimsKey = "auth_claims"

// Authenticate verifies the bearer token and attaches its claims to the
// request context. Requests without a valid token never reach the handler.
func Authenticate(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.ExtractBearer(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication token is required",
			})
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Authorize allows only the listed roles past. It must run after
// Authenticate.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required",
			})
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		logrus.WithFields(logrus.Fields{
			"user_id": claims.UserID,
			"role":    claims.Role,
			"allowed": roles,
		}).Warn("unauthorized access attempt")

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "You do not have permission to access this resource",
		})
	}
}

// ClaimsFrom returns the claims Authenticate stored on the context.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
