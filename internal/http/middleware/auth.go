package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "auth_email"

func unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": msg,
		},
	})
}

// Auth validates a bearer token and, when allowedDomain is set, requires
// the token's email claim to belong to that domain. devMode skips the
// check entirely for local frontend work.
func Auth(secret, allowedDomain string, devMode bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if devMode {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(c, "Missing bearer token")
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil {
			unauthorized(c, "Invalid token")
			return
		}

		email, _ := claims["email"].(string)
		if allowedDomain != "" {
			if !strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(allowedDomain)) {
				unauthorized(c, "Account not permitted")
				return
			}
		}
		c.Set(identityKey, email)
		c.Next()
	}
}
