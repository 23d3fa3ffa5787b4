package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/partymoa/partymoa-server/pkg/helpers"
	"github.com/partymoa/partymoa-server/pkg/response"
)

const CtxUserIDKey = "userID"

// Auth reads the access_token cookie, validates signature and expiry, and
// injects the user id into the Gin context. Access tokens are self-contained;
// no storage lookup happens here, expiry is a hard deadline.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
