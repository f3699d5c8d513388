package middlewares

import (
	"net/http"

	"github.com/dimitrizarkua/jobs_backend/config"
	"github.com/dimitrizarkua/jobs_backend/utils"
	"github.com/gin-gonic/gin"
)

// Session is the cached session payload keyed by token in Redis.
type Session struct {
	UserId     int    `json:"user_id"`
	UserName   string `json:"user_name"`
	LocationId int    `json:"location_id"`
}

// SessionMiddleware resolves the token header into user identity on the
// request context. Requests without a token pass through anonymously.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("token")
		if token == "" {
			c.Next()
			return
		}

		var session Session
		exists, err := config.GetRedisObject("Token:"+token, &session)
		if err != nil || !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), token)
		ctx = utils.SetUserIdInContext(ctx, session.UserId)
		ctx = utils.SetUserNameInContext(ctx, session.UserName)
		ctx = utils.SetLocationIdInContext(ctx, session.LocationId)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
