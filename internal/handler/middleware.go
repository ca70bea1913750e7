package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"recircle-core/internal/handler/response"
	"recircle-core/pkg/auth"
	"recircle-core/pkg/errno"
)

const actorKey = "actor"

// AuthMiddleware resolves the bearer credential into a typed ActorContext
// once, before any handler runs. Handlers never touch the raw token.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			response.Error(c, errno.ErrTokenInvalid)
			c.Abort()
			return
		}

		actor, err := auth.ParseToken(tokenStr, jwtSecret)
		if err != nil {
			response.Error(c, errno.ErrTokenInvalid)
			c.Abort()
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the actor resolved by AuthMiddleware, nil if absent.
func ActorFrom(c *gin.Context) *auth.ActorContext {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	actor, _ := v.(*auth.ActorContext)
	return actor
}
