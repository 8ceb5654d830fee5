package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/interface/http/response"
)

// Context ключи для gin.Context.
const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "role"
	ContextActorKey  = "actor"
)

// TokenParser проверяет access-токен и возвращает участника.
type TokenParser interface {
	ParseAccess(token string) (entity.Actor, error)
}

// AuthMiddleware требует заголовок Authorization: Bearer <token>.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthorized(c, "autenticação necessária")
			return
		}

		actor, err := tokens.ParseAccess(strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
		if err != nil {
			response.Unauthorized(c, "token inválido ou expirado")
			return
		}

		SetActor(c, actor)
		c.Next()
	}
}

func SetActor(c *gin.Context, actor entity.Actor) {
	c.Set(ContextUserIDKey, actor.ID)
	c.Set(ContextRoleKey, actor.Role)
	c.Set(ContextActorKey, actor)
}

// ActorFrom возвращает участника, установленного AuthMiddleware.
func ActorFrom(c *gin.Context) (entity.Actor, bool) {
	value, exists := c.Get(ContextActorKey)
	if !exists {
		return entity.Actor{}, false
	}
	actor, ok := value.(entity.Actor)
	return actor, ok
}
