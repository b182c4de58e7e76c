package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Console roles carried in the token.
const (
	RoleSales      = "sales"
	RoleProduction = "production"
)

const (
	actorKey = "actor"
	roleKey  = "role"

	// ActorHeader names the actor when no auth secret is configured.
	ActorHeader = "X-Actor"
)

// IssueToken signs a console token for actor.
func IssueToken(secret, actor, role string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  actor,
		"role": role,
		"exp":  jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	return token.SignedString([]byte(secret))
}

// authenticate resolves the acting user. With an empty secret it trusts the
// X-Actor header and skips role checks.
func authenticate(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			actor := strings.TrimSpace(c.GetHeader(ActorHeader))
			if actor == "" {
				actor = "anonymous"
			}
			c.Set(actorKey, actor)
			c.Next()
			return
		}

		parts := strings.Split(c.GetHeader("Authorization"), " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortWithError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "invalid claims")
			return
		}
		actor, _ := claims["sub"].(string)
		if actor == "" {
			abortWithError(c, http.StatusUnauthorized, "token has no subject")
			return
		}
		role, _ := claims["role"].(string)
		c.Set(actorKey, actor)
		c.Set(roleKey, role)
		c.Next()
	}
}

// requireRole admits tokens whose role is one of roles. Without a role
// (dev mode) every request passes.
func requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(roleKey)
		if !ok {
			c.Next()
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		abortWithError(c, http.StatusForbidden, "role not allowed")
	}
}

func actor(c *gin.Context) string {
	return c.GetString(actorKey)
}
