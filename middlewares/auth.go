package middlewares

import (
	"context"
	"net/http"
	"strings"

	"foodorder/pkg/resp"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

// SessionVerifier reports whether a token's session is still active.
type SessionVerifier interface {
	VerifySession(ctx context.Context, userID uint, sessionID string) (bool, error)
}

// AuthMiddleware checks the bearer token and, when roles are given, the caller's role.
// A nil verifier skips the session check.
func AuthMiddleware(secret string, sessions SessionVerifier, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			resp.AbortFail(c, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		authenticate(c, strings.TrimPrefix(h, "Bearer "), secret, sessions, requiredRoles)
	}
}

func authenticate(c *gin.Context, tokenStr, secret string, sessions SessionVerifier, requiredRoles []string) {
	claims, err := utils.ParseToken(tokenStr, secret)
	if err != nil {
		resp.AbortFail(c, http.StatusUnauthorized, "invalid token")
		return
	}

	if sessions != nil {
		ok, err := sessions.VerifySession(c.Request.Context(), claims.UserID, claims.ID)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		if !ok {
			resp.AbortFail(c, http.StatusUnauthorized, "session expired")
			return
		}
	}

	c.Set(utils.CtxUserID, claims.UserID)
	c.Set(utils.CtxRole, claims.Role)

	if len(requiredRoles) > 0 {
		allowed := false
		for _, r := range requiredRoles {
			if claims.Role == r {
				allowed = true
				break
			}
		}
		if !allowed {
			resp.AbortFail(c, http.StatusForbidden, "forbidden")
			return
		}
	}

	c.Next()
}
