package middleware

import (
	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/response"
)

// Role names. Admins implicitly pass every role check.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// RequireRoles allows the request through only when the authenticated user
// holds one of the given roles. Authorization is a boundary concern; the
// domain services never look at roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		roleValue, exists := c.Get(CtxRole)
		if !exists {
			response.Forbidden(c, "access denied: insufficient role")
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok || (!allowed[role] && role != RoleAdmin) {
			response.Forbidden(c, "access denied: insufficient role")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly is shorthand for RequireRoles(RoleAdmin).
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(RoleAdmin)
}
