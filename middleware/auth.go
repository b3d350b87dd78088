package middleware

import (
	"net/http"
	"strings"

	"medibook/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuthMiddleware.
const (
	CtxSubjectID = "subjectID"
	CtxRole      = "role"
)

// JWTAuthMiddleware verifies the bearer token and requires the caller's role
// to be one of the allowed roles. The verified subject id and role are
// stored on the context; downstream code trusts them (identity issuance is
// an external collaborator).
func JWTAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		if !roleAllowed(role, allowedRoles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Role not permitted for this endpoint",
			})
			return
		}

		c.Set(CtxSubjectID, subject)
		c.Set(CtxRole, role)
		c.Next()
	}
}

func roleAllowed(role string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == role {
			return true
		}
	}
	return false
}

// SubjectID returns the authenticated subject id from the context.
func SubjectID(c *gin.Context) string {
	v, _ := c.Get(CtxSubjectID)
	id, _ := v.(string)
	return id
}

// Role returns the authenticated role from the context.
func Role(c *gin.Context) string {
	v, _ := c.Get(CtxRole)
	role, _ := v.(string)
	return role
}
