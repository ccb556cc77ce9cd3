package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Roles carried in the token
const (
	RoleViewer = "viewer"
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Permissions gating route groups. Ownership rules (creator vs group admin)
// are domain invariants checked inside the services, not here.
const (
	PermRead  = "read"
	PermWrite = "write"
)

var rolePermissions = map[string][]string{
	RoleViewer: {PermRead},
	RoleMember: {PermRead, PermWrite},
	RoleAdmin:  {PermRead, PermWrite},
}

// Authorize rejects callers whose role lacks the required permission
func Authorize(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		for _, permission := range rolePermissions[user.Role] {
			if permission == required {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
	}
}
