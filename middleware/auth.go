package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/splitmate-app/splitmate-backend/models"
	"github.com/splitmate-app/splitmate-backend/utils"
)

const principalKey = "principal"

// Claims are the JWT claims this service consumes. Token issuance happens
// elsewhere; the middleware only verifies and extracts the principal.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Auth verifies the Bearer token and stores the caller's principal on the
// request context
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed token"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.Email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		role := claims.Role
		if role == "" {
			role = RoleMember
		}

		c.Set(principalKey, models.Principal{
			Email: utils.NormalizeEmail(claims.Email),
			Name:  claims.Name,
			Role:  role,
		})
		c.Next()
	}
}

// CurrentUser returns the authenticated principal set by Auth
func CurrentUser(c *gin.Context) models.Principal {
	value, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}
	}
	principal, _ := value.(models.Principal)
	return principal
}
