package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "farm-bridge.backend/internal/domain/errors"
	"farm-bridge.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// CallerAddressKey is the context key for the authenticated address
	CallerAddressKey = "callerAddress"
	// CallerRoleKey is the context key for the authenticated role
	CallerRoleKey = "callerRole"
)

// OwnerAuthMiddleware guards privileged routes. It accepts only bearer
// tokens carrying the owner role.
func OwnerAuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    domainerrors.CodeUnauthorized,
				"message": "authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    domainerrors.CodeUnauthorized,
				"message": "invalid authorization format, use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			message := "invalid token"
			if err == jwt.ErrExpiredToken {
				message = "token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    domainerrors.CodeUnauthorized,
				"message": message,
			})
			return
		}

		if claims.Role != jwt.RoleOwner {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    domainerrors.CodeUnauthorized,
				"message": "owner role required",
			})
			return
		}

		c.Set(CallerAddressKey, claims.Address)
		c.Set(CallerRoleKey, claims.Role)
		c.Next()
	}
}
