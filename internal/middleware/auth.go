package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/crewstack/workforce_app/internal/utils"
)

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := utils.ParseAndValidateJWT(parts[1], jwtSecret)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		userID := claims.Subject
		if userID == "" {
			logger.Error("User ID (subject) missing from valid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		// Store identity in both the Gin context and the request context so
		// code below the handler layer can see it.
		c.Set(string(userIDKey), userID)
		c.Set(string(tenantIDKey), claims.TenantID)

		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, tenantIDKey, claims.TenantID)

		enrichedLogger := logger.With(
			slog.String("user_id", userID),
			slog.String("tenant_id", claims.TenantID),
		)
		ctx = ContextWithLogger(ctx, enrichedLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireTenantMatch ensures the tenant named in the route matches the
// tenant scope baked into the caller's token. Cross-tenant access always
// fails closed.
func RequireTenantMatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		routeTenantID := c.Param("tenantID")
		tokenTenantID, ok := GetTenantIDFromContext(c)
		if !ok || routeTenantID == "" || routeTenantID != tokenTenantID {
			GetLoggerFromCtx(c.Request.Context()).Warn("Tenant scope mismatch",
				slog.String("route_tenant_id", routeTenantID),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access to this tenant is not allowed"})
			return
		}
		c.Next()
	}
}
