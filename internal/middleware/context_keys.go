package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the context.
const userIDKey = contextKey("userID")

// tenantIDKey is the key used to store the token's tenant scope in the context.
const tenantIDKey = contextKey("tenantID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDVal := c.Request.Context().Value(userIDKey)
		if userIDVal != nil {
			return userIDVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}

// GetTenantIDFromContext retrieves the tenant scope of the authenticated
// token from the Gin context.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	tenantIDVal, exists := c.Get(string(tenantIDKey))
	if !exists {
		tenantIDVal := c.Request.Context().Value(tenantIDKey)
		if tenantIDVal != nil {
			return tenantIDVal.(string), true
		}
		return "", false
	}

	tenantID, ok := tenantIDVal.(string)
	if !ok {
		return "", false
	}

	return tenantID, true
}
