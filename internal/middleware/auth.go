package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TenantClaims is the claim set carried by the platform's service tokens.
// Authentication itself belongs to auth-service; this middleware only
// verifies the shared-secret signature and extracts the tenant scope.
type TenantClaims struct {
	TenantID string `json:"tenant_id"`
	jwt.RegisteredClaims
}

// tenantIDHeader is honoured instead of a token when auth is disabled
// (local development, in-cluster trusted callers).
const tenantIDHeader = "X-Tenant-ID"

// TenantAuthMiddleware resolves the tenant scope of every request. All
// downstream lookups are filtered by this tenant; there is no unscoped path.
func TenantAuthMiddleware(jwtSecret string, authDisabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		if authDisabled {
			tenantID := strings.TrimSpace(c.GetHeader(tenantIDHeader))
			if tenantID == "" {
				logger.Warn("Tenant header missing with auth disabled")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": tenantIDHeader + " header required"})
				return
			}
			attachTenant(c, tenantID)
			c.Next()
			return
		}

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

		token, err := jwt.ParseWithClaims(parts[1], &TenantClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*TenantClaims)
		if !ok || !token.Valid || claims.TenantID == "" {
			logger.Warn("Token valid but tenant claim missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		attachTenant(c, claims.TenantID)
		c.Next()
	}
}

// attachTenant stores the tenant ID in the request context and enriches the
// request logger with it.
func attachTenant(c *gin.Context, tenantID string) {
	ctx := ContextWithTenantID(c.Request.Context(), tenantID)
	enrichedLogger := GetLoggerFromCtx(ctx).With(slog.String("tenant_id", tenantID))
	ctx = ContextWithLogger(ctx, enrichedLogger)
	c.Request = c.Request.WithContext(ctx)
}
