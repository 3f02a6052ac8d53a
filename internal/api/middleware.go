package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rongwang/nyayadrishti/internal/metrics"
	"github.com/rongwang/nyayadrishti/internal/models"
	"github.com/rongwang/nyayadrishti/internal/service"
)

// principalKey is the gin context key holding the authenticated caller
const principalKey = "principal"

// evidence returns the signed session evidence from the session cookie, or
// from an "Authorization: Bearer" header when there is no cookie
func evidence(c *gin.Context, cookieName string) string {
	if value, err := c.Cookie(cookieName); err == nil && value != "" {
		return value
	}
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// AuthMiddleware returns a Gin middleware for authentication
func AuthMiddleware(svc service.Service, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		signed := evidence(c, cookieName)
		if signed == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Status:  "error",
				Code:    "UNAUTHORIZED",
				Message: "Authentication required",
			})
			c.Abort()
			return
		}

		p, err := svc.Authenticate(c.Request.Context(), signed)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Status:  "error",
				Code:    "UNAUTHORIZED",
				Message: "Invalid or expired session",
			})
			c.Abort()
			return
		}

		// Set the principal in the context
		c.Set(principalKey, *p)
		c.Next()
	}
}

// RequirePasswordSet blocks users who still use their default password
func RequirePasswordSet() gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal(c).FirstLogin {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Status:  "error",
				Code:    "PASSWORD_CHANGE_REQUIRED",
				Message: "Set a new password before continuing",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole allows only callers signed in with the given role
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal(c).Role != role {
			c.JSON(http.StatusForbidden, models.ErrorResponse{
				Status:  "error",
				Code:    "FORBIDDEN",
				Message: "Only available to the " + string(role) + " role",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestMetrics records the count and latency of every request, and logs it
func RequestMetrics(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		metrics.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), elapsed.Seconds())
		logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", elapsed),
		)
	}
}

func principal(c *gin.Context) models.Principal {
	p, _ := c.MustGet(principalKey).(models.Principal)
	return p
}
