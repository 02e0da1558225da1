// Package readonly turns the application into a browse-only catalog: every
// request that would change data is refused with 403.
package readonly

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyReadOnly stores the read-only flag for template rendering.
const ContextKeyReadOnly = "read_only"

const blockedMessage = "This catalog is read-only"

// AllowFunc reports whether a non-GET request is still permitted, e.g. a
// search submitted with POST.
type AllowFunc func(c *gin.Context) bool

// Middleware blocks write operations in read-only mode.
// Read-only operations (GET) are always allowed.
type Middleware struct {
	enabled bool
	allow   []AllowFunc
}

// NewMiddleware creates a read-only middleware. Requests matching any of the
// allow funcs pass through even when they are not GETs.
func NewMiddleware(enabled bool, allow ...AllowFunc) *Middleware {
	return &Middleware{enabled: enabled, allow: allow}
}

// IsEnabled returns whether read-only mode is active.
func (m *Middleware) IsEnabled() bool {
	return m != nil && m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		for _, allowed := range m.allow {
			if allowed(c) {
				c.Next()
				return
			}
		}

		m.respondBlocked(c)
	}
}

// respondBlocked sends a 403 response as JSON or plain text.
func (m *Middleware) respondBlocked(c *gin.Context) {
	accept := c.GetHeader("Accept")
	if strings.Contains(accept, "application/json") || strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     blockedMessage,
			"read_only": true,
		})
		return
	}

	c.String(http.StatusForbidden, blockedMessage)
	c.Abort()
}

// InjectContext adds the read-only flag to the context for template rendering.
func (m *Middleware) InjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)
		c.Next()
	}
}
