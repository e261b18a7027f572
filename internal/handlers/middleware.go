package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	authHeaderName = "Authorization"
	bearerScheme   = "Bearer"

	// ctxUserID is the gin context key holding the authenticated operator id.
	ctxUserID = "userId"

	errMissingAuth = "missing Authorization header"
	errAuthFormat  = "invalid Authorization header format"
	errBadToken    = "invalid or expired token"
)

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader(authHeaderName)
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMissingAuth})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerScheme || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errAuthFormat})
		return
	}

	userId, err := h.services.ParseToken(parts[1])
	if err != nil {
		if h.log != nil {
			h.log.Debugw("auth_token_rejected", "err", err, "path", c.FullPath())
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errBadToken})
		return
	}

	c.Set(ctxUserID, userId)
	c.Next()
}
