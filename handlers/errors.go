package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"admin-console/logger"
	"admin-console/remote"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondRemoteError passes backend errors through with their status and
// message. Transport failures become 502, timeouts 504.
func respondRemoteError(c *gin.Context, err error, fallback string) {
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.StatusCode
		msg := apiErr.Message
		switch {
		case status == http.StatusForbidden:
			msg = "Permission denied: " + msg
		case status < 400:
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	logger.GetGlobalLogger().WithContext(c.Request.Context()).Warn(fallback, zap.Error(err))
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Remote API timed out"})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": fallback})
}

// queryInt reads a positive integer query parameter.
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}
