package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"admin-console/remote"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	API *remote.AdminService
}

func (h *DashboardHandler) passthrough(c *gin.Context, fetch func(context.Context) (json.RawMessage, error), fallback string) {
	data, err := fetch(c.Request.Context())
	if err != nil {
		respondRemoteError(c, err, fallback)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	h.passthrough(c, h.API.Overview, "Failed to fetch dashboard overview")
}

func (h *DashboardHandler) UserOverview(c *gin.Context) {
	h.passthrough(c, h.API.UserOverview, "Failed to fetch user overview")
}

func (h *DashboardHandler) RecentUsers(c *gin.Context) {
	h.passthrough(c, h.API.RecentUsers, "Failed to fetch recent users")
}
