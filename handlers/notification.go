package handlers

import (
	"errors"
	"net/http"

	"admin-console/remote"
	"admin-console/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	API *remote.AdminService
}

func (h *NotificationHandler) Broadcast(c *gin.Context) {
	var req struct {
		Title      string `json:"title" binding:"required"`
		Message    string `json:"message" binding:"required"`
		Type       string `json:"type"`
		TargetRole string `json:"targetRole"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	err := h.API.SendBroadcast(c.Request.Context(), remote.Broadcast{
		Title:      req.Title,
		Message:    req.Message,
		Type:       req.Type,
		TargetRole: req.TargetRole,
	})
	if err != nil {
		respondRemoteError(c, err, "Failed to send notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification sent"})
}

// SendDirect notifies a single customer or provider.
func (h *NotificationHandler) SendDirect(c *gin.Context) {
	var req struct {
		UserID  string `json:"userId" binding:"required"`
		Role    string `json:"role" binding:"required"`
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
		Type    string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	err := h.API.SendDirectNotification(c.Request.Context(), req.UserID, req.Role, remote.Notification{
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
	})
	if errors.Is(err, remote.ErrInvalidRole) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be CUSTOMER or PROVIDER"})
		return
	}
	if err != nil {
		respondRemoteError(c, err, "Failed to send notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification sent"})
}

func (h *NotificationHandler) ProviderFeed(c *gin.Context) {
	page, err := h.API.ProviderNotifications(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		respondRemoteError(c, err, "Failed to fetch notifications")
		return
	}
	c.JSON(http.StatusOK, page)
}
