package handlers

import (
	"errors"
	"net/http"

	"admin-console/remote"
	"admin-console/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	API *remote.AdminService
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := remote.UserFilter(c.DefaultQuery("filter", string(remote.UserFilterAll)))
	page, err := h.API.ListUsers(c.Request.Context(), filter, queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if errors.Is(err, remote.ErrUnknownUserFilter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filter must be one of: all customers providers reported blocked"})
		return
	}
	if err != nil {
		respondRemoteError(c, err, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *UserHandler) BlockUser(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	// An empty body blocks without a reason.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
			return
		}
	}

	if err := h.API.BlockUser(c.Request.Context(), c.Param("id"), req.Reason); err != nil {
		respondRemoteError(c, err, "Failed to block user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

func (h *UserHandler) UnblockUser(c *gin.Context) {
	if err := h.API.UnblockUser(c.Request.Context(), c.Param("id")); err != nil {
		respondRemoteError(c, err, "Failed to unblock user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unblocked"})
}

func (h *UserHandler) NotifyUser(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
		Type    string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	err := h.API.SendUserNotification(c.Request.Context(), c.Param("id"), remote.Notification{
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
	})
	if err != nil {
		respondRemoteError(c, err, "Failed to send notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification sent"})
}
