package handlers

import (
	"errors"
	"net/http"

	"admin-console/remote"
	"admin-console/utils"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	API *remote.VerificationService
}

func (h *VerificationHandler) ListPending(c *gin.Context) {
	page, err := h.API.ListPending(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "limit", 10))
	if err != nil {
		respondRemoteError(c, err, "Failed to fetch verification requests")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *VerificationHandler) GetDetails(c *gin.Context) {
	details, err := h.API.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRemoteError(c, err, "Failed to fetch verification details")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": details})
}

func (h *VerificationHandler) Approve(c *gin.Context) {
	if err := h.API.Approve(c.Request.Context(), c.Param("id")); err != nil {
		respondRemoteError(c, err, "Failed to approve provider")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Provider approved"})
}

func (h *VerificationHandler) Reject(c *gin.Context) {
	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	err := h.API.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	if errors.Is(err, remote.ErrReasonRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}
	if err != nil {
		respondRemoteError(c, err, "Failed to reject provider")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Provider rejected"})
}
