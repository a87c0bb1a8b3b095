package handlers

import (
	"net/http"

	"admin-console/remote"
	"admin-console/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	API *remote.AdminService
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.API.Profile(c.Request.Context())
	if err != nil {
		respondRemoteError(c, err, "Failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		FullName    string `json:"fullName" binding:"required"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	user, err := h.API.UpdateProfile(c.Request.Context(), remote.ProfileUpdate{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		respondRemoteError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
		ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=NewPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	err := h.API.ChangePassword(c.Request.Context(), remote.PasswordChange{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		respondRemoteError(c, err, "Failed to change password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
