package handlers

import (
	"context"
	"errors"
	"net/http"

	"admin-console/middleware"
	"admin-console/remote"
	"admin-console/session"
	"admin-console/utils"

	"github.com/gin-gonic/gin"
)

// OperatorSession is the session as seen by the auth endpoints.
type OperatorSession interface {
	Login(ctx context.Context, email, password string) (*remote.User, error)
	Logout(ctx context.Context) error
	Token() string
}

type AuthHandler struct {
	Session OperatorSession
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	user, err := h.Session.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, session.ErrNotAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}
	if err != nil {
		if remote.StatusCode(err) == http.StatusUnauthorized {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		respondRemoteError(c, err, "Login failed")
		return
	}

	// The token is the console credential: send it as a bearer token on
	// every /api/admin request.
	c.JSON(http.StatusOK, gin.H{"user": user, "token": h.Session.Token()})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Session.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.Operator(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
