package handlers

import (
	"net/http"
	"strings"

	"admin-console/remote"
	"admin-console/utils"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	API *remote.CategoryService
}

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func bindCategory(c *gin.Context) (string, bool) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return "", false
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return "", false
	}
	return name, true
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.API.List(c.Request.Context())
	if err != nil {
		respondRemoteError(c, err, "Failed to fetch categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.API.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRemoteError(c, err, "Failed to fetch category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	name, ok := bindCategory(c)
	if !ok {
		return
	}
	category, err := h.API.Create(c.Request.Context(), name)
	if err != nil {
		respondRemoteError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	name, ok := bindCategory(c)
	if !ok {
		return
	}
	category, err := h.API.Update(c.Request.Context(), c.Param("id"), name)
	if err != nil {
		respondRemoteError(c, err, "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.API.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondRemoteError(c, err, "Failed to delete category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
