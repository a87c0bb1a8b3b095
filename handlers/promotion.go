package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"admin-console/firebase"
	"admin-console/logger"
	"admin-console/models"
	"admin-console/promotions"
	"admin-console/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PromotionService is the promotion store as seen by the HTTP layer.
type PromotionService interface {
	Load(ctx context.Context) error
	List() []models.PromotionRecord
	Get(id string) (models.PromotionRecord, error)
	Create(ctx context.Context, in models.PromotionInput) (promotions.Result, error)
	Update(ctx context.Context, id string, in models.PromotionInput) (promotions.Result, error)
	Delete(ctx context.Context, id string) (promotions.Result, error)
}

type PromotionHandler struct {
	Store PromotionService
	// Storage is nil when video uploads are not configured.
	Storage firebase.StorageClient
}

type promotionRequest struct {
	Title       string `json:"title" form:"title" binding:"required"`
	VideoURL    string `json:"videoUrl" form:"videoUrl"`
	URL         string `json:"url" form:"url"`
	StartDate   string `json:"startDate" form:"startDate" binding:"required"`
	EndDate     string `json:"endDate" form:"endDate" binding:"required"`
	Description string `json:"description" form:"description"`
	Category    string `json:"category" form:"category"`
	Location    string `json:"location" form:"location"`
}

func (r promotionRequest) input() models.PromotionInput {
	return models.PromotionInput{
		Title:       strings.TrimSpace(r.Title),
		VideoURL:    strings.TrimSpace(r.VideoURL),
		URL:         strings.TrimSpace(r.URL),
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Description: r.Description,
		Category:    r.Category,
		Location:    r.Location,
	}
}

type promotionView struct {
	models.PromotionRecord
	Status string `json:"status"`
}

func viewOf(rec models.PromotionRecord) promotionView {
	return promotionView{PromotionRecord: rec, Status: rec.SyncLabel()}
}

func viewsOf(records []models.PromotionRecord) []promotionView {
	views := make([]promotionView, 0, len(records))
	for _, rec := range records {
		views = append(views, viewOf(rec))
	}
	return views
}

func mutationResponse(res promotions.Result) gin.H {
	body := gin.H{
		"promotion": viewOf(res.Record),
		"outcome":   res.Outcome,
	}
	if res.RemoteErr != nil {
		body["syncError"] = res.RemoteErr.Error()
	}
	return body
}

func (h *PromotionHandler) GetPromotions(c *gin.Context) {
	records := h.Store.List()
	c.JSON(http.StatusOK, gin.H{"promotions": viewsOf(records), "total": len(records)})
}

func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	rec, err := h.Store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}
	c.JSON(http.StatusOK, viewOf(rec))
}

// ReloadPromotions re-reads the slot and refreshes synced records.
func (h *PromotionHandler) ReloadPromotions(c *gin.Context) {
	if err := h.Store.Load(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload promotions"})
		return
	}
	h.GetPromotions(c)
}

func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	in, uploaded, ok := h.bindPromotion(c)
	if !ok {
		return
	}

	res, err := h.Store.Create(c.Request.Context(), in)
	if err != nil {
		h.discardUpload(c, uploaded)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save promotion"})
		return
	}

	c.JSON(http.StatusCreated, mutationResponse(res))
}

func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	id := c.Param("id")
	previous, err := h.Store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}

	in, uploaded, ok := h.bindPromotion(c)
	if !ok {
		return
	}

	res, err := h.Store.Update(c.Request.Context(), id, in)
	if errors.Is(err, promotions.ErrPromotionNotFound) {
		h.discardUpload(c, uploaded)
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}
	if err != nil {
		h.discardUpload(c, uploaded)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promotion"})
		return
	}

	// A failed remote update leaves the media item on the old video.
	if previous.VideoURL != res.Record.VideoURL && remoteReleased(res) {
		h.deleteOwnedVideo(c, previous.VideoURL)
	}

	c.JSON(http.StatusOK, mutationResponse(res))
}

func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	res, err := h.Store.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, promotions.ErrPromotionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete promotion"})
		return
	}

	if remoteReleased(res) {
		h.deleteOwnedVideo(c, res.Record.VideoURL)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Promotion deleted successfully",
		"outcome": res.Outcome,
	})
}

// bindPromotion validates the add/edit form. A multipart request may carry the
// video as a "video" file, which is uploaded before the store is touched.
func (h *PromotionHandler) bindPromotion(c *gin.Context) (models.PromotionInput, string, bool) {
	var req promotionRequest
	multipartForm := strings.HasPrefix(c.ContentType(), "multipart/form-data")

	var err error
	if multipartForm {
		err = c.ShouldBind(&req)
	} else {
		err = c.ShouldBindJSON(&req)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return models.PromotionInput{}, "", false
	}

	in := req.input()
	if in.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return models.PromotionInput{}, "", false
	}
	if err := utils.ValidateDateRange(in.StartDate, in.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.PromotionInput{}, "", false
	}

	var uploaded string
	if multipartForm {
		if fileHeader, err := c.FormFile("video"); err == nil {
			url, ok := h.uploadVideo(c, fileHeader)
			if !ok {
				return models.PromotionInput{}, "", false
			}
			in.VideoURL = url
			uploaded = url
		}
	}

	if in.VideoSource() == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A video file or video URL is required"})
		return models.PromotionInput{}, "", false
	}

	return in, uploaded, true
}

func (h *PromotionHandler) uploadVideo(c *gin.Context, fileHeader *multipart.FileHeader) (string, bool) {
	if err := utils.ValidateVideoUpload(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	if h.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Video upload is not configured"})
		return "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return "", false
	}
	defer file.Close()

	url, err := h.Storage.UploadPromotionVideo(
		c.Request.Context(),
		file,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		logger.GetGlobalLogger().WithContext(c.Request.Context()).Error("video upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Video upload failed"})
		return "", false
	}
	return url, true
}

// remoteReleased reports whether the remote media no longer needs the video
// the mutation replaced or removed.
func remoteReleased(res promotions.Result) bool {
	return res.Outcome != promotions.OutcomeRemoteFailed
}

func (h *PromotionHandler) discardUpload(c *gin.Context, url string) {
	if url != "" {
		h.deleteOwnedVideo(c, url)
	}
}

// deleteOwnedVideo removes a video from our bucket. Failures are only logged.
func (h *PromotionHandler) deleteOwnedVideo(c *gin.Context, url string) {
	if h.Storage == nil || url == "" {
		return
	}
	objectPath, ok := h.Storage.OwnedObjectPath(url)
	if !ok {
		return
	}
	if err := h.Storage.DeleteFile(c.Request.Context(), objectPath); err != nil {
		logger.GetGlobalLogger().WithContext(c.Request.Context()).Warn("failed to delete promotion video",
			zap.String("object", objectPath), zap.Error(err))
	}
}
