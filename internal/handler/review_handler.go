package handler

import (
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clausesync/internal/service"
)

// ReviewHandler handles contract review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Submit handles POST /api/v1/reviews
// @Summary Submit a contract for review
// @Description Upload a contract (PDF, DOC, or TXT) and run the AI review pipeline
// @Tags reviews
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Contract to review (PDF, DOC, or TXT)"
// @Success 201 {object} APIResponse "Completed review with report"
// @Failure 400 {object} APIResponse "Missing file or unsupported type"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 503 {object} APIResponse "Completion endpoint not configured"
// @Security BearerAuth
// @Router /reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
		return
	}

	rev, err := h.reviewService.Submit(c.Request.Context(), service.SubmitReviewInput{
		FileName:    header.Filename,
		Data:        data,
		RequestedBy: userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rev)
}

// List handles GET /api/v1/reviews
// @Summary List reviews
// @Description List contract reviews, most recent first, with pagination
// @Tags reviews
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} APIResponse "Page of reviews"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.reviewService.List(c.Request.Context(), page, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, result.Reviews, PagMeta{Total: result.Total, Page: result.Page, Limit: result.Limit})
}

// GetByID handles GET /api/v1/reviews/:id
// @Summary Get review by ID
// @Description Get one review including its report, warnings, and a presigned URL for the archived contract
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID (UUID)"
// @Success 200 {object} APIResponse "Review"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Review not found"
// @Security BearerAuth
// @Router /reviews/{id} [get]
func (h *ReviewHandler) GetByID(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid review ID")
		return
	}

	rev, err := h.reviewService.GetByID(c.Request.Context(), reviewID)
	if err != nil {
		HandleError(c, err)
		return
	}

	contractURL, err := h.reviewService.GetContractURL(c.Request.Context(), rev)
	if err != nil {
		// The report is still useful without the archived original.
		log.Printf("reviewHandler.GetByID: presigning contract for %s: %v", rev.ID, err)
		contractURL = ""
	}

	RespondOK(c, gin.H{
		"review":       rev,
		"contract_url": contractURL,
	})
}

// DownloadContract handles GET /api/v1/reviews/:id/contract
// @Summary Download the original contract
// @Description Download the archived original upload for a review
// @Tags reviews
// @Produce octet-stream
// @Param id path string true "Review ID (UUID)"
// @Success 200 {file} binary "Original contract"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Review not found or contract not archived"
// @Security BearerAuth
// @Router /reviews/{id}/contract [get]
func (h *ReviewHandler) DownloadContract(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid review ID")
		return
	}

	file, err := h.reviewService.DownloadContract(c.Request.Context(), reviewID)
	if err != nil {
		HandleError(c, err)
		return
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, contentType, file.Data)
}

// Delete handles DELETE /api/v1/reviews/:id
// @Summary Delete a review
// @Description Delete a review and its archived contract (admin only)
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID (UUID)"
// @Success 200 {object} APIResponse "Review deleted"
// @Failure 400 {object} APIResponse "Invalid ID"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 403 {object} APIResponse "Forbidden"
// @Failure 404 {object} APIResponse "Review not found"
// @Security BearerAuth
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid review ID")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), reviewID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "review deleted"})
}

// Export handles GET /api/v1/reviews/:id/export
// @Summary Export a review as XLSX
// @Description Download the review report as an Excel workbook
// @Tags reviews
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Review ID (UUID)"
// @Success 200 {file} binary "XLSX workbook"
// @Failure 400 {object} APIResponse "Invalid ID or review not completed"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Failure 404 {object} APIResponse "Review not found"
// @Security BearerAuth
// @Router /reviews/{id}/export [get]
func (h *ReviewHandler) Export(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid review ID")
		return
	}

	data, fileName, err := h.reviewService.ExportXLSX(c.Request.Context(), reviewID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
