package handlers

import (
	"net/http"
	"strconv"

	"relviz-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExportHandler handles HTTP requests for archived exports
type ExportHandler struct {
	reportService *service.ReportService
	maxInputBytes int64
}

// NewExportHandler creates a new export handler
func NewExportHandler(reportService *service.ReportService, maxInputBytes int64) *ExportHandler {
	if maxInputBytes <= 0 {
		maxInputBytes = 10 * 1024 * 1024 // 10MB
	}
	return &ExportHandler{
		reportService: reportService,
		maxInputBytes: maxInputBytes,
	}
}

// CreateExport handles POST /api/exports
func (h *ExportHandler) CreateExport(c *gin.Context) {
	raw, ok := readLimitedBody(c, h.maxInputBytes)
	if !ok {
		return
	}

	export, err := h.reportService.ArchiveExport(c.Request.Context(), raw)
	if err != nil {
		respondArchiveError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    export,
	})
}

// ListExports handles GET /api/exports
func (h *ExportHandler) ListExports(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer")
			return
		}
		limit = n
	}

	exports, err := h.reportService.ListExports(c.Request.Context(), limit)
	if err != nil {
		respondArchiveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    exports,
	})
}

// GetExport handles GET /api/exports/:id
func (h *ExportHandler) GetExport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid export ID format")
		return
	}

	export, reader, err := h.reportService.GetExport(c.Request.Context(), id)
	if err != nil {
		respondArchiveError(c, err)
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, export.Size, export.MimeType, reader, map[string]string{
		"Content-Disposition": contentDisposition(export.Filename),
	})
}

// DeleteExport handles DELETE /api/exports/:id
func (h *ExportHandler) DeleteExport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid export ID format")
		return
	}

	if err := h.reportService.DeleteExport(c.Request.Context(), id); err != nil {
		respondArchiveError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Export deleted successfully",
	})
}
