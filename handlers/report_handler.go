package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"relviz-backend/render"
	"relviz-backend/service"

	"github.com/gin-gonic/gin"
)

// formField is the name of the textarea holding the JSON document
const formField = "relations_json"

// ReportHandler handles HTTP requests for report rendering and export
type ReportHandler struct {
	reportService *service.ReportService
	maxInputBytes int64
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, maxInputBytes int64) *ReportHandler {
	if maxInputBytes <= 0 {
		maxInputBytes = 10 * 1024 * 1024 // 10MB
	}
	return &ReportHandler{
		reportService: reportService,
		maxInputBytes: maxInputBytes,
	}
}

// ShowForm handles GET /
func (h *ReportHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, render.PageTemplate, render.Page{})
}

// RenderReport handles POST /
func (h *ReportHandler) RenderReport(c *gin.Context) {
	input, ok := h.formInput(c)
	if !ok {
		return
	}

	page := render.Page{Input: input}
	if strings.TrimSpace(input) == "" {
		// nothing submitted yet, show the empty form
		c.HTML(http.StatusOK, render.PageTemplate, page)
		return
	}

	analysis, err := h.reportService.Analyze([]byte(input))
	if err != nil {
		status, _, message := describeInputError(err)
		page.Error = message
		c.HTML(status, render.PageTemplate, page)
		return
	}

	page.Report = analysis.Report
	c.HTML(http.StatusOK, render.PageTemplate, page)
}

// DownloadExport handles POST /export
func (h *ReportHandler) DownloadExport(c *gin.Context) {
	input, ok := h.formInput(c)
	if !ok {
		return
	}

	file, err := h.reportService.BuildExport([]byte(input))
	if err != nil {
		status, _, message := describeInputError(err)
		c.HTML(status, render.PageTemplate, render.Page{Input: input, Error: message})
		return
	}

	sendWorkbook(c, file)
}

// Analyze handles POST /api/relations/analyze
func (h *ReportHandler) Analyze(c *gin.Context) {
	raw, ok := h.readBody(c)
	if !ok {
		return
	}

	analysis, err := h.reportService.Analyze(raw)
	if err != nil {
		respondInputError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"blocks":    analysis.Report.Blocks,
			"totals":    analysis.Report.Totals,
			"aggregate": analysis.Aggregate,
		},
	})
}

// Export handles POST /api/relations/export
func (h *ReportHandler) Export(c *gin.Context) {
	raw, ok := h.readBody(c)
	if !ok {
		return
	}

	file, err := h.reportService.BuildExport(raw)
	if err != nil {
		respondInputError(c, err)
		return
	}

	sendWorkbook(c, file)
}

// formInput reads the submitted JSON text from a form post.
// On failure it renders the page with the error and returns false.
func (h *ReportHandler) formInput(c *gin.Context) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxInputBytes)
	if err := c.Request.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.HTML(http.StatusRequestEntityTooLarge, render.PageTemplate, render.Page{
				Error: fmt.Sprintf("Ошибка: объем введенных данных превышает %d байт", h.maxInputBytes),
			})
			return "", false
		}
		c.HTML(http.StatusBadRequest, render.PageTemplate, render.Page{
			Error: fmt.Sprintf("Ошибка: не удалось прочитать форму: %v", err),
		})
		return "", false
	}
	return c.Request.PostFormValue(formField), true
}

// readBody reads the raw request body, enforcing the size limit
func (h *ReportHandler) readBody(c *gin.Context) ([]byte, bool) {
	return readLimitedBody(c, h.maxInputBytes)
}

func readLimitedBody(c *gin.Context, limit int64) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	raw, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, "INPUT_TOO_LARGE",
				fmt.Sprintf("Input exceeds maximum of %d bytes", limit))
			return nil, false
		}
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return nil, false
	}
	return raw, true
}

func sendWorkbook(c *gin.Context, file *service.ExportFile) {
	c.Header("Content-Disposition", contentDisposition(file.Filename))
	c.Data(http.StatusOK, file.MimeType, file.Data)
}
