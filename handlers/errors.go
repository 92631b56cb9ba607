package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"relviz-backend/repository"
	"relviz-backend/service"
	"relviz-backend/storage"

	"github.com/gin-gonic/gin"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// describeInputError maps a pipeline error to a status, code and user-facing message
func describeInputError(err error) (int, string, string) {
	var inputErr *service.InputError
	switch {
	case errors.Is(err, service.ErrMalformedInput):
		return http.StatusBadRequest, "MALFORMED_JSON",
			fmt.Sprintf("Ошибка: неверный формат JSON. Проверьте введенные данные. Детали ошибки: %v", err)
	case errors.As(err, &inputErr), errors.Is(err, service.ErrProcessing):
		return http.StatusUnprocessableEntity, "PROCESSING_FAILED",
			fmt.Sprintf("Ошибка при обработке данных: %v", err)
	default:
		return http.StatusInternalServerError, "EXPORT_FAILED",
			fmt.Sprintf("Ошибка при обработке данных: %v", err)
	}
}

func respondInputError(c *gin.Context, err error) {
	status, code, message := describeInputError(err)
	respondError(c, status, code, message)
}

// respondArchiveError maps export archive failures onto HTTP responses
func respondArchiveError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrArchiveUnavailable):
		respondError(c, http.StatusServiceUnavailable, "ARCHIVE_UNAVAILABLE", "Export archive is not configured")
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Export not found")
	case errors.Is(err, service.ErrMalformedInput), errors.Is(err, service.ErrProcessing):
		respondInputError(c, err)
	default:
		respondError(c, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
	}
}

// contentDisposition builds an attachment header that survives non-ASCII filenames
func contentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=\"export.xlsx\"; filename*=UTF-8''%s", url.PathEscape(filename))
}
