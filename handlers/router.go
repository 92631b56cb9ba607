package handlers

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

// NewRouter wires report and export handlers onto a gin engine
func NewRouter(reportHandler *ReportHandler, exportHandler *ExportHandler, tmpl *template.Template) *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(tmpl)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// HTML form
	r.GET("/", reportHandler.ShowForm)
	r.POST("/", reportHandler.RenderReport)
	r.POST("/export", reportHandler.DownloadExport)

	// API routes
	api := r.Group("/api")
	{
		api.POST("/relations/analyze", reportHandler.Analyze)
		api.POST("/relations/export", reportHandler.Export)

		api.POST("/exports", exportHandler.CreateExport)
		api.GET("/exports", exportHandler.ListExports)
		api.GET("/exports/:id", exportHandler.GetExport)
		api.DELETE("/exports/:id", exportHandler.DeleteExport)
	}

	return r
}
