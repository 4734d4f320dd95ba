package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/studytrack/studytrack-api/internal/service"
	"github.com/studytrack/studytrack-api/pkg/response"
)

// ReportHandler exposes grade report export endpoints.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// GradeReport godoc
// @Summary Download the grade report
// @Tags Reports
// @Produce octet-stream
// @Param format query string false "Report format: csv or pdf (default csv)"
// @Success 200
// @Router /reports/grades [get]
func (h *ReportHandler) GradeReport(c *gin.Context) {
	format := c.DefaultQuery("format", service.ReportFormatCSV)
	result, err := h.reports.GenerateGradeReport(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(200, result.ContentType, result.Content)
}
