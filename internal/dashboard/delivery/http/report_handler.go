package http

import (
	"net/http"
	"path/filepath"

	"golang-market-sentiment/internal/dashboard/dto"
	"golang-market-sentiment/internal/dashboard/service"
	"golang-market-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ReportHandler handles HTTP requests for sentiment reports.
type ReportHandler struct {
	reports service.SentimentReportService
	logger  *logger.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports service.SentimentReportService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// RegisterRoutes registers the report routes to the Echo group.
func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.GenerateReport)
	g.GET("/:tickers", h.GetReport)
}

// GenerateReport godoc
// @Summary Generate a sentiment report
// @Description Fetch the news feed, keep topics above the relevance threshold and render the result as PDF
// @Tags reports
// @Accept  json
// @Produce  json
// @Param   request  body  dto.SentimentReportRequest true "Report options"
// @Success 200 {object} dto.SentimentReportResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /reports/sentiment [post]
func (h *ReportHandler) GenerateReport(c echo.Context) error {
	var req dto.SentimentReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	res, err := h.reports.GenerateReport(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.logger, "Failed to generate report", err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetReport godoc
// @Summary Get a saved sentiment report
// @Description Serve the last rendered PDF for tickers, inline or as a download
// @Tags reports
// @Produce  application/pdf
// @Param   tickers   path  string true  "Comma separated tickers"
// @Param   download  query bool   false "Serve as attachment"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /reports/sentiment/{tickers} [get]
func (h *ReportHandler) GetReport(c echo.Context) error {
	path, err := h.reports.ReportFilePath(c.Param("tickers"))
	if err != nil {
		return respondError(c, h.logger, "Failed to find report", err)
	}

	name := filepath.Base(path)
	if c.QueryParam("download") == "true" {
		return c.Attachment(path, name)
	}
	return c.Inline(path, name)
}
