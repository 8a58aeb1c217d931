package http

import (
	"net/http"

	"golang-market-sentiment/internal/dashboard/dto"
	"golang-market-sentiment/internal/dashboard/service"
	"golang-market-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// QAHandler proxies the question-answering service.
type QAHandler struct {
	qa     service.QAService
	logger *logger.Logger
}

// NewQAHandler creates a new QAHandler.
func NewQAHandler(qa service.QAService, logger *logger.Logger) *QAHandler {
	return &QAHandler{qa: qa, logger: logger}
}

// RegisterRoutes registers the QA routes to the Echo group.
func (h *QAHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/documents", h.ListDocuments)
	g.POST("/answer", h.Answer)
}

// ListDocuments godoc
// @Summary List indexed documents
// @Tags qa
// @Produce  json
// @Success 200 {array} dto.QADocument
// @Failure 502 {object} dto.ErrorResponse
// @Router /qa/documents [post]
func (h *QAHandler) ListDocuments(c echo.Context) error {
	docs, err := h.qa.ListDocuments(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "Failed to fetch documents", err)
	}
	return c.JSON(http.StatusOK, docs)
}

// Answer godoc
// @Summary Ask a question
// @Tags qa
// @Accept  json
// @Produce  json
// @Param   request  body  dto.QAAnswerRequest true "Question"
// @Success 200 {object} dto.QAAnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /qa/answer [post]
func (h *QAHandler) Answer(c echo.Context) error {
	var req dto.QAAnswerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	answer, err := h.qa.Answer(c.Request().Context(), req.Prompt)
	if err != nil {
		return respondError(c, h.logger, "Failed to get answer", err)
	}
	return c.JSON(http.StatusOK, answer)
}
