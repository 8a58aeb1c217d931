package http

import (
	"net/http"

	"golang-market-sentiment/internal/dashboard/service"
	"golang-market-sentiment/pkg/logger"

	"github.com/labstack/echo/v4"
)

// FileHandler serves the saved data files.
type FileHandler struct {
	market service.MarketDataService
	logger *logger.Logger
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(market service.MarketDataService, logger *logger.Logger) *FileHandler {
	return &FileHandler{market: market, logger: logger}
}

// RegisterRoutes registers the file routes to the Echo group.
func (h *FileHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListFiles)
	g.GET("/:name", h.DownloadFile)
}

// ListFiles godoc
// @Summary List saved data files
// @Tags files
// @Produce  json
// @Success 200 {array} dto.SavedFileResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /files [get]
func (h *FileHandler) ListFiles(c echo.Context) error {
	files, err := h.market.ListSavedFiles(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "Failed to list files", err)
	}
	return c.JSON(http.StatusOK, files)
}

// DownloadFile godoc
// @Summary Download a saved data file
// @Tags files
// @Produce  octet-stream
// @Param   name  path  string true "File name"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /files/{name} [get]
func (h *FileHandler) DownloadFile(c echo.Context) error {
	name := c.Param("name")
	path, err := h.market.SavedFilePath(name)
	if err != nil {
		return respondError(c, h.logger, "Failed to find file", err)
	}
	return c.Attachment(path, name)
}
