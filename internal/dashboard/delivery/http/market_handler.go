package http

import (
	"net/http"
	"strconv"

	"golang-market-sentiment/internal/dashboard/config"
	"golang-market-sentiment/internal/dashboard/dto"
	"golang-market-sentiment/internal/dashboard/service"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/common"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/utils"

	"github.com/labstack/echo/v4"
)

// MarketHandler handles HTTP requests for market data.
type MarketHandler struct {
	cfg    *config.Config
	market service.MarketDataService
	logger *logger.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(cfg *config.Config, market service.MarketDataService, logger *logger.Logger) *MarketHandler {
	return &MarketHandler{cfg: cfg, market: market, logger: logger}
}

// RegisterRoutes registers the market data routes to the Echo group.
func (h *MarketHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/options", h.GetOptions)
	g.GET("/stocks/:symbol/series", h.GetStockSeries)
	g.POST("/stocks/series", h.FetchStockSeriesBatch)
	g.GET("/market/movers", h.GetTopMovers)
	g.GET("/news/sentiment", h.GetNewsSentiment)
}

// GetOptions godoc
// @Summary Dashboard options
// @Description Popular symbols, intervals, sort orders and the default relevance threshold
// @Tags market
// @Produce  json
// @Success 200 {object} dto.OptionsResponse
// @Router /options [get]
func (h *MarketHandler) GetOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.OptionsResponse{
		PopularSymbols:            common.PopularSymbols,
		Intervals:                 entity.Intervals,
		SortOrders:                dto.SortOrders,
		DefaultInterval:           entity.DefaultInterval,
		DefaultNewsLimit:          h.cfg.Report.NewsLimit,
		DefaultRelevanceThreshold: h.cfg.Report.RelevanceThreshold,
	})
}

// GetStockSeries godoc
// @Summary Fetch an intraday series
// @Description Fetch the intraday series for one symbol and save it as CSV
// @Tags market
// @Produce  json
// @Param   symbol    path   string true  "Ticker symbol"
// @Param   interval  query  string false "1min, 5min, 15min, 30min or 60min"
// @Success 200 {object} dto.StockSeriesResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /stocks/{symbol}/series [get]
func (h *MarketHandler) GetStockSeries(c echo.Context) error {
	res, err := h.market.FetchStockSeries(c.Request().Context(), c.Param("symbol"), c.QueryParam("interval"))
	if err != nil {
		return respondError(c, h.logger, "Failed to fetch stock series", err)
	}
	return c.JSON(http.StatusOK, res)
}

// FetchStockSeriesBatch godoc
// @Summary Fetch or compare several series
// @Description Fetch the intraday series for every selected and manually entered symbol, one after another
// @Tags market
// @Accept  json
// @Produce  json
// @Param   request  body  dto.StockSeriesBatchRequest true "Symbols and interval"
// @Success 200 {array} dto.StockSeriesResult
// @Failure 400 {object} dto.ErrorResponse
// @Router /stocks/series [post]
func (h *MarketHandler) FetchStockSeriesBatch(c echo.Context) error {
	var req dto.StockSeriesBatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	symbols := utils.ParseSymbols(req.Symbols, req.ManualSymbols)
	results, err := h.market.FetchStockSeriesBatch(c.Request().Context(), symbols, req.Interval)
	if err != nil {
		return respondError(c, h.logger, "Failed to fetch stock series", err)
	}
	return c.JSON(http.StatusOK, results)
}

// GetTopMovers godoc
// @Summary Top gainers and losers
// @Description Fetch today's top gainers, losers and most actively traded tickers and save them as CSV
// @Tags market
// @Produce  json
// @Success 200 {object} dto.MarketMoversResult
// @Failure 502 {object} dto.ErrorResponse
// @Router /market/movers [get]
func (h *MarketHandler) GetTopMovers(c echo.Context) error {
	res, err := h.market.FetchTopMovers(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, "Failed to fetch market movers", err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetNewsSentiment godoc
// @Summary Fetch a news sentiment feed
// @Description Fetch the news sentiment feed for tickers and save the raw feed as JSON
// @Tags news
// @Produce  json
// @Param   tickers query string true  "Comma separated tickers"
// @Param   topics  query string false "Topic filter"
// @Param   limit   query int    false "Number of articles, 1 to 1000"
// @Param   sort    query string false "LATEST, EARLIEST or RELEVANCE"
// @Success 200 {object} dto.NewsSentimentResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /news/sentiment [get]
func (h *MarketHandler) GetNewsSentiment(c echo.Context) error {
	param := dto.NewsSentimentParam{
		Tickers: c.QueryParam("tickers"),
		Topics:  c.QueryParam("topics"),
		Sort:    c.QueryParam("sort"),
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid limit"})
		}
		param.Limit = limit
	}

	res, err := h.market.FetchNewsSentiment(c.Request().Context(), param)
	if err != nil {
		return respondError(c, h.logger, "Failed to fetch news sentiment", err)
	}
	return c.JSON(http.StatusOK, res)
}
