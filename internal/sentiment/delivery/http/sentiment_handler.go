package http

import (
	"net/http"

	"reddit-stock-sentiment/internal/entity"
	"reddit-stock-sentiment/internal/sentiment/dto"
	"reddit-stock-sentiment/internal/sentiment/service"
	"reddit-stock-sentiment/pkg/apperror"
	"reddit-stock-sentiment/pkg/logger"
	"reddit-stock-sentiment/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// SentimentHandler handles HTTP requests for sentiment analysis.
type SentimentHandler struct {
	sentimentService service.SentimentService
	logger           *logger.Logger
}

// NewSentimentHandler creates a new SentimentHandler.
func NewSentimentHandler(sentimentService service.SentimentService, logger *logger.Logger) *SentimentHandler {
	return &SentimentHandler{sentimentService: sentimentService, logger: logger}
}

// RegisterRoutes registers the page, analysis and health routes on the Echo instance.
func (h *SentimentHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.POST("/analyze", h.Analyze)
	e.GET("/health", h.Health)

	apiV1 := e.Group("/api/v1")
	apiV1.GET("/options", h.GetOptions)
}

// Index renders the stock and subreddit selection page.
func (h *SentimentHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", dto.OptionsResponse{
		Stocks:     entity.Stocks(),
		Subreddits: entity.Subreddits(),
	})
}

// Analyze godoc
// @Summary Analyze stock sentiment
// @Description Score the top and newest posts mentioning a stock in a subreddit
// @Tags sentiment
// @Accept  json
// @Produce  json
// @Param   request  body    dto.AnalyzeRequest   true    "Stock and subreddit to analyze"
// @Success 200 {object} dto.AnalyzeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /analyze [post]
func (h *SentimentHandler) Analyze(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		h.logger.WarnContext(ctx, "Invalid analyze payload", logger.ErrorField(err))
		metrics.AnalysesTotal.WithLabelValues(string(apperror.TypeValidation)).Inc()
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: service.MsgMissingSelection})
	}

	resp, err := h.sentimentService.Analyze(ctx, &req)
	if err != nil {
		appErr := apperror.As(err)
		metrics.AnalysesTotal.WithLabelValues(string(appErr.Type)).Inc()
		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "Failed to analyze sentiment",
				logger.ErrorField(err),
				logger.StringField("stock", req.Stock),
				logger.StringField("subreddit", req.Subreddit),
			)
		}
		return c.JSON(appErr.HTTPStatus(), dto.ErrorResponse{Error: appErr.Error()})
	}

	metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, resp)
}

// GetOptions godoc
// @Summary List selectable stocks and subreddits
// @Description Get the stock tickers and subreddits offered by the selection page
// @Tags sentiment
// @Produce  json
// @Success 200 {object} dto.OptionsResponse
// @Router /api/v1/options [get]
func (h *SentimentHandler) GetOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.OptionsResponse{
		Stocks:     entity.Stocks(),
		Subreddits: entity.Subreddits(),
	})
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *SentimentHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
