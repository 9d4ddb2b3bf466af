package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taizguy/zamapedia/internal/page/domain"
	"github.com/taizguy/zamapedia/internal/page/relay"
	"github.com/taizguy/zamapedia/internal/page/service"
	"github.com/taizguy/zamapedia/pkg/validator"
)

type HTTPHandler struct {
	service *service.PageService
	relay   *relay.Relay
	logger  *zap.Logger
}

func NewHTTPHandler(service *service.PageService, aiRelay *relay.Relay, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		service: service,
		relay:   aiRelay,
		logger:  logger,
	}
}

func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/health", h.Health)
	router.GET("/api/fetch", h.FetchPage)
	router.POST("/api/ai", h.Ask)

	api := router.Group("/api/v1")
	{
		api.GET("/history", h.History)
	}
}

func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "ts": time.Now().UnixMilli()})
}

func (h *HTTPHandler) FetchPage(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing url parameter"})
		return
	}

	resp, err := h.service.FetchPage(c.Request.Context(), rawURL)
	if err != nil {
		h.writeFetchError(c, rawURL, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// writeFetchError maps pipeline failures onto the JSON error envelope:
// client errors 400, upstream non-2xx 502, timeout 504, the rest 500.
func (h *HTTPHandler) writeFetchError(c *gin.Context, rawURL string, err error) {
	var upstream *domain.UpstreamError

	switch {
	case errors.Is(err, validator.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid url"})
	case errors.Is(err, validator.ErrUnsupportedScheme):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "only http/https allowed"})
	case errors.Is(err, domain.ErrFetchTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"ok": false, "error": "fetch timeout"})
	case errors.As(err, &upstream):
		c.JSON(http.StatusBadGateway, gin.H{
			"ok":         false,
			"status":     upstream.Status,
			"statusText": upstream.StatusText,
		})
	default:
		h.logger.Error("Failed to fetch page",
			zap.Error(err), zap.String("url", rawURL))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
	}
}

func (h *HTTPHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	records, err := h.service.History(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to get fetch history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"history": records,
		"limit":   limit,
		"offset":  offset,
	})
}

type askRequest struct {
	Query string `json:"query"`
}

func (h *HTTPHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}

	resp, err := h.relay.Ask(c.Request.Context(), req.Query)
	if err != nil {
		h.logger.Error("Relay call failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}
