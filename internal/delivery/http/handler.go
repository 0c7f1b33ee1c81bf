package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/macrolens/calorizator/internal/domain"
)

// ProductService is the part of the parser the API exposes
type ProductService interface {
	PageAmount() int
	ParsePage(ctx context.Context, page int) (domain.PageResult, error)
	SearchProducts(ctx context.Context, query string) (map[string]domain.SearchMatch, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products ProductService
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(products ProductService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{products: products, logger: logger}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "calorizator-parser",
		"version": "1.0.0",
	})
}

// SearchProducts handles GET /api/v1/products/search?q=<query>
func (h *Handler) SearchProducts(c *gin.Context) {
	if h.products == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "product search not configured"})
		return
	}

	matches, err := h.products.SearchProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// PageAmount handles GET /api/v1/pages
func (h *Handler) PageAmount(c *gin.Context) {
	if h.products == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "product search not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pages": h.products.PageAmount()})
}

// GetPage handles GET /api/v1/pages/:page
func (h *Handler) GetPage(c *gin.Context) {
	if h.products == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "product search not configured"})
		return
	}

	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		h.respondError(c, domain.ErrInvalidRequest)
		return
	}
	if page < 0 || page >= h.products.PageAmount() {
		h.respondError(c, domain.ErrPageOutOfRange)
		return
	}

	result, err := h.products.ParsePage(c.Request.Context(), page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondError maps domain errors to status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnknownLetter), errors.Is(err, domain.ErrPageOutOfRange):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrFetch), errors.Is(err, domain.ErrParse), errors.Is(err, domain.ErrTableNotFound):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
