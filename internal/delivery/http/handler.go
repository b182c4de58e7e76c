package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "blinds-orders/docs"
	"blinds-orders/internal/models"
	"blinds-orders/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handler struct {
	svc     service.Order
	secret  string
	metrics http.Handler
}

type Option func(*Handler)

// WithAuthSecret turns on bearer token auth for the API.
func WithAuthSecret(secret string) Option { return func(h *Handler) { h.secret = secret } }

// WithMetricsHandler serves m at /metrics instead of the default registry.
func WithMetricsHandler(m http.Handler) Option { return func(h *Handler) { h.metrics = m } }

func NewHandler(s service.Order, opts ...Option) *Handler {
	h := &Handler{svc: s, metrics: promhttp.Handler()}
	for _, o := range opts {
		o(h)
	}
	return h
}

type getAllOrdersResponse struct {
	Data []models.Order `json:"data"`
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.Default()

	api := router.Group("/api", authenticate(h.secret))
	{
		api.GET("/orders", h.GetAllOrders)
		api.GET("/orders/stream", h.StreamOrders)
		api.GET("/orders/:id", h.GetOrderById)

		sales := api.Group("/orders", requireRole(RoleSales))
		sales.POST("", h.CreateOrder)
		sales.POST("/preview", h.PreviewWoodenSpec)
		sales.PUT("/:id", h.EditOrder)
		sales.PUT("/:id/status", h.SetOrderStatus)

		production := api.Group("/production", requireRole(RoleProduction, RoleSales))
		production.GET("/orders", h.GetProductionQueue)
		production.POST("/orders/:id/advance", h.AdvanceOrder)
	}

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			newErrorResponse(c, http.StatusNotFound, "not found")
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, "/swagger/index.html")
	})

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.GET("/metrics", gin.WrapH(h.metrics))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
