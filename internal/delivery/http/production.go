package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"blinds-orders/internal/models"
)

type advanceResponse struct {
	Order    models.Order `json:"order"`
	Advanced bool         `json:"advanced"`
}

// GetProductionQueue
// @Summary GetProductionQueue
// @Description Orders the floor still has to work on, completed ones excluded
// @ID get-production-queue
// @Produce json
// @Success 200 {object} getAllOrdersResponse
// @Router /api/production/orders [get]
func (h *Handler) GetProductionQueue(c *gin.Context) {
	c.JSON(http.StatusOK, getAllOrdersResponse{
		Data: h.svc.ProductionQueue(c.Request.Context()),
	})
}

// AdvanceOrder
// @Summary AdvanceOrder
// @Description Moves an order one step forward. A completed order is returned with advanced=false.
// @ID advance-order
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} advanceResponse
// @Failure 404 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/production/orders/{id}/advance [post]
func (h *Handler) AdvanceOrder(c *gin.Context) {
	o, advanced, err := h.svc.AdvanceOrder(c.Request.Context(), c.Param("id"), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, advanceResponse{Order: o, Advanced: advanced})
}
