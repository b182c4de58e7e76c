package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blinds-orders/internal/models"
)

type setStatusRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

type previewRequest struct {
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	BaseSize models.BaseSize `json:"base_size"`
}

// CreateOrder
// @Summary CreateOrder
// @Description Creates an order from the sales console. Wooden orders get their cut list derived.
// @ID create-order
// @Accept json
// @Produce json
// @Param input body models.Draft true "order draft"
// @Success 201 {object} service.Created
// @Failure 400,422 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var d models.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	res, err := h.svc.CreateOrder(c.Request.Context(), d, actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// EditOrder
// @Summary EditOrder
// @Description Changes sales-editable fields. Order type and number cannot change.
// @ID edit-order
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param input body models.OrderEdit true "fields to change"
// @Success 200 {object} models.Order
// @Failure 400,404,422 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/orders/{id} [put]
func (h *Handler) EditOrder(c *gin.Context) {
	var e models.OrderEdit
	if err := c.ShouldBindJSON(&e); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	o, err := h.svc.EditOrder(c.Request.Context(), c.Param("id"), e, actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// SetOrderStatus
// @Summary SetOrderStatus
// @Description Sets any status directly, including backwards corrections. Audit logged.
// @ID set-order-status
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param input body setStatusRequest true "new status"
// @Success 200 {object} models.Order
// @Failure 400,404,422 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/orders/{id}/status [put]
func (h *Handler) SetOrderStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	o, err := h.svc.SetOrderStatus(c.Request.Context(), c.Param("id"), req.Status, actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// PreviewWoodenSpec
// @Summary PreviewWoodenSpec
// @Description Computes the wooden cut list without saving anything
// @ID preview-wooden-spec
// @Accept json
// @Produce json
// @Param input body previewRequest true "dimensions"
// @Success 200 {object} models.WoodenSpec
// @Failure 400,422 {object} errorResponse
// @Router /api/orders/preview [post]
func (h *Handler) PreviewWoodenSpec(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	spec, err := h.svc.PreviewWoodenSpec(req.Width, req.Height, req.BaseSize)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, spec)
}

// GetOrderById
// @Summary GetOrderById
// @Description Allows to get a specific order via its id
// @ID get-order-by-id
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} models.Order
// @Failure 400,404 {object} errorResponse
// @Failure default {object} errorResponse
// @Router /api/orders/{id} [get]
func (h *Handler) GetOrderById(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		newErrorResponse(c, http.StatusBadRequest, "invalid id")
		return
	}
	o, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// GetAllOrders
// @Summary GetAllOrders
// @Description Allows to get all orders sorted by order number
// @ID get-all-orders
// @Produce json
// @Success 200 {object} getAllOrdersResponse
// @Failure default {object} errorResponse
// @Router /api/orders [get]
func (h *Handler) GetAllOrders(c *gin.Context) {
	c.JSON(http.StatusOK, getAllOrdersResponse{
		Data: h.svc.ListOrders(c.Request.Context()),
	})
}
