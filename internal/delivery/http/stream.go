package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const streamKeepAlive = 20 * time.Second

// StreamOrders
// @Summary StreamOrders
// @Description Server-sent events. Every "orders" event carries the whole collection, the first one right away.
// @ID stream-orders
// @Produce text/event-stream
// @Success 200 {object} getAllOrdersResponse
// @Router /api/orders/stream [get]
func (h *Handler) StreamOrders(c *gin.Context) {
	ctx := c.Request.Context()
	feed := h.svc.Subscribe(ctx)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	ping := time.NewTicker(streamKeepAlive)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			c.SSEvent("ping", "")
			c.Writer.Flush()
		case snap, ok := <-feed:
			if !ok {
				return
			}
			c.SSEvent("orders", getAllOrdersResponse{Data: snap})
			c.Writer.Flush()
		}
	}
}
