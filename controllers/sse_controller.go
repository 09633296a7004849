package controllers

import (
	"io"

	"table-order/services"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

type SSEController struct {
	broker *services.EventBroker
}

func NewSSEController(broker *services.EventBroker) *SSEController {
	return &SSEController{broker: broker}
}

// @Summary Order event stream
// @Description Server-Sent Events stream of the table's order lifecycle
// @Tags Events
// @Security BearerAuth
// @Produce text/event-stream
// @Success 200
// @Router /events [get]
func (ctrl *SSEController) StreamOrders(c *gin.Context) {
	tableID := c.GetInt("table_id")

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	sub := ctrl.broker.Subscribe(tableID)
	defer ctrl.broker.Unsubscribe(sub)

	c.Stream(func(w io.Writer) bool {
		event, err := sub.Next(c.Request.Context())
		if err != nil {
			// Client went away or broker shut down.
			return false
		}
		if event == nil {
			// Keep-alive comment frame so proxies don't drop the connection.
			io.WriteString(w, ":\n\n")
			return true
		}

		sse.Encode(w, sse.Event{
			Event: event.Type,
			Data:  event,
		})
		return true
	})
}
