package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pubsub"

	"github.com/labstack/echo/v4"
)

// StreamHub serves the live channels over Server-Sent Events. Each request
// gets its own registry subscription; the subscription is closed when the
// client disconnects, so an abandoned stream frees its slot immediately.
type StreamHub struct {
	registry *pubsub.Registry
}

// NewStreamHub creates a hub backed by the channel registry.
func NewStreamHub(registry *pubsub.Registry) *StreamHub {
	return &StreamHub{registry: registry}
}

// StreamOrderStatus handles GET /api/v1/users/:userId/order-status/stream -
// pushes status change messages for every order belonging to the user.
func (h *StreamHub) StreamOrderStatus(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("userId"))
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}

	return h.stream(ctx, pubsub.OrderStatusTopic(userID))
}

// StreamOrderLocation handles GET /api/v1/orders/:orderId/location/stream -
// pushes the courier's live position for one order.
func (h *StreamHub) StreamOrderLocation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	return h.stream(ctx, pubsub.OrderLocationTopic(orderID))
}

// StreamCourierAlerts handles GET /api/v1/couriers/:deliveryPersonId/alerts/stream -
// pushes new-order alerts to a courier.
func (h *StreamHub) StreamCourierAlerts(ctx echo.Context) error {
	deliveryPersonID, err := kernel.UUIDFromString(ctx.Param("deliveryPersonId"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery person id: "+err.Error())
	}

	return h.stream(ctx, pubsub.CourierAlertTopic(deliveryPersonID))
}

// stream subscribes to one topic and relays every payload as an SSE data
// frame until the client goes away or the subscription is closed.
func (h *StreamHub) stream(ctx echo.Context, topic string) error {
	sub := h.registry.Subscribe(topic)
	defer sub.Close()

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	done := ctx.Request().Context().Done()

	for {
		select {
		case <-done:
			return nil
		case msg, ok := <-sub.Messages():
			if !ok {
				return nil
			}
			if err := writeEvent(res, msg.Payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

// writeEvent serializes one payload as a single SSE data frame.
func writeEvent(res *echo.Response, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(res, "data: %s\n\n", data)
	return err
}
