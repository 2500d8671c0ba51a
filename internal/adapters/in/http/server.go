package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the fulfillment use cases over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	acceptOrderHandler           commands.AcceptOrderCommandHandler
	advanceOrderHandler          commands.AdvanceOrderCommandHandler
	reportLocationHandler        commands.ReportLocationCommandHandler
	updateCourierLocationHandler commands.UpdateCourierLocationCommandHandler
	markNotificationsReadHandler commands.MarkNotificationsReadCommandHandler

	// Query handlers
	getOrderNotificationsHandler queries.GetOrderNotificationsQueryHandler
	getActiveDeliveriesHandler   queries.GetActiveDeliveriesQueryHandler

	streams *StreamHub
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	advanceOrderHandler commands.AdvanceOrderCommandHandler,
	reportLocationHandler commands.ReportLocationCommandHandler,
	updateCourierLocationHandler commands.UpdateCourierLocationCommandHandler,
	markNotificationsReadHandler commands.MarkNotificationsReadCommandHandler,
	getOrderNotificationsHandler queries.GetOrderNotificationsQueryHandler,
	getActiveDeliveriesHandler queries.GetActiveDeliveriesQueryHandler,
	streams *StreamHub,
) *Server {
	return &Server{
		acceptOrderHandler:           acceptOrderHandler,
		advanceOrderHandler:          advanceOrderHandler,
		reportLocationHandler:        reportLocationHandler,
		updateCourierLocationHandler: updateCourierLocationHandler,
		markNotificationsReadHandler: markNotificationsReadHandler,
		getOrderNotificationsHandler: getOrderNotificationsHandler,
		getActiveDeliveriesHandler:   getActiveDeliveriesHandler,
		streams:                      streams,
	}
}

// RegisterRoutes attaches every API route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders/:orderId/accept", s.AcceptOrder)
	api.POST("/orders/:orderId/status", s.AdvanceOrderStatus)
	api.POST("/orders/:orderId/location", s.ReportLocation)
	api.PUT("/couriers/:deliveryPersonId/location", s.UpdateCourierLocation)
	api.POST("/orders/:orderId/notifications/read", s.MarkNotificationsRead)
	api.GET("/orders/:orderId/notifications", s.GetOrderNotifications)
	api.GET("/couriers/:deliveryPersonId/deliveries", s.GetActiveDeliveries)

	if s.streams != nil {
		api.GET("/users/:userId/order-status/stream", s.streams.StreamOrderStatus)
		api.GET("/orders/:orderId/location/stream", s.streams.StreamOrderLocation)
		api.GET("/couriers/:deliveryPersonId/alerts/stream", s.streams.StreamCourierAlerts)
	}
}

// AcceptOrderRequest is the body for POST /orders/:orderId/accept.
type AcceptOrderRequest struct {
	CourierUserID string `json:"courierUserId"`
}

// AcceptOrderResponse describes the settlement record created for the
// winning courier.
type AcceptOrderResponse struct {
	ID               string `json:"id"`
	OrderID          string `json:"orderId"`
	DeliveryPersonID string `json:"deliveryPersonId"`
	GeneratedOrderID string `json:"generatedOrderId"`
	DeliveryAmount   int64  `json:"deliveryAmount"`
	PaymentStatus    string `json:"paymentStatus"`
	PaymentMethod    string `json:"paymentMethod"`
}

// AcceptOrder handles POST /api/v1/orders/:orderId/accept - a courier claims
// an order. Exactly one caller wins; everyone else receives a conflict.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req AcceptOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierUserID, err := kernel.UUIDFromString(req.CourierUserID)
	if err != nil {
		return badRequest(ctx, "Invalid courier user id: "+err.Error())
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, courierUserID)
	if err != nil {
		return badRequest(ctx, "Invalid acceptance data: "+err.Error())
	}

	record, err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AcceptOrderResponse{
		ID:               record.ID().String(),
		OrderID:          record.OrderID().String(),
		DeliveryPersonID: record.DeliveryPersonID().String(),
		GeneratedOrderID: record.GeneratedOrderID(),
		DeliveryAmount:   record.DeliveryAmount(),
		PaymentStatus:    record.PaymentStatus(),
		PaymentMethod:    record.PaymentMethod(),
	})
}

// AdvanceOrderStatusRequest is the body for POST /orders/:orderId/status.
type AdvanceOrderStatusRequest struct {
	Status string `json:"status"`
}

// AdvanceOrderStatus handles POST /api/v1/orders/:orderId/status - moves an
// assigned order one step along the delivery lifecycle.
func (s *Server) AdvanceOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req AdvanceOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return badRequest(ctx, "Unknown order status: "+req.Status)
	}

	cmd, err := commands.NewAdvanceOrderCommand(orderID, target)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	if err = s.advanceOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportLocationRequest is the body for POST /orders/:orderId/location.
type ReportLocationRequest struct {
	DeliveryPersonID string  `json:"deliveryPersonId"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

// ReportLocation handles POST /api/v1/orders/:orderId/location - a courier
// device pushes one position sample onto the order's live stream.
func (s *Server) ReportLocation(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req ReportLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	deliveryPersonID, err := kernel.UUIDFromString(req.DeliveryPersonID)
	if err != nil {
		return badRequest(ctx, "Invalid delivery person id: "+err.Error())
	}

	cmd, err := commands.NewReportLocationCommand(orderID, deliveryPersonID, req.Latitude, req.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid location data: "+err.Error())
	}

	if err = s.reportLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// UpdateCourierLocationRequest is the body for PUT /couriers/:deliveryPersonId/location.
type UpdateCourierLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// UpdateCourierLocation handles PUT /api/v1/couriers/:deliveryPersonId/location -
// persists the courier's position and optional address on their record.
func (s *Server) UpdateCourierLocation(ctx echo.Context) error {
	deliveryPersonID, err := kernel.UUIDFromString(ctx.Param("deliveryPersonId"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery person id: "+err.Error())
	}

	var req UpdateCourierLocationRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(
		deliveryPersonID, req.Latitude, req.Longitude, req.Address,
	)
	if err != nil {
		return badRequest(ctx, "Invalid location data: "+err.Error())
	}

	if err = s.updateCourierLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkNotificationsReadResponse reports how many feed entries were flipped.
type MarkNotificationsReadResponse struct {
	Marked int64 `json:"marked"`
}

// MarkNotificationsRead handles POST /api/v1/orders/:orderId/notifications/read.
func (s *Server) MarkNotificationsRead(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewMarkNotificationsReadCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	marked, err := s.markNotificationsReadHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, MarkNotificationsReadResponse{Marked: marked})
}

// NotificationResponse is one entry of the persisted notification feed.
type NotificationResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	Amount    int64  `json:"amount"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

// GetOrderNotifications handles GET /api/v1/orders/:orderId/notifications -
// returns the order's feed, oldest first.
func (s *Server) GetOrderNotifications(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderNotificationsQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	entries, err := s.getOrderNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]NotificationResponse, len(entries))
	for i, entry := range entries {
		response[i] = NotificationResponse{
			ID:        entry.ID.String(),
			Status:    entry.Status,
			Message:   entry.Message,
			Amount:    entry.Amount,
			IsRead:    entry.IsRead,
			CreatedAt: entry.CreatedAt.Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ActiveDeliveryResponse is one in-flight delivery of a courier.
type ActiveDeliveryResponse struct {
	OrderID          string `json:"orderId"`
	GeneratedOrderID string `json:"generatedOrderId"`
	Status           string `json:"status"`
	DeliveryAmount   int64  `json:"deliveryAmount"`
	PaymentMethod    string `json:"paymentMethod"`
	AcceptedAt       string `json:"acceptedAt"`
}

// GetActiveDeliveries handles GET /api/v1/couriers/:deliveryPersonId/deliveries -
// returns the courier's undelivered orders, most recently accepted first.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	deliveryPersonID, err := kernel.UUIDFromString(ctx.Param("deliveryPersonId"))
	if err != nil {
		return badRequest(ctx, "Invalid delivery person id: "+err.Error())
	}

	query, err := queries.NewGetActiveDeliveriesQuery(deliveryPersonID)
	if err != nil {
		return badRequest(ctx, "Invalid delivery person id: "+err.Error())
	}

	deliveries, err := s.getActiveDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ActiveDeliveryResponse, len(deliveries))
	for i, delivery := range deliveries {
		response[i] = ActiveDeliveryResponse{
			OrderID:          delivery.OrderID.String(),
			GeneratedOrderID: delivery.GeneratedOrderID,
			Status:           delivery.Status,
			DeliveryAmount:   delivery.DeliveryAmount,
			PaymentMethod:    delivery.PaymentMethod,
			AcceptedAt:       delivery.AcceptedAt.Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps application errors onto HTTP status codes.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, commands.ErrCourierNotEligible):
		status = http.StatusForbidden
	case errors.Is(err, commands.ErrOrderAlreadyAssigned),
		errors.Is(err, commands.ErrStaleOrderStatus),
		errors.Is(err, order.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
