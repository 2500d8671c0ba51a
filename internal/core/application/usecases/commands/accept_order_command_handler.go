package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/assignment"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

var (
	// ErrOrderAlreadyAssigned means another courier took the order first.
	// API layers present it as "order no longer available".
	ErrOrderAlreadyAssigned = errors.New("order is already assigned to a delivery person")

	// ErrCourierNotEligible means the courier is not approved for deliveries.
	ErrCourierNotEligible = errors.New("delivery person is not eligible to accept orders")
)

// AcceptOrderCommandHandler processes a courier's attempt to accept an order.
// The decisive step is the conditional status write: the Accepted -> Preparing
// transition and the courier binding are applied only if the stored status is
// still Accepted, so when several couriers race for the same order exactly one
// wins. The unique constraint on the settlement record is the second line of
// defense behind that write.
//
// Losers of either check get ErrOrderAlreadyAssigned and their transaction is
// rolled back without side effects.
type AcceptOrderCommandHandler struct {
	uowFactory AcceptanceUoWFactory
	notifier   Notifier
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
// notifier receives the status change after the transaction commits
// and may be nil in contexts without a notification pipeline.
func NewAcceptOrderCommandHandler(uowFactory AcceptanceUoWFactory, notifier Notifier) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle executes the acceptance. On success it returns the settlement record
// created for the courier. Returns ErrCourierNotEligible for unapproved
// couriers and ErrOrderAlreadyAssigned when the order is past Accepted or the
// conditional write lost the race.
func (h AcceptOrderCommandHandler) Handle(
	ctx context.Context, command AcceptOrderCommand,
) (*assignment.DeliveryPersonOrder, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()
	assignmentRepo := uow.AssignmentRepository()

	ord, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	dp, err := courierRepo.GetByUserID(ctx, command.CourierUserID())
	if err != nil {
		return nil, err
	}

	if err = dp.CanAcceptOrders(); err != nil {
		return nil, errors.Join(ErrCourierNotEligible, err)
	}

	event, err := ord.Assign(dp.ID())
	if errors.Is(err, order.ErrInvalidTransition) {
		return nil, ErrOrderAlreadyAssigned
	}
	if err != nil {
		return nil, err
	}

	record, err := h.buildSettlementRecord(ord, dp.ID())
	if err != nil {
		return nil, err
	}

	dpID := dp.ID()
	ok, err := ordersRepo.UpdateStatusIf(ctx, ord.ID(), order.Accepted, order.Preparing, &dpID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOrderAlreadyAssigned
	}

	if err = assignmentRepo.Add(ctx, record); err != nil {
		if errors.Is(err, assignment.ErrDuplicateForOrder) {
			return nil, ErrOrderAlreadyAssigned
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if h.notifier != nil {
		h.notifier.OrderStatusChanged(ctx, event)
	}

	return record, nil
}

// buildSettlementRecord derives the settlement from the order: the courier
// settles the full order amount, collected in cash for orders still pending
// payment and online for orders paid at checkout.
func (h AcceptOrderCommandHandler) buildSettlementRecord(
	ord *order.Order, deliveryPersonID kernel.UUID,
) (*assignment.DeliveryPersonOrder, error) {
	paymentMethod := assignment.PaymentMethodOnline
	if ord.PaymentStatus() == order.PaymentPending {
		paymentMethod = assignment.PaymentMethodCOD
	}

	return assignment.NewDeliveryPersonOrder(
		kernel.NewUUID(),
		deliveryPersonID,
		ord.ID(),
		ord.GeneratedOrderID(),
		ord.TotalAmount(),
		ord.PaymentStatus(),
		paymentMethod,
	)
}
