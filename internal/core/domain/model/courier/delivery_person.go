package courier

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrDeliveryPersonIsNotConstructed is returned when a DeliveryPerson was
	// not created through NewDeliveryPerson or RestoreDeliveryPerson.
	ErrDeliveryPersonIsNotConstructed = errors.New(
		"DeliveryPerson must be created via NewDeliveryPerson or RestoreDeliveryPerson")

	// ErrNotApproved is the unwrap target when an unapproved courier attempts
	// an operation reserved for approved couriers, such as accepting an order.
	ErrNotApproved = errors.New("delivery person is not approved")
)

// DeliveryPerson is the aggregate root for a courier. It owns the courier's
// approval and online state and the persisted last-known position.
//
// The last-known position is a slow, periodic side channel fed by the
// location flush job and by explicit update calls. It is distinct from the
// order-scoped live location stream, which is ephemeral and never touches
// this aggregate.
type DeliveryPerson struct {
	// id is the courier's own identifier
	id kernel.UUID

	// userID links the courier to the account that authenticates
	userID kernel.UUID

	// name is the courier's display name
	name string

	// approved marks whether onboarding approved this courier for deliveries
	approved bool

	// online marks whether the courier is currently taking orders
	online bool

	// lastKnown is the persisted last-known position (nil until first report)
	lastKnown *kernel.GeoPoint

	// address is a freeform description of the last-known position
	address string

	// isConstructed ensures creation went through a constructor
	isConstructed bool
}

// NewDeliveryPerson creates a courier fresh out of onboarding: not yet
// approved, offline and without a known position.
func NewDeliveryPerson(id, userID kernel.UUID, name string) (*DeliveryPerson, error) {
	dp := &DeliveryPerson{
		isConstructed: true,
	}

	if err := errors.Join(
		dp.setID(id),
		dp.setUserID(userID),
		dp.setName(name),
	); err != nil {
		return nil, err
	}

	return dp, nil
}

// RestoreDeliveryPerson reconstructs a courier from persistence.
func RestoreDeliveryPerson(
	id, userID kernel.UUID,
	name string,
	approved, online bool,
	lastKnown *kernel.GeoPoint,
	address string,
) (*DeliveryPerson, error) {
	dp := &DeliveryPerson{
		approved:      approved,
		online:        online,
		address:       address,
		isConstructed: true,
	}

	if err := errors.Join(
		dp.setID(id),
		dp.setUserID(userID),
		dp.setName(name),
	); err != nil {
		return nil, err
	}

	if lastKnown != nil {
		if err := lastKnown.Validate(); err != nil {
			return nil, err
		}
		point := *lastKnown
		dp.lastKnown = &point
	}

	return dp, nil
}

// Validate ensures the courier was created through a constructor.
func (dp *DeliveryPerson) Validate() error {
	if dp == nil || !dp.isConstructed {
		return ErrDeliveryPersonIsNotConstructed
	}

	return nil
}

// IsEqual compares two couriers by their unique identifiers.
func (dp *DeliveryPerson) IsEqual(other *DeliveryPerson) bool {
	return other != nil && dp.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (dp *DeliveryPerson) ID() kernel.UUID {
	return dp.id
}

// UserID returns the linked account identifier.
func (dp *DeliveryPerson) UserID() kernel.UUID {
	return dp.userID
}

// Name returns the courier's display name.
func (dp *DeliveryPerson) Name() string {
	return dp.name
}

// IsApproved reports whether onboarding approved this courier.
func (dp *DeliveryPerson) IsApproved() bool {
	return dp.approved
}

// IsOnline reports whether the courier is currently taking orders.
func (dp *DeliveryPerson) IsOnline() bool {
	return dp.online
}

// LastKnownLocation returns the persisted last-known position, or nil if the
// courier never reported one.
func (dp *DeliveryPerson) LastKnownLocation() *kernel.GeoPoint {
	return dp.lastKnown
}

// Address returns the freeform description of the last-known position.
func (dp *DeliveryPerson) Address() string {
	return dp.address
}

// Approve marks the courier as approved for deliveries.
func (dp *DeliveryPerson) Approve() {
	dp.approved = true
}

// SetOnline toggles whether the courier is currently taking orders.
func (dp *DeliveryPerson) SetOnline(online bool) {
	dp.online = online
}

// CanAcceptOrders checks the eligibility rule for order acceptance:
// only approved couriers may be bound to an order.
func (dp *DeliveryPerson) CanAcceptOrders() error {
	if !dp.approved {
		return ErrNotApproved
	}
	return nil
}

// MoveTo updates the persisted last-known position. An empty address keeps
// the previous freeform description.
func (dp *DeliveryPerson) MoveTo(point kernel.GeoPoint, address string) error {
	if err := point.Validate(); err != nil {
		return err
	}

	dp.lastKnown = &point
	if address != "" {
		dp.address = address
	}
	return nil
}

func (dp *DeliveryPerson) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	dp.id = id
	return nil
}

func (dp *DeliveryPerson) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	dp.userID = userID
	return nil
}

func (dp *DeliveryPerson) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	dp.name = name
	return nil
}
