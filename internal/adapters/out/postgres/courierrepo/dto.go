// Package courierrepo persists DeliveryPerson aggregates, including the
// slow-moving last-known position written by the flush job.
package courierrepo

import (
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryPersonDTO represents the database structure for persisting courier
// aggregates. The last-known position is a pair of nullable columns; both are
// nil until the courier first reports a position.
type DeliveryPersonDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Name          string
	Approved      bool
	Online        bool
	LastLatitude  *float64
	LastLongitude *float64
	Address       string
}

// TableName specifies the database table name for courier entities.
func (DeliveryPersonDTO) TableName() string {
	return "delivery_persons"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(dp *courier.DeliveryPerson) DeliveryPersonDTO {
	var lastLatitude, lastLongitude *float64
	if point := dp.LastKnownLocation(); point != nil {
		lat, lng := point.Latitude(), point.Longitude()
		lastLatitude, lastLongitude = &lat, &lng
	}

	return DeliveryPersonDTO{
		ID:            dp.ID().Bytes(),
		UserID:        dp.UserID().Bytes(),
		Name:          dp.Name(),
		Approved:      dp.IsApproved(),
		Online:        dp.IsOnline(),
		LastLatitude:  lastLatitude,
		LastLongitude: lastLongitude,
		Address:       dp.Address(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto DeliveryPersonDTO) (*courier.DeliveryPerson, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var lastKnown *kernel.GeoPoint
	if dto.LastLatitude != nil && dto.LastLongitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.LastLatitude, *dto.LastLongitude)
		if pointErr != nil {
			return nil, pointErr
		}

		lastKnown = &point
	}

	return courier.RestoreDeliveryPerson(
		id,
		userID,
		dto.Name,
		dto.Approved,
		dto.Online,
		lastKnown,
		dto.Address,
	)
}
