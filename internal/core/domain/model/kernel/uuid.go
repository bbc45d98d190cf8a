package kernel

import (
	"fmt"

	"printshop/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes",
)

// UUID identifies orders inside the service. It wraps github.com/google/uuid so the zero
// value can be rejected by Validate. Customers never see it; they track orders by TrackingCode.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) identifier.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses the canonical, braced, urn and hyphen-less forms.
// Admin routes address orders with it, so the nil UUID is rejected as well.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, invalidUUID(err)
	}
	return fromUUID(id)
}

// UUIDFromBytes builds a UUID from its 16-byte binary form, as stored in the orders table.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, invalidUUID(err)
	}
	return fromUUID(id)
}

func fromUUID(id uuid.UUID) (UUID, error) {
	u := UUID{id: id}
	if err := u.Validate(); err != nil {
		return UUID{}, err
	}
	return u, nil
}

func invalidUUID(cause error) error {
	return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("invalid UUID format: %w", cause))
}

func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID (an array, so callers get a copy).
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
