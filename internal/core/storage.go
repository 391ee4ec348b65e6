package core

import "context"

// ContactStore persists verified contacts. GetContact returns nil, nil when
// the user never shared one.
type ContactStore interface {
	GetContact(ctx context.Context, userID string) (*ContactRecord, error)
	SaveContact(ctx context.Context, userID string, rec ContactRecord) error
	DeleteContact(ctx context.Context, userID string) (bool, error)
}

type CatalogStore interface {
	ListServices(ctx context.Context) ([]Service, error)
}

type BookingStore interface {
	SaveBooking(ctx context.Context, b Booking) error
	ListBookings(ctx context.Context, limit int) ([]Booking, error)
}
