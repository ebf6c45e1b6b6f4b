package domain

import "context"

type Service interface {
	// Submit normalizes a raw submission and stores it. A submission with no
	// type indicator is rejected with ErrMissingType, never stored.
	Submit(ctx context.Context, req SubmitRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	ListByDate(ctx context.Context, date string) ([]Response, error)
	GetByID(ctx context.Context, id string) (*Response, error)
	// UpdateType changes an event's type; duration and timestamps are
	// immutable after creation.
	UpdateType(ctx context.Context, req UpdateTypeRequest) (*Response, error)
	Delete(ctx context.Context, id string) error
}
