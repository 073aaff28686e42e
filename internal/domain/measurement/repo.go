package measurement

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows ListByUser results.
type ListFilter struct {
	Type   Type
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Repository defines persistence operations for measurements.
//
// ListWindow returns readings with RecordedAt in [start, end), newest
// first. Implementations return an empty slice, never nil, when nothing
// matches.
type Repository interface {
	Create(ctx context.Context, m *Measurement) error
	GetByID(ctx context.Context, id uuid.UUID) (*Measurement, error)
	Update(ctx context.Context, m *Measurement) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Measurement, int, error)
	ListWindow(ctx context.Context, userID uuid.UUID, typ Type, start, end time.Time) ([]*Measurement, error)
}
