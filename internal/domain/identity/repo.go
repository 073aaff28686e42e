package identity

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows List results.
type ListFilter struct {
	Role   Role
	Search string
	Limit  int
	Offset int
}

// UserRepository defines persistence operations for users and
// doctor/patient assignments.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]*User, int, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error

	AssignPatient(ctx context.Context, doctorID, patientID uuid.UUID) error
	UnassignPatient(ctx context.Context, doctorID, patientID uuid.UUID) error
	ListPatients(ctx context.Context, doctorID uuid.UUID) ([]*User, error)
	IsAssigned(ctx context.Context, doctorID, patientID uuid.UUID) (bool, error)
}
