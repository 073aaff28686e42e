package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotAPatient        = errors.New("user is not a patient")
	ErrNotADoctor         = errors.New("user is not a doctor")
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// CreateUserInput carries the fields an admin supplies when creating a user.
type CreateUserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Password string `json:"password"`
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, fmt.Errorf("valid email is required")
	}
	if in.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("invalid role: %s", in.Role)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if existing, err := s.users.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Email:        in.Email,
		Name:         in.Name,
		Role:         in.Role,
		PasswordHash: string(hash),
		Active:       true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, filter ListFilter) ([]*User, int, error) {
	return s.users.List(ctx, filter)
}

// UpdateUserInput holds optional fields; nil means leave unchanged.
type UpdateUserInput struct {
	Name     *string `json:"name"`
	Role     *Role   `json:"role"`
	Password *string `json:"password"`
	Active   *bool   `json:"active"`
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		u.Name = *in.Name
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, fmt.Errorf("invalid role: %s", *in.Role)
		}
		u.Role = *in.Role
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, fmt.Errorf("password must be at least 8 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if in.Active != nil {
		u.Active = *in.Active
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

// Authenticate verifies credentials and returns the user on success.
// Inactive accounts fail the same way bad passwords do.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.Active {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// AssignPatient links a patient to a doctor after checking both roles.
func (s *Service) AssignPatient(ctx context.Context, doctorID, patientID uuid.UUID) error {
	doc, err := s.users.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if doc.Role != RoleDoctor {
		return ErrNotADoctor
	}
	pat, err := s.users.GetByID(ctx, patientID)
	if err != nil {
		return err
	}
	if pat.Role != RolePatient {
		return ErrNotAPatient
	}
	return s.users.AssignPatient(ctx, doctorID, patientID)
}

func (s *Service) UnassignPatient(ctx context.Context, doctorID, patientID uuid.UUID) error {
	return s.users.UnassignPatient(ctx, doctorID, patientID)
}

func (s *Service) ListPatients(ctx context.Context, doctorID uuid.UUID) ([]*User, error) {
	return s.users.ListPatients(ctx, doctorID)
}

// CanAccessPatient reports whether the caller may read patientID's data:
// admins always, patients only themselves, doctors only assigned patients.
func (s *Service) CanAccessPatient(ctx context.Context, callerID uuid.UUID, callerRole Role, patientID uuid.UUID) (bool, error) {
	switch callerRole {
	case RoleAdmin:
		return true, nil
	case RolePatient:
		return callerID == patientID, nil
	case RoleDoctor:
		return s.users.IsAssigned(ctx, callerID, patientID)
	}
	return false, nil
}
