package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	practitioners PractitionerRepository
	patients      PatientRepository
}

func NewService(practitioners PractitionerRepository, patients PatientRepository) *Service {
	return &Service{practitioners: practitioners, patients: patients}
}

// -- Practitioner --

func (s *Service) CreatePractitioner(ctx context.Context, p *Practitioner) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	p.Active = true
	return s.practitioners.Create(ctx, p)
}

func (s *Service) GetPractitioner(ctx context.Context, id uuid.UUID) (*Practitioner, error) {
	return s.practitioners.GetByID(ctx, id)
}

func (s *Service) UpdatePractitioner(ctx context.Context, p *Practitioner) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.practitioners.Update(ctx, p)
}

func (s *Service) DeactivatePractitioner(ctx context.Context, id uuid.UUID) error {
	return s.practitioners.Deactivate(ctx, id)
}

func (s *Service) ListPractitioners(ctx context.Context, limit, offset int) ([]*Practitioner, int, error) {
	return s.practitioners.List(ctx, limit, offset)
}

// PractitionerExists reports whether an active practitioner with the given id exists.
func (s *Service) PractitionerExists(ctx context.Context, id uuid.UUID) (bool, error) {
	p, err := s.practitioners.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.Active, nil
}

// -- Patient --

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	p.Active = true
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) DeactivatePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Deactivate(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

// PatientExists reports whether an active patient with the given id exists.
func (s *Service) PatientExists(ctx context.Context, id uuid.UUID) (bool, error) {
	p, err := s.patients.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.Active, nil
}
