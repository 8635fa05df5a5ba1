package medication

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
	"github.com/Madumtv/healthcentral-sub001/internal/repository"
	"github.com/Madumtv/healthcentral-sub001/pkg/errors"
	"github.com/Madumtv/healthcentral-sub001/pkg/sanitize"
)

type Service interface {
	CreateMedication(ctx context.Context, med *model.Medication) error
	GetMedication(ctx context.Context, userID, id uuid.UUID) (*model.Medication, error)
	UpdateMedication(ctx context.Context, med *model.Medication) error
	DeleteMedication(ctx context.Context, userID, id uuid.UUID) error
	ListMedications(ctx context.Context, userID uuid.UUID) ([]*model.Medication, error)
}

type service struct {
	repo repository.MedicationRepository
}

func NewService(repo repository.MedicationRepository) Service {
	return &service{repo: repo}
}

func (s *service) CreateMedication(ctx context.Context, med *model.Medication) error {
	med.Name = sanitize.StripTags(med.Name)
	med.Dosage = sanitize.StripTags(med.Dosage)
	med.Notes = sanitize.RichText(med.Notes)
	return s.repo.Create(ctx, med)
}

// GetMedication enforces ownership: a medication belonging to another user is
// reported as not found.
func (s *service) GetMedication(ctx context.Context, userID, id uuid.UUID) (*model.Medication, error) {
	med, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("medication", err)
	}
	if med.UserID != userID {
		return nil, errors.NotFound("medication", fmt.Errorf("medication %s not owned by user", id))
	}
	return med, nil
}

func (s *service) UpdateMedication(ctx context.Context, med *model.Medication) error {
	if _, err := s.GetMedication(ctx, med.UserID, med.ID); err != nil {
		return err
	}
	med.Name = sanitize.StripTags(med.Name)
	med.Dosage = sanitize.StripTags(med.Dosage)
	med.Notes = sanitize.RichText(med.Notes)
	return s.repo.Update(ctx, med)
}

func (s *service) DeleteMedication(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetMedication(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) ListMedications(ctx context.Context, userID uuid.UUID) ([]*model.Medication, error) {
	return s.repo.ListForUser(ctx, userID)
}
