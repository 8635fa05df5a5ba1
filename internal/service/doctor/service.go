package doctor

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
	"github.com/Madumtv/healthcentral-sub001/internal/repository"
	"github.com/Madumtv/healthcentral-sub001/pkg/sanitize"
)

type Service interface {
	CreateDoctor(ctx context.Context, doctor *model.Doctor) error
	GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	UpdateDoctor(ctx context.Context, doctor *model.Doctor) error
	DeleteDoctor(ctx context.Context, id uuid.UUID) error
	ListDoctors(ctx context.Context) ([]*model.Doctor, error)
	SearchDoctors(ctx context.Context, query string) []*model.Doctor
}

type service struct {
	repo   repository.DoctorRepository
	logger *zerolog.Logger
}

func NewService(repo repository.DoctorRepository, logger *zerolog.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) CreateDoctor(ctx context.Context, doctor *model.Doctor) error {
	cleanDoctor(doctor)
	return s.repo.Create(ctx, doctor)
}

func (s *service) GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) UpdateDoctor(ctx context.Context, doctor *model.Doctor) error {
	cleanDoctor(doctor)
	return s.repo.Update(ctx, doctor)
}

func (s *service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.List(ctx)
}

// SearchDoctors degrades a failed lookup to an empty result. Callers cannot
// tell "no results" from "store unavailable"; the error is only logged.
func (s *service) SearchDoctors(ctx context.Context, query string) []*model.Doctor {
	doctors, err := s.repo.Search(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("doctor search failed")
		return []*model.Doctor{}
	}
	return doctors
}

func cleanDoctor(d *model.Doctor) {
	d.RPPSNumber = sanitize.StripTags(d.RPPSNumber)
	d.FirstName = sanitize.StripTags(d.FirstName)
	d.LastName = sanitize.StripTags(d.LastName)
	d.Specialty = sanitize.StripTags(d.Specialty)
	d.Address = sanitize.StripTags(d.Address)
	d.City = sanitize.StripTags(d.City)
	d.PostalCode = sanitize.StripTags(d.PostalCode)
	d.Phone = sanitize.StripTags(d.Phone)
	d.Email = sanitize.StripTags(d.Email)
}
