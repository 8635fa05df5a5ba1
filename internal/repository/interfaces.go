package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*model.Doctor, error)
	Search(ctx context.Context, query string) ([]*model.Doctor, error)
}

type MedicationRepository interface {
	Create(ctx context.Context, med *model.Medication) error
	Get(ctx context.Context, id uuid.UUID) (*model.Medication, error)
	Update(ctx context.Context, med *model.Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Medication, error)
}

type ReminderRepository interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*model.ReminderSettings, error)
	UpsertSettings(ctx context.Context, settings *model.ReminderSettings) error
}

type SecurityEventRepository interface {
	Create(ctx context.Context, event *model.SecurityEvent) error
	List(ctx context.Context, userID *uuid.UUID, p model.Pagination) ([]*model.SecurityEvent, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}
