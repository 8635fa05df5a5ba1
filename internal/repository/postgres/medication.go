package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
	"github.com/Madumtv/healthcentral-sub001/internal/repository"
)

type medicationRepository struct {
	db *sqlx.DB
}

func NewMedicationRepository(db *sqlx.DB) repository.MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, med *model.Medication) error {
	query := `
		INSERT INTO medications (user_id, doctor_id, name, dosage, frequency, times_of_day, start_date, end_date, notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		med.UserID,
		med.DoctorID,
		med.Name,
		med.Dosage,
		med.Frequency,
		med.TimesOfDay,
		med.StartDate,
		med.EndDate,
		med.Notes,
		med.IsActive,
	)
	if err := row.Scan(&med.ID, &med.CreatedAt, &med.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	query := `SELECT * FROM medications WHERE id = $1`
	var med model.Medication
	if err := r.db.GetContext(ctx, &med, query, id); err != nil {
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}
	return &med, nil
}

func (r *medicationRepository) Update(ctx context.Context, med *model.Medication) error {
	query := `
		UPDATE medications
		SET doctor_id = $1, name = $2, dosage = $3, frequency = $4, times_of_day = $5,
			start_date = $6, end_date = $7, notes = $8, is_active = $9, updated_at = NOW()
		WHERE id = $10 AND user_id = $11
	`
	_, err := r.db.ExecContext(ctx, query,
		med.DoctorID,
		med.Name,
		med.Dosage,
		med.Frequency,
		med.TimesOfDay,
		med.StartDate,
		med.EndDate,
		med.Notes,
		med.IsActive,
		med.ID,
		med.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM medications WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *medicationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Medication, error) {
	query := `SELECT * FROM medications WHERE user_id = $1 ORDER BY created_at DESC`
	var meds []*model.Medication
	err := r.db.SelectContext(ctx, &meds, query, userID)
	return meds, err
}
