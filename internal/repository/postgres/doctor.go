package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
	"github.com/Madumtv/healthcentral-sub001/internal/repository"
)

type doctorRepository struct {
	db *sqlx.DB
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{db: db}
}

// Create inserts a new doctor. The database assigns id and both timestamps;
// the caller's values are ignored.
func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (rpps_number, first_name, last_name, specialty, address, city, postal_code, phone, email, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		doctor.RPPSNumber,
		doctor.FirstName,
		doctor.LastName,
		doctor.Specialty,
		doctor.Address,
		doctor.City,
		doctor.PostalCode,
		doctor.Phone,
		doctor.Email,
		doctor.IsActive,
	)
	if err := row.Scan(&doctor.ID, &doctor.CreatedAt, &doctor.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `SELECT * FROM doctors WHERE id = $1`
	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET rpps_number = $1, first_name = $2, last_name = $3, specialty = $4,
			address = $5, city = $6, postal_code = $7, phone = $8, email = $9,
			is_active = $10, updated_at = NOW()
		WHERE id = $11
	`
	_, err := r.db.ExecContext(ctx, query,
		doctor.RPPSNumber,
		doctor.FirstName,
		doctor.LastName,
		doctor.Specialty,
		doctor.Address,
		doctor.City,
		doctor.PostalCode,
		doctor.Phone,
		doctor.Email,
		doctor.IsActive,
		doctor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM doctors WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `SELECT * FROM doctors ORDER BY created_at DESC`
	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, query)
	return doctors, err
}

// Search does a case-insensitive substring match over first name, last name
// and specialty, newest records first.
func (r *doctorRepository) Search(ctx context.Context, query string) ([]*model.Doctor, error) {
	sql := `
		SELECT * FROM doctors
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR specialty ILIKE $1
		ORDER BY created_at DESC
	`
	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, sql, "%"+query+"%"); err != nil {
		return nil, fmt.Errorf("failed to search doctors: %w", err)
	}
	return doctors, nil
}
