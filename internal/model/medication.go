package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Medication struct {
	Base
	UserID     uuid.UUID      `json:"user_id" db:"user_id"`
	DoctorID   *uuid.UUID     `json:"doctor_id,omitempty" db:"doctor_id"`
	Name       string         `json:"name" db:"name"`
	Dosage     string         `json:"dosage" db:"dosage"`
	Frequency  string         `json:"frequency" db:"frequency"`
	TimesOfDay pq.StringArray `json:"times_of_day" db:"times_of_day"`
	StartDate  time.Time      `json:"start_date" db:"start_date"`
	EndDate    *time.Time     `json:"end_date,omitempty" db:"end_date"`
	Notes      string         `json:"notes" db:"notes"`
	IsActive   bool           `json:"is_active" db:"is_active"`
}
