package model

import (
	"strings"

	"github.com/google/uuid"
)

// Doctor is a prescribing practitioner. Records returned by the official
// registry are candidates: they carry no ID and no timestamps until promoted
// into the local store. A persisted record's ID is stable for its lifetime.
type Doctor struct {
	Base
	RPPSNumber string `json:"rpps_number" db:"rpps_number"`
	FirstName  string `json:"first_name" db:"first_name"`
	LastName   string `json:"last_name" db:"last_name"`
	Specialty  string `json:"specialty" db:"specialty"`
	Address    string `json:"address" db:"address"`
	City       string `json:"city" db:"city"`
	PostalCode string `json:"postal_code" db:"postal_code"`
	Phone      string `json:"phone" db:"phone"`
	Email      string `json:"email" db:"email"`
	IsActive   bool   `json:"is_active" db:"is_active"`
}

// IsPersisted reports whether the record has a server-assigned identity.
// Candidates must never be conflated with persisted records by identity,
// only by practitioner-number equality.
func (d *Doctor) IsPersisted() bool {
	return d.ID != uuid.Nil
}

// SamePractitioner compares two records by trimmed RPPS number. Records
// without a number never match.
func (d *Doctor) SamePractitioner(other *Doctor) bool {
	a := strings.TrimSpace(d.RPPSNumber)
	b := strings.TrimSpace(other.RPPSNumber)
	return a != "" && a == b
}
