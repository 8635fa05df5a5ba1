package model

import (
	"time"

	"github.com/google/uuid"
)

// Reminder channels
const (
	ReminderChannelPush  = "push"
	ReminderChannelEmail = "email"
)

// ReminderSettings is the per-user reminder configuration. ReminderTime is a
// wall-clock "HH:MM" string in the user's locale, matching what the client
// stores.
type ReminderSettings struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Enabled      bool      `json:"enabled" db:"enabled"`
	ReminderTime string    `json:"reminder_time" db:"reminder_time"`
	Channel      string    `json:"channel" db:"channel"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ReminderMessage is what the dispatcher publishes when a reminder fires.
type ReminderMessage struct {
	UserID         uuid.UUID `json:"user_id"`
	MedicationName string    `json:"medication_name"`
	FiredAt        time.Time `json:"fired_at"`
}
