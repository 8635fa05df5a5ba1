package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type SecurityEvent struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	UserID    *uuid.UUID      `json:"user_id" db:"user_id"`
	EventType string          `json:"event_type" db:"event_type"`
	Details   json.RawMessage `json:"event_details" db:"event_details"`
	IPAddress *string         `json:"ip_address" db:"ip_address"`
	UserAgent string          `json:"user_agent" db:"user_agent"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

const (
	SecurityEventLoginSuccess   = "login_success"
	SecurityEventLoginFailed    = "login_failed"
	SecurityEventLoginLimited   = "login_rate_limited"
	SecurityEventRegister       = "user_registered"
	SecurityEventDoctorPromoted = "doctor_promoted"
)
