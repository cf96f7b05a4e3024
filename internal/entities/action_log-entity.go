package entities

import (
	"time"

	"github.com/google/uuid"

	"licensing-system/pkg/constants"
)

// ActionLog is an append-only audit record of a request transition.
type ActionLog struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	RequestID   uuid.UUID        `json:"request_id" db:"request_id"`
	UserID      uuid.UUID        `json:"user_id" db:"user_id"`
	Action      constants.LogTag `json:"action" db:"action"`
	Description string           `json:"description" db:"description"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

// ActionLogView carries the actor's current name and role, resolved at read time.
type ActionLogView struct {
	ActionLog
	UserName string         `json:"user_name" db:"user_name"`
	UserRole constants.Role `json:"user_role" db:"user_role"`
}
