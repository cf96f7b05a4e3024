package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"licensing-system/pkg/constants"
)

type User struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	Name       string         `json:"name" db:"name"`
	Email      string         `json:"email" db:"email"`
	Phone      string         `json:"phone" db:"phone"`
	Password   string         `json:"-" db:"password"`
	Role       constants.Role `json:"role" db:"role"`
	ProvinceID null.Int       `json:"province_id" db:"province_id"`
	IsActive   bool           `json:"is_active" db:"is_active"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`

	ProvinceName null.String `json:"province_name,omitempty" db:"province_name"`
}
