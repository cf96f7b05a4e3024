package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"licensing-system/internal/entities"
	"licensing-system/pkg/constants"
)

type CreateUserDTO struct {
	Name       string         `json:"name" validate:"required,not_blank,max=150"`
	Email      string         `json:"email" validate:"required,email,max=150"`
	Phone      string         `json:"phone" validate:"required,phone_ye"`
	Password   string         `json:"password" validate:"required,min=6,max=72"`
	Role       constants.Role `json:"role" validate:"required,role"`
	ProvinceID *int           `json:"province_id" validate:"omitempty,min=1"`
}

// UpdateUserDTO is a partial update: nil fields are left unchanged.
type UpdateUserDTO struct {
	Name       *string         `json:"name" validate:"omitempty,not_blank,max=150"`
	Email      *string         `json:"email" validate:"omitempty,email,max=150"`
	Phone      *string         `json:"phone" validate:"omitempty,phone_ye"`
	Password   *string         `json:"password" validate:"omitempty,min=6,max=72"`
	Role       *constants.Role `json:"role" validate:"omitempty,role"`
	ProvinceID *int            `json:"province_id" validate:"omitempty,min=0"`
	IsActive   *bool           `json:"is_active"`
}

type UserPublicDTO struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Role         constants.Role `json:"role"`
	ProvinceID   null.Int       `json:"province_id"`
	ProvinceName null.String    `json:"province_name"`
	IsActive     bool           `json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
}

func NewUserPublicDTO(u *entities.User) UserPublicDTO {
	return UserPublicDTO{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         u.Role,
		ProvinceID:   u.ProvinceID,
		ProvinceName: u.ProvinceName,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}
