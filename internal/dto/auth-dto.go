package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterDTO struct {
	Name       string `json:"name" validate:"required,not_blank,max=150"`
	Email      string `json:"email" validate:"required,email,max=150"`
	Phone      string `json:"phone" validate:"required,phone_ye"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	ProvinceID *int   `json:"province_id" validate:"omitempty,min=1"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponseDTO struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         UserPublicDTO `json:"user"`
}
