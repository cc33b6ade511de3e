package dto

import (
	"time"

	"gorm.io/datatypes"

	"edutrack_backend/internals/features/users/user/model"
)

// =============================
// Response DTO
// =============================
// UserDTO is the password-scrubbed projection returned by every endpoint
// that exposes a user.
type UserDTO struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	Age       *int           `json:"age,omitempty"`
	Phone     *string        `json:"phone,omitempty"`
	Photo     *string        `json:"photo,omitempty"`
	Bio       *string        `json:"bio,omitempty"`
	Links     datatypes.JSON `json:"links,omitempty"`
	Skills    datatypes.JSON `json:"skills,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// =============================
// Request DTO (profile update)
// =============================
type UpdateProfileRequest struct {
	Name   *string         `json:"name" validate:"omitempty,min=2,max=100"`
	Age    *int            `json:"age" validate:"omitempty,gte=5,lte=120"`
	Phone  *string         `json:"phone" validate:"omitempty,max=30"`
	Photo  *string         `json:"photo" validate:"omitempty,url,max=512"`
	Bio    *string         `json:"bio" validate:"omitempty,max=2000"`
	Links  *datatypes.JSON `json:"links"`
	Skills *datatypes.JSON `json:"skills"`
}

// =============================
// Converters
// =============================
func ToUserDTO(u model.UserModel) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Age:       u.Age,
		Phone:     u.Phone,
		Photo:     u.Photo,
		Bio:       u.Bio,
		Links:     u.Links,
		Skills:    u.Skills,
		CreatedAt: u.CreatedAt,
	}
}
