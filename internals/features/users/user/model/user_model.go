package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"edutrack_backend/internals/constants"
)

// UserModel maps the users table.
type UserModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Email    string    `gorm:"size:255;uniqueIndex;not null" json:"email"` // stored trimmed + lowercased
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"type:varchar(20);not null;default:'student'" json:"role"`
	GoogleID *string   `gorm:"size:255;uniqueIndex" json:"-"`

	// Optional profile fields.
	Age    *int           `json:"age,omitempty"`
	Phone  *string        `gorm:"size:30" json:"phone,omitempty"`
	Photo  *string        `gorm:"size:512" json:"photo,omitempty"`
	Bio    *string        `json:"bio,omitempty"`
	Links  datatypes.JSON `gorm:"type:jsonb" json:"links,omitempty"`
	Skills datatypes.JSON `gorm:"type:jsonb" json:"skills,omitempty"`

	// Password-reset OTP state. ResetOTP holds an HMAC-SHA256 hex digest of
	// the 6-digit code, never the code itself. Both fields are cleared on
	// successful verification.
	ResetOTP       *string    `gorm:"size:64" json:"-"`
	ResetOTPExpiry *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues fills defaults before validation.
func (u *UserModel) SetDefaultValues() {
	if u.Role == "" {
		u.Role = constants.RoleStudent
	}
}

// HasValidResetOTP reports whether a stored OTP is still redeemable.
func (u *UserModel) HasValidResetOTP(now time.Time) bool {
	return u.ResetOTP != nil && u.ResetOTPExpiry != nil && u.ResetOTPExpiry.After(now)
}
