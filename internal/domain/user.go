package domain

import "time"

type UserRole string

const (
	RoleClient     UserRole = "client"
	RoleAdmin      UserRole = "admin"
	RoleSuperadmin UserRole = "superadmin"
)

// CanManage reports whether the role may perform administrative operations.
func (r UserRole) CanManage() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

type User struct {
	ID              int64     `json:"id"`
	FirstName       string    `json:"first_name" validate:"required"`
	LastName        string    `json:"last_name" validate:"required"`
	Email           string    `json:"email" validate:"required,email"`
	PhoneNumber     string    `json:"phone_number" validate:"required"`
	Country         string    `json:"country,omitempty"`
	CountryCode     string    `json:"country_code,omitempty"`
	DialCode        string    `json:"dial_code,omitempty"`
	PasswordHash    string    `json:"-"`
	Role            UserRole  `json:"role"`
	IsEmailVerified bool      `json:"is_email_verified"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type VerificationCode struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Email     string     `json:"email"`
	Code      string     `json:"code"`
	IsUsed    bool       `json:"is_used"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
}
