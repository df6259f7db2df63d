package domain

import "time"

type OperationMode string

const (
	OperationInPerson OperationMode = "in_person"
	OperationOnline   OperationMode = "online"
	OperationHybrid   OperationMode = "hybrid"
)

type ContactChannels struct {
	Website   string `json:"website,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
}

type Corporate struct {
	ID                  int64            `json:"id"`
	BusinessName        string           `json:"business_name" validate:"required"`
	BusinessDescription string           `json:"business_description,omitempty"`
	Country             string           `json:"country"`
	Province            string           `json:"province"`
	Department          string           `json:"department,omitempty"`
	Address             string           `json:"address,omitempty"`
	BrandingURL         string           `json:"branding_url,omitempty"`
	ActivityTypeID      int64            `json:"activity_type_id"`
	LegalRepresentative string           `json:"legal_representative,omitempty"`
	ContactChannels     *ContactChannels `json:"contact_channels,omitempty"`
	Phone               string           `json:"phone,omitempty"`
	BillingAccount      string           `json:"billing_account,omitempty"`
	PaymentMethods      []string         `json:"payment_methods,omitempty"`
	Email               string           `json:"email" validate:"required,email"`
	PasswordHash        string           `json:"-"`
	OperationMode       OperationMode    `json:"operation_mode"`
	BusinessHours       WeeklyHours      `json:"business_hours,omitempty"`
	UserID              int64            `json:"user_id"`
	IsEmailVerified     bool             `json:"is_email_verified"`
	IsActive            bool             `json:"is_active"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`

	Branches []Branch `json:"branches,omitempty"`
}

type Branch struct {
	ID          int64     `json:"id"`
	CorporateID int64     `json:"corporate_id"`
	Name        string    `json:"name" validate:"required"`
	Country     string    `json:"country,omitempty"`
	Province    string    `json:"province,omitempty"`
	Address     string    `json:"address,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
