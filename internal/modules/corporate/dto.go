package corporate

import "itravelly/internal/domain"

type RegisterCorporateRequest struct {
	BusinessName        string                  `json:"business_name" binding:"required"`
	BusinessDescription string                  `json:"business_description"`
	Country             string                  `json:"country" binding:"required"`
	Province            string                  `json:"province" binding:"required"`
	Department          string                  `json:"department"`
	Address             string                  `json:"address"`
	ActivityTypeID      int64                   `json:"activity_type_id" binding:"required"`
	LegalRepresentative string                  `json:"legal_representative"`
	ContactChannels     *domain.ContactChannels `json:"contact_channels"`
	Phone               string                  `json:"phone"`
	PaymentMethods      []string                `json:"payment_methods"`
	Email               string                  `json:"email" binding:"required,email"`
	Password            string                  `json:"password" binding:"required,min=6"`
	OperationMode       domain.OperationMode    `json:"operation_mode"`
	BusinessHours       domain.WeeklyHours      `json:"business_hours"`

	// Contact person who will own the admin account.
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type UpdateCorporateRequest struct {
	BusinessName        *string                 `json:"business_name"`
	BusinessDescription *string                 `json:"business_description"`
	Country             *string                 `json:"country"`
	Province            *string                 `json:"province"`
	Department          *string                 `json:"department"`
	Address             *string                 `json:"address"`
	BrandingURL         *string                 `json:"branding_url"`
	LegalRepresentative *string                 `json:"legal_representative"`
	ContactChannels     *domain.ContactChannels `json:"contact_channels"`
	Phone               *string                 `json:"phone"`
	PaymentMethods      []string                `json:"payment_methods"`
	OperationMode       *string                 `json:"operation_mode"`
	BusinessHours       domain.WeeklyHours      `json:"business_hours"`
}

type CreateBranchRequest struct {
	Name     string `json:"name" binding:"required"`
	Country  string `json:"country"`
	Province string `json:"province"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type RegisterResult struct {
	Corporate *domain.Corporate `json:"corporate"`
	User      *domain.User      `json:"user"`
}
