package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"itravelly/internal/domain"

	"gorm.io/gorm"
)

type CorporateRepository struct {
	db *gorm.DB
}

func NewCorporateRepository(db *gorm.DB) *CorporateRepository {
	return &CorporateRepository{db: db}
}

type corporateModel struct {
	ID                  int64     `gorm:"column:id;primaryKey"`
	BusinessName        string    `gorm:"column:business_name"`
	BusinessDescription *string   `gorm:"column:business_description"`
	Country             string    `gorm:"column:country"`
	Province            string    `gorm:"column:province"`
	Department          *string   `gorm:"column:department"`
	Address             *string   `gorm:"column:address"`
	BrandingURL         *string   `gorm:"column:branding_url"`
	ActivityTypeID      int64     `gorm:"column:activity_type_id"`
	LegalRepresentative *string   `gorm:"column:legal_representative"`
	ContactChannels     []byte    `gorm:"column:contact_channels;type:json"`
	Phone               *string   `gorm:"column:phone"`
	BillingAccount      *string   `gorm:"column:billing_account"`
	PaymentMethods      []byte    `gorm:"column:payment_methods;type:json"`
	Email               string    `gorm:"column:email;uniqueIndex"`
	PasswordHash        string    `gorm:"column:password_hash"`
	OperationMode       string    `gorm:"column:operation_mode"`
	BusinessHours       []byte    `gorm:"column:business_hours;type:json"`
	UserID              int64     `gorm:"column:user_id;uniqueIndex"`
	IsEmailVerified     bool      `gorm:"column:is_email_verified"`
	IsActive            bool      `gorm:"column:is_active"`
	CreatedAt           time.Time `gorm:"column:created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at"`
}

func (corporateModel) TableName() string { return "corporates" }

type branchModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	CorporateID int64     `gorm:"column:corporate_id"`
	Name        string    `gorm:"column:name"`
	Country     *string   `gorm:"column:country"`
	Province    *string   `gorm:"column:province"`
	Address     *string   `gorm:"column:address"`
	Phone       *string   `gorm:"column:phone"`
	IsActive    bool      `gorm:"column:is_active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (branchModel) TableName() string { return "branches" }

func toDomainCorporate(m corporateModel) (*domain.Corporate, error) {
	c := &domain.Corporate{
		ID:                  m.ID,
		BusinessName:        m.BusinessName,
		BusinessDescription: strOrEmpty(m.BusinessDescription),
		Country:             m.Country,
		Province:            m.Province,
		Department:          strOrEmpty(m.Department),
		Address:             strOrEmpty(m.Address),
		BrandingURL:         strOrEmpty(m.BrandingURL),
		ActivityTypeID:      m.ActivityTypeID,
		LegalRepresentative: strOrEmpty(m.LegalRepresentative),
		Phone:               strOrEmpty(m.Phone),
		BillingAccount:      strOrEmpty(m.BillingAccount),
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		OperationMode:       domain.OperationMode(m.OperationMode),
		UserID:              m.UserID,
		IsEmailVerified:     m.IsEmailVerified,
		IsActive:            m.IsActive,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}

	if len(m.ContactChannels) > 0 {
		var cc domain.ContactChannels
		if err := json.Unmarshal(m.ContactChannels, &cc); err != nil {
			return nil, err
		}
		c.ContactChannels = &cc
	}
	if len(m.PaymentMethods) > 0 {
		if err := json.Unmarshal(m.PaymentMethods, &c.PaymentMethods); err != nil {
			return nil, err
		}
	}
	if len(m.BusinessHours) > 0 {
		if err := json.Unmarshal(m.BusinessHours, &c.BusinessHours); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func toCorporateModel(c *domain.Corporate) (corporateModel, error) {
	m := corporateModel{
		ID:                  c.ID,
		BusinessName:        c.BusinessName,
		BusinessDescription: strOrNil(c.BusinessDescription),
		Country:             c.Country,
		Province:            c.Province,
		Department:          strOrNil(c.Department),
		Address:             strOrNil(c.Address),
		BrandingURL:         strOrNil(c.BrandingURL),
		ActivityTypeID:      c.ActivityTypeID,
		LegalRepresentative: strOrNil(c.LegalRepresentative),
		Phone:               strOrNil(c.Phone),
		BillingAccount:      strOrNil(c.BillingAccount),
		Email:               strings.TrimSpace(strings.ToLower(c.Email)),
		PasswordHash:        c.PasswordHash,
		OperationMode:       string(c.OperationMode),
		UserID:              c.UserID,
		IsEmailVerified:     c.IsEmailVerified,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}

	if c.ContactChannels != nil {
		raw, err := json.Marshal(c.ContactChannels)
		if err != nil {
			return corporateModel{}, err
		}
		m.ContactChannels = raw
	}
	if c.PaymentMethods != nil {
		raw, err := json.Marshal(c.PaymentMethods)
		if err != nil {
			return corporateModel{}, err
		}
		m.PaymentMethods = raw
	}
	if c.BusinessHours != nil {
		raw, err := json.Marshal(c.BusinessHours)
		if err != nil {
			return corporateModel{}, err
		}
		m.BusinessHours = raw
	}

	return m, nil
}

func toDomainBranch(m branchModel) domain.Branch {
	return domain.Branch{
		ID:          m.ID,
		CorporateID: m.CorporateID,
		Name:        m.Name,
		Country:     strOrEmpty(m.Country),
		Province:    strOrEmpty(m.Province),
		Address:     strOrEmpty(m.Address),
		Phone:       strOrEmpty(m.Phone),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *CorporateRepository) Create(ctx context.Context, c *domain.Corporate) error {
	m, err := toCorporateModel(c)
	if err != nil {
		return err
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	mapped, err := toDomainCorporate(m)
	if err != nil {
		return err
	}
	*c = *mapped
	return nil
}

// CreateWithUser inserts the owning admin user and the corporate in one
// transaction, so a failed corporate insert never leaves an orphan account.
func (r *CorporateRepository) CreateWithUser(ctx context.Context, u *domain.User, c *domain.Corporate) error {
	um := toUserModel(u)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&um).Error; err != nil {
			return err
		}

		c.UserID = um.ID
		cm, err := toCorporateModel(c)
		if err != nil {
			return err
		}
		if err := tx.Create(&cm).Error; err != nil {
			return err
		}

		mapped, err := toDomainCorporate(cm)
		if err != nil {
			return err
		}
		*c = *mapped
		return nil
	})
	if err != nil {
		return err
	}

	*u = *toDomainUser(um)
	return nil
}

func (r *CorporateRepository) GetByID(ctx context.Context, id int64) (*domain.Corporate, error) {
	var m corporateModel
	if tx := r.db.WithContext(ctx).First(&m, id); tx.Error != nil {
		return nil, tx.Error
	}
	c, err := toDomainCorporate(m)
	if err != nil {
		return nil, err
	}

	var branches []branchModel
	if err := r.db.WithContext(ctx).Where("corporate_id = ?", id).Find(&branches).Error; err != nil {
		return nil, err
	}
	for _, b := range branches {
		c.Branches = append(c.Branches, toDomainBranch(b))
	}

	return c, nil
}

// GetActiveByID fetches a corporate only when it is active.
func (r *CorporateRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Corporate, error) {
	var m corporateModel
	tx := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCorporate(m)
}

func (r *CorporateRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Corporate, error) {
	var m corporateModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCorporate(m)
}

func (r *CorporateRepository) GetByEmail(ctx context.Context, email string) (*domain.Corporate, error) {
	var m corporateModel
	tx := r.db.WithContext(ctx).
		Where("email = ?", strings.TrimSpace(strings.ToLower(email))).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCorporate(m)
}

func (r *CorporateRepository) Save(ctx context.Context, c *domain.Corporate) error {
	m, err := toCorporateModel(c)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&m).Error
}

func (r *CorporateRepository) CreateBranch(ctx context.Context, b *domain.Branch) error {
	m := branchModel{
		CorporateID: b.CorporateID,
		Name:        b.Name,
		Country:     strOrNil(b.Country),
		Province:    strOrNil(b.Province),
		Address:     strOrNil(b.Address),
		Phone:       strOrNil(b.Phone),
		IsActive:    true,
	}
	if tx := r.db.WithContext(ctx).Create(&m); tx.Error != nil {
		return tx.Error
	}
	*b = toDomainBranch(m)
	return nil
}
