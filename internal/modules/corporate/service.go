package corporate

import (
	"context"
	"errors"
	"strings"

	"itravelly/internal/domain"
	"itravelly/internal/pkg/validator"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	corporates CorporateRepository
	users      UserRepository
	verifier   VerificationSender
	log        *logrus.Logger
}

func NewService(corporates CorporateRepository, users UserRepository, verifier VerificationSender, log *logrus.Logger) *Service {
	return &Service{
		corporates: corporates,
		users:      users,
		verifier:   verifier,
		log:        log,
	}
}

// Register creates the business account together with its admin user. Both
// rows land in one transaction; the admin logs in with the corporate email.
func (s *Service) Register(ctx context.Context, req RegisterCorporateRequest) (*RegisterResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.checkEmailFree(ctx, email); err != nil {
		return nil, err
	}

	mode := req.OperationMode
	switch mode {
	case domain.OperationInPerson, domain.OperationOnline, domain.OperationHybrid:
	case "":
		mode = domain.OperationInPerson
	default:
		return nil, ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PhoneNumber:  req.PhoneNumber,
		Country:      req.Country,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}

	corp := &domain.Corporate{
		BusinessName:        req.BusinessName,
		BusinessDescription: req.BusinessDescription,
		Country:             req.Country,
		Province:            req.Province,
		Department:          req.Department,
		Address:             req.Address,
		ActivityTypeID:      req.ActivityTypeID,
		LegalRepresentative: req.LegalRepresentative,
		ContactChannels:     req.ContactChannels,
		Phone:               req.Phone,
		PaymentMethods:      req.PaymentMethods,
		Email:               email,
		PasswordHash:        string(hash),
		OperationMode:       mode,
		BusinessHours:       req.BusinessHours,
		IsActive:            true,
	}

	if err := s.corporates.CreateWithUser(ctx, user, corp); err != nil {
		return nil, err
	}

	if err := s.verifier.IssueCode(ctx, user); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("verification code not issued")
	}

	user.PasswordHash = ""
	corp.PasswordHash = ""
	return &RegisterResult{Corporate: corp, User: user}, nil
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.Corporate, error) {
	corp, err := s.corporates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	corp.PasswordHash = ""
	return corp, nil
}

func (s *Service) Update(ctx context.Context, corporateID int64, req UpdateCorporateRequest) (*domain.Corporate, error) {
	corp, err := s.corporates.GetByID(ctx, corporateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.BusinessName != nil {
		corp.BusinessName = *req.BusinessName
	}
	if req.BusinessDescription != nil {
		corp.BusinessDescription = *req.BusinessDescription
	}
	if req.Country != nil {
		corp.Country = *req.Country
	}
	if req.Province != nil {
		corp.Province = *req.Province
	}
	if req.Department != nil {
		corp.Department = *req.Department
	}
	if req.Address != nil {
		corp.Address = *req.Address
	}
	if req.BrandingURL != nil {
		corp.BrandingURL = *req.BrandingURL
	}
	if req.LegalRepresentative != nil {
		corp.LegalRepresentative = *req.LegalRepresentative
	}
	if req.ContactChannels != nil {
		corp.ContactChannels = req.ContactChannels
	}
	if req.Phone != nil {
		corp.Phone = *req.Phone
	}
	if req.PaymentMethods != nil {
		corp.PaymentMethods = req.PaymentMethods
	}
	if req.OperationMode != nil {
		switch domain.OperationMode(*req.OperationMode) {
		case domain.OperationInPerson, domain.OperationOnline, domain.OperationHybrid:
			corp.OperationMode = domain.OperationMode(*req.OperationMode)
		default:
			return nil, ErrValidation
		}
	}
	if req.BusinessHours != nil {
		corp.BusinessHours = req.BusinessHours
	}
	if fields := validator.Validate(corp); fields != nil {
		return nil, ErrValidation
	}

	if err := s.corporates.Save(ctx, corp); err != nil {
		return nil, err
	}
	corp.PasswordHash = ""
	return corp, nil
}

func (s *Service) AddBranch(ctx context.Context, corporateID int64, req CreateBranchRequest) (*domain.Branch, error) {
	if _, err := s.corporates.GetByID(ctx, corporateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b := &domain.Branch{
		CorporateID: corporateID,
		Name:        req.Name,
		Country:     req.Country,
		Province:    req.Province,
		Address:     req.Address,
		Phone:       req.Phone,
	}
	if err := s.corporates.CreateBranch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) checkEmailFree(ctx context.Context, email string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if _, err := s.corporates.GetByEmail(ctx, email); err == nil {
		return ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
