package user

import (
	"context"
	"errors"

	"itravelly/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *Service) FindAll(ctx context.Context, limit, offset int) ([]domain.User, int64, error) {
	users, total, err := s.users.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, total, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = *req.PhoneNumber
	}
	if req.Country != nil {
		u.Country = *req.Country
	}
	if req.CountryCode != nil {
		u.CountryCode = *req.CountryCode
	}
	if req.DialCode != nil {
		u.DialCode = *req.DialCode
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

// UpdateRole changes a user's role. Only a superadmin may grant or revoke
// the admin and superadmin roles.
func (s *Service) UpdateRole(ctx context.Context, actorRole domain.UserRole, id int64, role string) (*domain.User, error) {
	next := domain.UserRole(role)
	switch next {
	case domain.RoleClient, domain.RoleAdmin, domain.RoleSuperadmin:
	default:
		return nil, ErrValidation
	}
	if actorRole != domain.RoleSuperadmin {
		return nil, ErrForbidden
	}

	u, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateRole(ctx, id, next); err != nil {
		return nil, err
	}
	u.Role = next
	return u, nil
}

func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*domain.User, error) {
	u, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	u.IsActive = active
	return u, nil
}
