package activitytype

import (
	"context"
	"errors"

	"itravelly/internal/domain"

	"gorm.io/gorm"
)

type CreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IconURL     string `json:"icon_url"`
}

type UpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IconURL     *string `json:"icon_url"`
	IsActive    *bool   `json:"is_active"`
}

type Service struct {
	types ActivityTypeRepository
}

func NewService(types ActivityTypeRepository) *Service {
	return &Service{types: types}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.ActivityType, error) {
	t := &domain.ActivityType{
		Name:        req.Name,
		Description: req.Description,
		IconURL:     req.IconURL,
		IsActive:    true,
	}
	if err := s.types.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) FindAll(ctx context.Context) ([]domain.ActivityType, error) {
	return s.types.GetAll(ctx)
}

func (s *Service) FindOne(ctx context.Context, id int64) (*domain.ActivityType, error) {
	t, err := s.types.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*domain.ActivityType, error) {
	t, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrValidation
		}
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.IconURL != nil {
		t.IconURL = *req.IconURL
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.types.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Remove(ctx context.Context, id int64) error {
	if _, err := s.FindOne(ctx, id); err != nil {
		return err
	}
	return s.types.Deactivate(ctx, id)
}
