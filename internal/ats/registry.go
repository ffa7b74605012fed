package ats

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/riyanshibariyaa/jp5/internal/model"
)

// StageInput is the request payload for creating a pipeline stage.
type StageInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"omitempty,hexcolor"`
	Order       int    `json:"order" binding:"required,min=1"`
}

// CreateStage adds a stage to the employer's hiring board. Rejects with
// ErrDuplicateOrder when an active stage of the same employer already holds
// the order value; it never reorders automatically.
func (s *Service) CreateStage(ctx context.Context, employer model.User, in StageInput) (model.PipelineStage, error) {
	if employer.Role != model.RoleEmployer {
		return model.PipelineStage{}, ErrPermissionDenied
	}

	var existing model.PipelineStage
	err := s.DB.WithContext(ctx).
		Where("employer_id = ? AND stage_order = ? AND is_active = ?", employer.ID, in.Order, true).
		First(&existing).Error
	switch {
	case err == nil:
		return model.PipelineStage{}, ErrDuplicateOrder
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Free to use this order value.
	default:
		return model.PipelineStage{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	stage := model.PipelineStage{
		EmployerID:  employer.ID,
		Name:        in.Name,
		Description: in.Description,
		Order:       in.Order,
		IsActive:    true,
	}
	if in.Color != "" {
		stage.Color = in.Color
	}

	if err := s.DB.WithContext(ctx).Create(&stage).Error; err != nil {
		return model.PipelineStage{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return stage, nil
}

// ListStages returns the employer's active stages sorted ascending by order.
func (s *Service) ListStages(ctx context.Context, employerID interface{}) ([]model.PipelineStage, error) {
	stages := []model.PipelineStage{}
	err := s.DB.WithContext(ctx).
		Where("employer_id = ? AND is_active = ?", employerID, true).
		Order("stage_order ASC").
		Find(&stages).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return stages, nil
}

// ListStagesFor resolves which board the actor may read. HR delegates see
// the board of the employer that owns their company.
func (s *Service) ListStagesFor(ctx context.Context, actor model.User) ([]model.PipelineStage, error) {
	ownerID := actor.ID
	if actor.Role == model.RoleHR && actor.CompanyID != nil {
		var company model.Company
		err := s.DB.WithContext(ctx).Where("id = ?", *actor.CompanyID).First(&company).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []model.PipelineStage{}, nil
			}
			return nil, fmt.Errorf("%w: %v", ErrTransient, err)
		}
		ownerID = company.OwnerID
	}
	return s.ListStages(ctx, ownerID)
}

// DeactivateStage soft-disables a stage. Historical applications referencing
// the label stay displayable; the row is never deleted.
func (s *Service) DeactivateStage(ctx context.Context, employer model.User, stageID uint) error {
	if employer.Role != model.RoleEmployer {
		return ErrPermissionDenied
	}

	var stage model.PipelineStage
	err := s.DB.WithContext(ctx).Where("id = ? AND employer_id = ?", stageID, employer.ID).First(&stage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}

	if err := s.DB.WithContext(ctx).Model(&stage).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return nil
}
