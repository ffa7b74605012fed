package ats

import (
	"context"
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/riyanshibariyaa/jp5/internal/model"
)

// ListFilter narrows an application listing. Role scoping is applied on top
// of it and can never be widened by the caller.
type ListFilter struct {
	Status string
	JobID  uint
}

// Pager is 1-based page/limit pagination input.
type Pager struct {
	Page  int
	Limit int
}

func (p Pager) normalize() Pager {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	return p
}

// ListApplications returns the page of applications the actor is allowed to
// see: applicants only their own, employer-side users only their company's,
// admins everything. Ordered newest applied_at first with id as the stable
// tie-break.
func (s *Service) ListApplications(ctx context.Context, actor model.User, filter ListFilter, pager Pager) ([]model.Application, model.Pagination, error) {
	pager = pager.normalize()

	query := s.DB.WithContext(ctx).Model(&model.Application{})
	query = scopeApplications(query, actor, s)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.JobID != 0 {
		query = query.Where("job_id = ?", filter.JobID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, model.Pagination{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	applications := []model.Application{}
	err := query.
		Preload("Job").Preload("Notes").
		Order("applied_at DESC, id DESC").
		Offset((pager.Page - 1) * pager.Limit).
		Limit(pager.Limit).
		Find(&applications).Error
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}

	return applications, paginate(pager, total), nil
}

// GetApplication fetches one application, subject to the same role scoping
// as ListApplications: ids outside the actor's scope report not found.
func (s *Service) GetApplication(ctx context.Context, actor model.User, id uint) (model.Application, error) {
	applications := []model.Application{}
	query := scopeApplications(s.DB.WithContext(ctx).Model(&model.Application{}), actor, s)
	err := query.Preload("Job").Preload("Notes").Where("applications.id = ?", id).Limit(1).Find(&applications).Error
	if err != nil {
		return model.Application{}, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	if len(applications) == 0 {
		return model.Application{}, ErrNotFound
	}
	return applications[0], nil
}

// ListInterviews returns the actor's interviews ordered by scheduled time.
func (s *Service) ListInterviews(ctx context.Context, actor model.User) ([]model.Interview, error) {
	query := s.DB.WithContext(ctx).Model(&model.Interview{})

	switch {
	case actor.Role == model.RoleJobSeeker:
		query = query.Where("applicant_id = ?", actor.ID)
	case actor.Role == model.RoleEmployer:
		query = query.Where("employer_id = ?", actor.ID)
	case actor.Role == model.RoleHR:
		query = query.Where("employer_id IN (?)", companyEmployerIDs(s.DB.DB, actor))
	case actor.Role == model.RoleAdmin:
		// Unscoped.
	default:
		return nil, ErrPermissionDenied
	}

	interviews := []model.Interview{}
	if err := query.Order("scheduled_at ASC").Find(&interviews).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return interviews, nil
}

func scopeApplications(query *gorm.DB, actor model.User, s *Service) *gorm.DB {
	switch actor.Role {
	case model.RoleJobSeeker:
		return query.Where("applicant_id = ?", actor.ID)
	case model.RoleEmployer:
		return query.Where("employer_id = ?", actor.ID)
	case model.RoleHR:
		return query.Where("employer_id IN (?)", companyEmployerIDs(s.DB.DB, actor))
	case model.RoleAdmin:
		return query
	default:
		// Unknown roles see nothing.
		return query.Where("1 = 0")
	}
}

// companyEmployerIDs builds a subquery of employer user ids in the actor's
// company, so HR delegates see the same records their employer does.
func companyEmployerIDs(db *gorm.DB, actor model.User) *gorm.DB {
	if actor.CompanyID == nil {
		return db.Model(&model.User{}).Select("id").Where("1 = 0")
	}
	return db.Model(&model.User{}).Select("id").
		Where("company_id = ? AND role = ?", *actor.CompanyID, model.RoleEmployer)
}

func paginate(pager Pager, total int64) model.Pagination {
	return model.Pagination{
		Page:  pager.Page,
		Limit: pager.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(pager.Limit))),
	}
}
