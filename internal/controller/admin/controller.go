// Package admin provides HTTP handlers for platform administration.
package admin

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riyanshibariyaa/jp5/internal/database"
	"github.com/riyanshibariyaa/jp5/internal/model"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

// AdminController handles admin only endpoints
type AdminController struct {
	DB *database.DBinstanceStruct
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(db *database.DBinstanceStruct) *AdminController {
	return &AdminController{
		DB: db,
	}
}

// StatsHandler returns platform wide counters for the admin dashboard.
// @Summary Get platform statistics
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string]interface{} "Platform counters"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/stats [get]
func (ac *AdminController) StatsHandler(c *gin.Context) {

	counts := map[string]int64{}

	var usersTotal, jobSeekers, employers, hrUsers int64
	var jobsTotal, jobsActive int64
	var applicationsTotal, interviewsTotal, companiesTotal int64

	steps := []struct {
		name  string
		dest  *int64
		query func() error
	}{
		{"users", &usersTotal, func() error {
			return ac.DB.Model(&model.User{}).Count(&usersTotal).Error
		}},
		{"job_seekers", &jobSeekers, func() error {
			return ac.DB.Model(&model.User{}).Where("role = ?", model.RoleJobSeeker).Count(&jobSeekers).Error
		}},
		{"employers", &employers, func() error {
			return ac.DB.Model(&model.User{}).Where("role = ?", model.RoleEmployer).Count(&employers).Error
		}},
		{"hr_users", &hrUsers, func() error {
			return ac.DB.Model(&model.User{}).Where("role = ?", model.RoleHR).Count(&hrUsers).Error
		}},
		{"jobs", &jobsTotal, func() error {
			return ac.DB.Model(&model.Job{}).Count(&jobsTotal).Error
		}},
		{"active_jobs", &jobsActive, func() error {
			return ac.DB.Model(&model.Job{}).Where("is_active = ?", true).Count(&jobsActive).Error
		}},
		{"applications", &applicationsTotal, func() error {
			return ac.DB.Model(&model.Application{}).Count(&applicationsTotal).Error
		}},
		{"interviews", &interviewsTotal, func() error {
			return ac.DB.Model(&model.Interview{}).Count(&interviewsTotal).Error
		}},
		{"companies", &companiesTotal, func() error {
			return ac.DB.Model(&model.Company{}).Count(&companiesTotal).Error
		}},
	}

	for _, step := range steps {
		if err := step.query(); err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Database error: %s", err.Error()),
			})
			return
		}
		counts[step.name] = *step.dest
	}

	var statusCounts []struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	if err := ac.DB.Model(&model.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"counts":                 counts,
		"applications_by_status": statusCounts,
	})
}
