// Package jobpost provides HTTP handlers for job post related operations.
package jobpost

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/riyanshibariyaa/jp5/internal/database"
	"github.com/riyanshibariyaa/jp5/internal/model"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

// JobPostController handles job post related endpoints
type JobPostController struct {
	DB *database.DBinstanceStruct
}

// NewJobPostController creates a new instance of JobPostController
func NewJobPostController(db *database.DBinstanceStruct) *JobPostController {
	return &JobPostController{
		DB: db,
	}
}

// CreateJobPostHandler handles the creation of a new job post by an employer.
// @Summary Create job post based on given json structure
// @Description Employers and HR users with the posting permission have access to this endpoint
// @Tags Jobpost
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Jobpost body model.EditableJobInfo true "Input jobpost information"
// @Success 201 {object} model.Job "Successfully create job post"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header, or invalid job post struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an employer-side user"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobPostController) CreateJobPostHandler(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	job := model.Job{}
	if err := c.ShouldBindJSON(&job.EditableJobInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	job.EmployerID = user.ID
	if user.Role == model.RoleHR {
		// HR delegates post on behalf of the company owner so the post and
		// its applications stay inside the employer's scope.
		if user.CompanyID == nil {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "HR user is not attached to a company",
			})
			return
		}
		var company model.Company
		if err := jc.DB.First(&company, "id = ?", *user.CompanyID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to resolve company: %s", err.Error()),
			})
			return
		}
		job.EmployerID = company.OwnerID
	}
	job.IsActive = true
	if err := jc.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job post: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// GetPosts fetches all active job posts that match query from the database
// and returns them as a JSON response.
// @Summary Get active job posts based on query
// @Description Every query are not required, but they have specific use defined in their description
// @Tags Jobpost
// @Produce json
// @Param search query string false "Search from job post title with substring matching and case insensitive"
// @Param job_type query string false "Job type field, must exactly match to get result"
// @Param category query string false "Category field with substring matching and case insensitive"
// @Param experience_level query string false "Experience level field, must exactly match to get result"
// @Param location query string false "Search from location with substring matching and case insensitive"
// @Param skill query string false "Search if skills field contain skill param, no substring matching and case insensitive"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} map[string]interface{} "Return page of active job post(s)"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobPostController) GetPosts(c *gin.Context) {

	rawSearch := c.Query("search")
	rawJobType := c.Query("job_type")
	rawCategory := c.Query("category")
	rawExp := c.Query("experience_level")
	rawLocation := c.Query("location")
	rawSkill := c.Query("skill")

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	result := jc.DB.Model(&model.Job{}).Where("is_active = ?", true)

	if rawSearch != "" {
		result = result.Where("title ILIKE ?", "%"+rawSearch+"%")
	}

	if rawJobType != "" {
		result = result.Where("job_type = ?", rawJobType)
	}

	if rawCategory != "" {
		result = result.Where("category ILIKE ?", "%"+rawCategory+"%")
	}

	if rawExp != "" {
		result = result.Where("experience_level = ?", rawExp)
	}

	if rawLocation != "" {
		result = result.Where("location ILIKE ?", "%"+rawLocation+"%")
	}

	if rawSkill != "" {
		result = result.Where("? ILIKE ANY(skills)", rawSkill)
	}

	var total int64
	if err := result.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to count job posts: ", err.Error()),
		})
		return
	}

	var posts []model.Job
	if err := result.
		Order("posted_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch job post: ", err.Error()),
		})
		return
	}

	pages := int(total) / limit
	if int(total)%limit != 0 {
		pages++
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs": posts,
		"pagination": model.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

// GetPostByID fetches a job post by its ID from the database, counts the
// view, and returns it as a JSON response.
// @Summary Get job post by ID
// @Description Retrieve a specific job post using its unique ID
// @Tags Jobpost
// @Produce json
// @Param id path integer true "ID of desired job post"
// @Success 200 {object} model.Job "Return the job post with the specified ID"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobPostController) GetPostByID(c *gin.Context) {
	id := c.Param("id")

	job := model.Job{}
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	// Count the view without racing concurrent readers.
	if err := jc.DB.Model(&model.Job{}).
		Where("id = ?", job.ID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error; err == nil {
		job.Views++
	}

	c.JSON(http.StatusOK, job)
}

// EditJobPost allows an employer-side user to update a job post their company owns.
// @Summary Edit job post based on given json structure
// @Description Only the employer that own the post, their HR staff or admin have access to this endpoint
// @Tags Jobpost
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job post"
// @Param Jobpost body model.EditableJobInfo true "Input jobpost information"
// @Success 200 {object} model.Job "Successfully update job post"
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header, or invalid job post struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to edit"
// @Failure 404 {object} utilities.ErrorResponse "Post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [patch]
func (jc *JobPostController) EditJobPost(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	job := model.Job{}
	if err := jc.DB.Preload("Employer").Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	if !jc.canManagePost(user, job) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to edit this job post",
		})
		return
	}

	updated := model.Job{}
	if err := c.ShouldBindJSON(&updated.EditableJobInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	job.EditableJobInfo = updated.EditableJobInfo
	if err := jc.DB.Save(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job post: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// CloseJobPost deactivates a job post so it no longer accepts applications.
// @Summary Close job post
// @Description Only the employer that own the post, their HR staff or admin have access to this endpoint
// @Tags Jobpost
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job post"
// @Success 200 {object} utilities.MessageResponse "Successfully close job post"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to close"
// @Failure 404 {object} utilities.ErrorResponse "Post not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobPostController) CloseJobPost(c *gin.Context) {

	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	job := model.Job{}
	if err := jc.DB.Preload("Employer").Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job post: %s", err.Error()),
		})
		return
	}

	if !jc.canManagePost(user, job) {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to close this job post",
		})
		return
	}

	if err := jc.DB.Model(&job).UpdateColumn("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to close job post: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job post closed"})
}

// canManagePost reports whether the user may edit or close the given post.
// Owners always can, HR users when they share the owner's company, admins
// unconditionally.
func (jc *JobPostController) canManagePost(user model.User, job model.Job) bool {
	if user.Role == model.RoleAdmin {
		return true
	}
	if job.EmployerID == user.ID {
		return true
	}
	if user.Role == model.RoleHR && user.CompanyID != nil &&
		job.Employer.CompanyID != nil && *user.CompanyID == *job.Employer.CompanyID {
		return true
	}
	return false
}
