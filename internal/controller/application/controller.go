// Package application provides HTTP handlers for job application operations.
package application

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/riyanshibariyaa/jp5/internal/ats"
	"github.com/riyanshibariyaa/jp5/internal/controller"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	Service *ats.Service
}

// NewApplicationController creates a new instance of ApplicationController with the provided service.
func NewApplicationController(svc *ats.Service) *ApplicationController {
	return &ApplicationController{
		Service: svc,
	}
}

type submitInfo struct {
	JobID       uint   `json:"job_id" binding:"required"`
	CoverLetter string `json:"cover_letter"`
}

type transitionInfo struct {
	Status   string `json:"status" binding:"omitempty,appstatus"`
	ATSStage string `json:"ats_stage" binding:"omitempty,atsstage"`
}

type noteInfo struct {
	Content string `json:"content" binding:"required"`
}

// SubmitHandler handles the creation of a new job application by a job seeker.
// @Summary Apply to a job posting
// @Description Only job seeker user can access this endpoint
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param application body submitInfo true "Application information"
// @Success 201 {object} model.Application "Successfully applied to job post"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body, duplicate application"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job post not found or closed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [post]
func (a *ApplicationController) SubmitHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	body := submitInfo{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	created, err := a.Service.Submit(c.Request.Context(), user, body.JobID, body.CoverLetter)
	if err != nil {
		controller.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListHandler returns the page of applications visible to the caller.
// @Summary List applications
// @Description Job seekers see their own applications, employer-side users their company's, admins everything
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param status query string false "Filter by application status"
// @Param job_id query int false "Filter by job post"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} map[string]interface{} "Page of applications"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [get]
func (a *ApplicationController) ListHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, _ := strconv.Atoi(c.Query("job_id"))
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	filter := ats.ListFilter{
		Status: c.Query("status"),
		JobID:  uint(jobID),
	}

	applications, pagination, err := a.Service.ListApplications(
		c.Request.Context(), user, filter, ats.Pager{Page: page, Limit: limit},
	)
	if err != nil {
		controller.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": applications,
		"pagination":   pagination,
	})
}

// GetHandler returns a single application if the caller may see it.
// @Summary Get application by ID
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application ID"
// @Success 200 {object} model.Application
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [get]
func (a *ApplicationController) GetHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application ID"})
		return
	}

	application, err := a.Service.GetApplication(c.Request.Context(), user, uint(id))
	if err != nil {
		controller.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// TransitionHandler moves an application to a new status and/or pipeline stage.
// @Summary Update application status or pipeline stage
// @Description Employer-side users move applications forward or reject; job seekers may only withdraw their own
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application ID"
// @Param transition body transitionInfo true "Target status and/or stage"
// @Success 200 {object} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body, invalid transition"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "No permission to manage this application"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id}/stage [patch]
func (a *ApplicationController) TransitionHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application ID"})
		return
	}

	body := transitionInfo{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if body.Status == "" && body.ATSStage == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Either status or ats_stage must be provided",
		})
		return
	}

	application, err := a.Service.TransitionStage(
		c.Request.Context(), user, uint(id), body.Status, body.ATSStage,
	)
	if err != nil {
		controller.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, application)
}

// AddNoteHandler appends an internal note to an application.
// @Summary Add internal note to application
// @Description Only employer-side users within the owning company can add notes
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Application ID"
// @Param note body noteInfo true "Note content"
// @Success 201 {object} model.ApplicationNote
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id}/notes [post]
func (a *ApplicationController) AddNoteHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid application ID"})
		return
	}

	body := noteInfo{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	note, err := a.Service.AddNote(c.Request.Context(), user, uint(id), body.Content)
	if err != nil {
		controller.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, note)
}
