// Package interview provides HTTP handlers for interview scheduling and feedback.
package interview

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/riyanshibariyaa/jp5/internal/ats"
	"github.com/riyanshibariyaa/jp5/internal/controller"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

// InterviewController handles interview related endpoints
type InterviewController struct {
	Service *ats.Service
}

// NewInterviewController creates a new instance of InterviewController with the provided service.
func NewInterviewController(svc *ats.Service) *InterviewController {
	return &InterviewController{
		Service: svc,
	}
}

// ScheduleHandler creates an interview for an application and moves the
// application into the interview stage.
// @Summary Schedule interview for an application
// @Description Only employer-side users with the scheduling permission can access this endpoint
// @Tags Interview
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param interview body ats.ScheduleInput true "Interview information"
// @Success 201 {object} model.Interview "Successfully scheduled interview"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "No permission to schedule interviews"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /interviews [post]
func (ic *InterviewController) ScheduleHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	body := ats.ScheduleInput{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	interview, err := ic.Service.ScheduleInterview(c.Request.Context(), user, body)
	if err != nil {
		controller.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interview)
}

// ListHandler returns interviews visible to the caller ordered by scheduled time.
// @Summary List interviews
// @Description Job seekers see their own interviews, employer-side users their company's, admins everything
// @Tags Interview
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Interview
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /interviews [get]
func (ic *InterviewController) ListHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	interviews, err := ic.Service.ListInterviews(c.Request.Context(), user)
	if err != nil {
		controller.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interviews)
}

// FeedbackHandler records the outcome of an interview.
// @Summary Record interview feedback
// @Description Only employer-side users within the owning company can record feedback
// @Tags Interview
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Interview ID"
// @Param feedback body ats.FeedbackInput true "Feedback information"
// @Success 200 {object} model.Interview
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "No permission to record feedback"
// @Failure 404 {object} utilities.ErrorResponse "Interview not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /interviews/{id}/feedback [patch]
func (ic *InterviewController) FeedbackHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid interview ID"})
		return
	}

	body := ats.FeedbackInput{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	interview, err := ic.Service.RecordFeedback(c.Request.Context(), user, uint(id), body)
	if err != nil {
		controller.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}
