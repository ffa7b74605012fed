// Package stage provides HTTP handlers for the employer's hiring board stages.
package stage

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/riyanshibariyaa/jp5/internal/ats"
	"github.com/riyanshibariyaa/jp5/internal/controller"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

// StageController handles pipeline stage related endpoints
type StageController struct {
	Service *ats.Service
}

// NewStageController creates a new instance of StageController with the provided service.
func NewStageController(svc *ats.Service) *StageController {
	return &StageController{
		Service: svc,
	}
}

// CreateHandler adds a custom stage to the employer's hiring board.
// @Summary Create pipeline stage
// @Description Only employer users can access this endpoint
// @Tags Stage
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param stage body ats.StageInput true "Stage information"
// @Success 201 {object} model.PipelineStage "Successfully created stage"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body, duplicate order value"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /ats/stages [post]
func (sc *StageController) CreateHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	body := ats.StageInput{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	stage, err := sc.Service.CreateStage(c.Request.Context(), user, body)
	if err != nil {
		controller.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stage)
}

// ListHandler returns the caller's active stages in board order. HR users
// see the board of the employer that owns their company.
// @Summary List pipeline stages
// @Tags Stage
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.PipelineStage
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /ats/stages [get]
func (sc *StageController) ListHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	stages, err := sc.Service.ListStagesFor(c.Request.Context(), user)
	if err != nil {
		controller.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stages)
}

// DeactivateHandler soft-disables a stage on the caller's board.
// @Summary Deactivate pipeline stage
// @Description Only the employer that owns the stage can access this endpoint
// @Tags Stage
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path int true "Stage ID"
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an employer"
// @Failure 404 {object} utilities.ErrorResponse "Stage not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /ats/stages/{id} [delete]
func (sc *StageController) DeactivateHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid stage ID"})
		return
	}

	if err := sc.Service.DeactivateStage(c.Request.Context(), user, uint(id)); err != nil {
		controller.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Stage deactivated"})
}
