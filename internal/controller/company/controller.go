// Package company provides HTTP handlers for company profile and HR staff management.
package company

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/riyanshibariyaa/jp5/internal/database"
	"github.com/riyanshibariyaa/jp5/internal/model"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

// CompanyController handles company profile and HR staff endpoints
type CompanyController struct {
	DB *database.DBinstanceStruct
}

// NewCompanyController creates a new instance of CompanyController
func NewCompanyController(db *database.DBinstanceStruct) *CompanyController {
	return &CompanyController{
		DB: db,
	}
}

type profileUpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Industry    *string `json:"industry"`
	Size        *string `json:"size"`
	Website     *string `json:"website"`
}

type hrUserUpdateInput struct {
	Permissions *model.HRPermissions `json:"hr_permissions"`
}

// GetProfile returns the acting user's company profile.
// @Summary Get the company profile of the acting employer or HR user
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.Company
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "User has no company"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/profile [get]
func (cc *CompanyController) GetProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	company, ok := cc.loadCompany(c, user)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, company)
}

// UpdateProfile applies a partial update to the company profile. Absent
// fields keep their current value.
// @Summary Update the company profile
// @Description Only company owners or HR users with the manage-settings permission have access to this endpoint
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Profile body profileUpdateInput true "Fields to change, absent fields are kept"
// @Success 200 {object} model.Company "Successfully update company profile"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Missing the manage-settings permission"
// @Failure 404 {object} utilities.ErrorResponse "User has no company"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/profile [patch]
func (cc *CompanyController) UpdateProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var input profileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	company, ok := cc.loadCompany(c, user)
	if !ok {
		return
	}

	if input.Name != nil {
		company.Name = *input.Name
	}
	if input.Description != nil {
		company.Description = *input.Description
	}
	if input.Industry != nil {
		company.Industry = *input.Industry
	}
	if input.Size != nil {
		company.Size = input.Size
	}
	if input.Website != nil {
		company.Website = *input.Website
	}

	if err := cc.DB.Save(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update company: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, company)
}

// ListHRUsers returns the HR delegates of the acting user's company.
// @Summary List the HR users of the company
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string]interface{} "Company summary and its HR users"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "User has no company"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/hr-users [get]
func (cc *CompanyController) ListHRUsers(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	company, ok := cc.loadCompany(c, user)
	if !ok {
		return
	}

	var hrUsers []model.User
	if err := cc.DB.Where("company_id = ? AND role = ?", company.ID, model.RoleHR).
		Order("created_at ASC").Find(&hrUsers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch HR users: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"company": gin.H{
			"id":   company.ID,
			"name": company.Name,
		},
		"hr_users": hrUsers,
	})
}

// UpdateHRUser changes the permission flags granted to an HR delegate.
// @Summary Update an HR user's permission flags
// @Description Only company owners or HR users with the manage-hr-users permission have access to this endpoint
// @Tags Company
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of the HR user"
// @Param Update body hrUserUpdateInput true "Replacement permission set"
// @Success 200 {object} model.User "Updated HR user"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Missing the manage-hr-users permission"
// @Failure 404 {object} utilities.ErrorResponse "HR user not found in the company"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/hr-users/{id} [patch]
func (cc *CompanyController) UpdateHRUser(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var input hrUserUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	hrUser, ok := cc.loadHRUser(c, user, c.Param("id"))
	if !ok {
		return
	}

	if input.Permissions != nil {
		hrUser.HRPermissions = *input.Permissions
	}

	if err := cc.DB.Save(&hrUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update HR user: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, hrUser)
}

// RemoveHRUser detaches an HR delegate from the company and revokes every
// permission. The account itself is kept.
// @Summary Remove an HR user from the company
// @Description Only the company owner has access to this endpoint
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of the HR user"
// @Success 200 {object} utilities.MessageResponse "Successfully remove HR user"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the company owner"
// @Failure 404 {object} utilities.ErrorResponse "HR user not found in the company"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/hr-users/{id} [delete]
func (cc *CompanyController) RemoveHRUser(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	hrUser, ok := cc.loadHRUser(c, user, c.Param("id"))
	if !ok {
		return
	}

	hrUser.CompanyID = nil
	hrUser.HRPermissions = model.HRPermissions{}
	if err := cc.DB.Save(&hrUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to remove HR user: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "HR user removed"})
}

// loadCompany resolves the acting user's company and writes the error
// response itself when there is none.
func (cc *CompanyController) loadCompany(c *gin.Context, user model.User) (model.Company, bool) {
	var company model.Company
	if user.CompanyID == nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
		return company, false
	}

	if err := cc.DB.Where("id = ?", *user.CompanyID).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
			return company, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve company: %s", err.Error()),
		})
		return company, false
	}
	return company, true
}

// loadHRUser fetches an HR delegate of the acting user's company. Ids from
// other companies report not found so existence does not leak.
func (cc *CompanyController) loadHRUser(c *gin.Context, actor model.User, id string) (model.User, bool) {
	var hrUser model.User
	if actor.CompanyID == nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "HR user not found"})
		return hrUser, false
	}

	hrID, err := uuid.Parse(id)
	if err != nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "HR user not found"})
		return hrUser, false
	}

	err = cc.DB.Where("id = ? AND role = ? AND company_id = ?", hrID, model.RoleHR, *actor.CompanyID).
		First(&hrUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "HR user not found"})
			return hrUser, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve HR user: %s", err.Error()),
		})
		return hrUser, false
	}
	return hrUser, true
}
