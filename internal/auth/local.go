package auth

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

// LocalAuthHandler holds DB reference for handler methods.
type LocalAuthHandler struct {
	DB *database.DBinstanceStruct
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with the provided database connection.
func NewLocalAuthHandler(db *database.DBinstanceStruct) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB: db,
	}
}

type registerInfo struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	Role      string `json:"role" binding:"required,oneof=jobseeker employer"`

	// Employer registration also creates the company profile.
	CompanyName     string `json:"company_name"`
	CompanyIndustry string `json:"company_industry"`
	CompanyWebsite  string `json:"company_website"`
}

type hrRegisterInfo struct {
	Email       string              `json:"email" binding:"required,email"`
	Password    string              `json:"password" binding:"required"`
	FirstName   string              `json:"first_name" binding:"required"`
	LastName    string              `json:"last_name" binding:"required"`
	Permissions model.HRPermissions `json:"permissions"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterHandler handles local registration for job seekers and employers.
// @Summary Register a job seeker or employer account
// @Description Email must not already exist and password must be at least 8 characters long. Employer registration also creates the company profile.
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "role can be only 'jobseeker' or 'employer'"
// @Success 201 {object} model.AuthResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (lh *LocalAuthHandler) RegisterHandler(c *gin.Context) {
	var info registerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Password should longer or equal to 8 characters",
		})
		return
	}

	if info.Role == model.RoleEmployer && info.CompanyName == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Company name must be provided for employer registration",
		})
		return
	}

	var existing model.User
	err := lh.DB.Where("email = ?", info.Email).First(&existing).Error
	switch {
	case err == nil:
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email already exist",
		})
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing
	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	user := model.User{
		Email:     info.Email,
		Password:  hashedPassword,
		FirstName: info.FirstName,
		LastName:  info.LastName,
		Role:      info.Role,
	}
	if info.Phone != "" {
		user.Phone = &info.Phone
	}

	if info.Role == model.RoleEmployer {
		user.ID = uuid.New()
		company := model.Company{
			Name:     info.CompanyName,
			Industry: info.CompanyIndustry,
			Website:  info.CompanyWebsite,
			OwnerID:  user.ID,
		}
		if err := lh.DB.Create(&company).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to create company: %s", err.Error()),
			})
			return
		}
		user.CompanyID = &company.ID
	}

	if err := lh.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create user: %s", err.Error()),
		})
		return
	}

	accessToken, _, err := GenerateStandardToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, model.AuthResponse{
		User:        user,
		AccessToken: accessToken,
	})
}

// RegisterHRHandler creates an HR delegate account under the acting
// employer's company with the granted permission set.
// @Summary Register an HR delegate under the employer's company
// @Description Only company owners may create HR users
// @Tags Auth
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Info body hrRegisterInfo true "HR account information and granted permissions"
// @Success 201 {object} model.AuthResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as employer"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/register/hr [post]
func (lh *LocalAuthHandler) RegisterHRHandler(c *gin.Context) {
	owner, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if owner.Role != model.RoleEmployer || owner.CompanyID == nil {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Only company owners can create HR users",
		})
		return
	}

	var info hrRegisterInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if len(info.Password) < 8 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Password should longer or equal to 8 characters",
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	hrUser := model.User{
		Email:         info.Email,
		Password:      hashedPassword,
		FirstName:     info.FirstName,
		LastName:      info.LastName,
		Role:          model.RoleHR,
		CompanyID:     owner.CompanyID,
		HRPermissions: info.Permissions,
	}

	if err := lh.DB.Create(&hrUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create user: %s", err.Error()),
		})
		return
	}

	accessToken, _, err := GenerateStandardToken(hrUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, model.AuthResponse{
		User:        hrUser,
		AccessToken: accessToken,
	})
}

// LoginHandler handles local login by receiving email and password.
// @Summary Handles local login by receiving email and password
// @Description Email must exist and password match
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} model.AuthResponse "Login success"
// @Failure 400 {object} utilities.ErrorResponse "Info provided not met the condition"
// @Failure 401 {object} utilities.ErrorResponse "Email not exist or password incorrect"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) LoginHandler(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email or password is not provided",
		})
		return
	}

	var user model.User
	err := lh.DB.Preload("Company").Where("email = ?", info.Email).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
		})
		return
	case err == nil:
		// Do nothing
	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if user.Password == "" || !utilities.VerifyPassword(info.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Email or password is incorrect",
		})
		return
	}

	accessToken, _, err := GenerateStandardToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, model.AuthResponse{
		User:        user,
		AccessToken: accessToken,
	})
}

// MeHandler returns the authenticated user's profile.
// @Summary Returns the authenticated user's profile
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.User
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /auth/me [get]
func (lh *LocalAuthHandler) MeHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}
