package company

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"github.com/riyanshibariyaa/jp5/internal/auth"
	"github.com/riyanshibariyaa/jp5/internal/database"
	"github.com/riyanshibariyaa/jp5/internal/middleware"
	"github.com/riyanshibariyaa/jp5/internal/model"
	"github.com/riyanshibariyaa/jp5/internal/testutil"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	code := m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
	os.Exit(code)
}

func newRouter() *gin.Engine {
	r := gin.Default()
	cc := NewCompanyController(testDB)
	authed := r.Group("/", middleware.RequireAuth(testDB),
		middleware.CheckRole(model.RoleEmployer, model.RoleHR, model.RoleAdmin))
	authed.GET("/company/profile", cc.GetProfile)
	authed.PATCH("/company/profile",
		middleware.CheckPermission(func(p model.HRPermissions) bool { return p.CanManageCompanySettings }),
		cc.UpdateProfile)
	authed.GET("/company/hr-users", cc.ListHRUsers)
	authed.PATCH("/company/hr-users/:id",
		middleware.CheckPermission(func(p model.HRPermissions) bool { return p.CanManageHRUsers }),
		cc.UpdateHRUser)
	authed.DELETE("/company/hr-users/:id",
		middleware.CheckRole(model.RoleEmployer),
		cc.RemoveHRUser)
	return r
}

// seedHRUser creates a throwaway HR delegate under company 1 so permission
// edits never touch the shared fixtures.
func seedHRUser(t *testing.T, email string) model.User {
	t.Helper()
	hashed, err := utilities.HashPassword(database.TestSeedPassword)
	assert.NoError(t, err)
	hrUser := model.User{
		Email:     email,
		Password:  hashed,
		FirstName: "Temp",
		LastName:  "Delegate",
		Role:      model.RoleHR,
		CompanyID: &database.TestCompany1.ID,
	}
	assert.NoError(t, testDB.Create(&hrUser).Error)
	return hrUser
}

func TestGetProfile_employerAndHR(t *testing.T) {
	r := newRouter()
	employer1, err := auth.GetAccessToken(database.TestEmployer1.Email, testDB)
	assert.NoError(t, err)
	hr1, err := auth.GetAccessToken(database.TestHRUser.Email, testDB)
	assert.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, employer1, r, "/company/profile", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestCompany1.Name, resp["name"])

	rec, resp = testutil.MakeJSONRequest(nil, hr1, r, "/company/profile", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestCompany1.Name, resp["name"])
}

func TestGetProfile_seekerForbidden(t *testing.T) {
	r := newRouter()
	token, err := auth.GetAccessToken(database.TestSeeker1.Email, testDB)
	assert.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/company/profile", http.MethodGet)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateProfile_partialUpdate(t *testing.T) {
	r := newRouter()
	token, err := auth.GetAccessToken(database.TestEmployer1.Email, testDB)
	assert.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(gin.H{"description": "We ship reliable software."},
		token, r, "/company/profile", http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "We ship reliable software.", resp["description"])
	// Absent fields keep their value.
	assert.Equal(t, database.TestCompany1.Name, resp["name"])

	assert.NoError(t, testDB.Model(&model.Company{}).Where("id = ?", database.TestCompany1.ID).
		UpdateColumn("description", database.TestCompany1.Description).Error)
}

func TestUpdateProfile_hrNeedsSettingsPermission(t *testing.T) {
	r := newRouter()
	token, err := auth.GetAccessToken(database.TestHRUser.Email, testDB)
	assert.NoError(t, err)

	// The seeded HR user holds pipeline permissions but not manage-settings.
	rec, _ := testutil.MakeJSONRequest(gin.H{"description": "unauthorized edit"},
		token, r, "/company/profile", http.MethodPatch)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListHRUsers_companyScoped(t *testing.T) {
	r := newRouter()
	hrUser := seedHRUser(t, "temp.delegate@example.com")
	defer testDB.Where("id = ?", hrUser.ID).Delete(&model.User{})

	employer1, err := auth.GetAccessToken(database.TestEmployer1.Email, testDB)
	assert.NoError(t, err)
	employer2, err := auth.GetAccessToken(database.TestEmployer2.Email, testDB)
	assert.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, employer1, r, "/company/hr-users", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	hrUsers := resp["hr_users"].([]interface{})
	assert.Len(t, hrUsers, 2)
	assert.NotContains(t, rec.Body.String(), "password")

	// Company 2 has no HR staff and never sees company 1's.
	rec, resp = testutil.MakeJSONRequest(nil, employer2, r, "/company/hr-users", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp["hr_users"].([]interface{}), 0)
}

func TestUpdateHRUser_changesPermissions(t *testing.T) {
	r := newRouter()
	hrUser := seedHRUser(t, "promote.me@example.com")
	defer testDB.Where("id = ?", hrUser.ID).Delete(&model.User{})

	token, err := auth.GetAccessToken(database.TestEmployer1.Email, testDB)
	assert.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"hr_permissions": gin.H{
			"can_post_jobs":           true,
			"can_manage_applications": true,
		},
	}, token, r, fmt.Sprintf("/company/hr-users/%s", hrUser.ID), http.MethodPatch)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	permissions := resp["hr_permissions"].(map[string]interface{})
	assert.Equal(t, true, permissions["can_post_jobs"])
	assert.Equal(t, true, permissions["can_manage_applications"])
	assert.Equal(t, false, permissions["can_schedule_interviews"])

	var stored model.User
	assert.NoError(t, testDB.First(&stored, "id = ?", hrUser.ID).Error)
	assert.True(t, stored.HRPermissions.CanPostJobs)
	assert.False(t, stored.HRPermissions.CanScheduleInterviews)
}

func TestUpdateHRUser_foreignCompanyNotFound(t *testing.T) {
	r := newRouter()
	hrUser := seedHRUser(t, "not.yours@example.com")
	defer testDB.Where("id = ?", hrUser.ID).Delete(&model.User{})

	token, err := auth.GetAccessToken(database.TestEmployer2.Email, testDB)
	assert.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"hr_permissions": gin.H{"can_post_jobs": true},
	}, token, r, fmt.Sprintf("/company/hr-users/%s", hrUser.ID), http.MethodPatch)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveHRUser_detachesFromCompany(t *testing.T) {
	r := newRouter()
	hrUser := seedHRUser(t, "leaving.soon@example.com")
	defer testDB.Where("id = ?", hrUser.ID).Delete(&model.User{})

	token, err := auth.GetAccessToken(database.TestEmployer1.Email, testDB)
	assert.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(nil, token, r,
		fmt.Sprintf("/company/hr-users/%s", hrUser.ID), http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stored model.User
	assert.NoError(t, testDB.First(&stored, "id = ?", hrUser.ID).Error)
	assert.Nil(t, stored.CompanyID)
	assert.Equal(t, model.HRPermissions{}, stored.HRPermissions)
}

func TestRemoveHRUser_hrForbidden(t *testing.T) {
	r := newRouter()
	hrUser := seedHRUser(t, "still.here@example.com")
	defer testDB.Where("id = ?", hrUser.ID).Delete(&model.User{})

	token, err := auth.GetAccessToken(database.TestHRUser.Email, testDB)
	assert.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(nil, token, r,
		fmt.Sprintf("/company/hr-users/%s", hrUser.ID), http.MethodDelete)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
