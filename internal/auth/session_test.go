package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"

	"github.com/riyanshibariyaa/jp5/internal/database"
	"github.com/riyanshibariyaa/jp5/internal/model"
	"github.com/riyanshibariyaa/jp5/internal/testutil"
)

// actAs injects the given user the way the auth middleware would, so
// handlers can be exercised without importing the middleware package.
func actAs(user model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", user)
	}
}

func TestRegisterHR_employerCreatesDelegate(t *testing.T) {
	r := gin.New()
	lh := NewLocalAuthHandler(testDB)
	r.POST("/auth/register/hr", actAs(database.TestEmployer1), lh.RegisterHRHandler)

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"email":      "hr2@example.com",
		"password":   "HrPass12345",
		"first_name": "Fay",
		"last_name":  "Wong",
		"permissions": gin.H{
			"can_post_jobs":           true,
			"can_schedule_interviews": true,
		},
	}, "", r, "/auth/register/hr", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := resp["user"].(map[string]interface{})
	assert.Equal(t, model.RoleHR, created["role"])
	assert.Equal(t, database.TestEmployer1.CompanyID.String(), created["company_id"])
	permissions := created["hr_permissions"].(map[string]interface{})
	assert.Equal(t, true, permissions["can_post_jobs"])
	assert.Equal(t, false, permissions["can_manage_applications"])
	assert.NotEmpty(t, resp["access_token"])

	assert.NoError(t, testDB.Where("email = ?", "hr2@example.com").Delete(&model.User{}).Error)
}

func TestRegisterHR_shortPassword(t *testing.T) {
	r := gin.New()
	lh := NewLocalAuthHandler(testDB)
	r.POST("/auth/register/hr", actAs(database.TestEmployer1), lh.RegisterHRHandler)

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"email":      "hr3@example.com",
		"password":   "short",
		"first_name": "Gus",
		"last_name":  "Lutz",
	}, "", r, "/auth/register/hr", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterHR_nonEmployerForbidden(t *testing.T) {
	r := gin.New()
	lh := NewLocalAuthHandler(testDB)
	r.POST("/auth/register/hr", actAs(database.TestSeeker1), lh.RegisterHRHandler)

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"email":      "hr4@example.com",
		"password":   "HrPass12345",
		"first_name": "Hal",
		"last_name":  "Voss",
	}, "", r, "/auth/register/hr", http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMe_returnsProfile(t *testing.T) {
	r := gin.New()
	lh := NewLocalAuthHandler(testDB)
	r.GET("/auth/me", actAs(database.TestSeeker1), lh.MeHandler)

	rec, resp := testutil.MakeJSONRequest(nil, "", r, "/auth/me", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestSeeker1.Email, resp["email"])
	assert.Equal(t, model.RoleJobSeeker, resp["role"])
	// Password hash never leaves the API.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLogout_blacklistsToken(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	lc := NewLogoutController(store)

	token, err := GetAccessToken(database.TestSeeker1.Email, testDB)
	assert.NoError(t, err)

	r := gin.New()
	r.POST("/auth/logout", func(c *gin.Context) {
		c.Set("claims", &jwt.RegisteredClaims{
			Subject:   database.TestSeeker1.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
	}, lc.LogoutHandler)

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/auth/logout", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	revoked, err := store.IsBlacklisted(token)
	assert.NoError(t, err)
	assert.True(t, revoked)
}

func TestLogout_missingClaims(t *testing.T) {
	store := NewInMemoryBlacklistStore()
	lc := NewLogoutController(store)

	r := gin.New()
	r.POST("/auth/logout", lc.LogoutHandler)

	rec, _ := testutil.MakeJSONRequest(nil, "some-token", r, "/auth/logout", http.MethodPost)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
