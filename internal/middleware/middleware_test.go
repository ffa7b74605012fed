package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"github.com/riyanshibariyaa/jp5/internal/auth"
	"github.com/riyanshibariyaa/jp5/internal/database"
	"github.com/riyanshibariyaa/jp5/internal/model"
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

func checkUserHandler(c *gin.Context) {
	u, exist := c.Get("user")
	if !exist {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

func protectedEngine(extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{RequireAuth(testDB)}, extra...)
	handlers = append(handlers, checkUserHandler)
	r.GET("/protected", handlers...)
	return r
}

func doRequest(engine *gin.Engine, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth_Success(t *testing.T) {
	engine := protectedEngine()
	token, err := auth.GetAccessToken(database.TestSeeker1.Email, testDB)
	assert.NoError(t, err)

	rec := doRequest(engine, token)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
}

func TestRequireAuth_NoHeader(t *testing.T) {
	engine := protectedEngine()

	rec := doRequest(engine, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	engine := protectedEngine()

	rec := doRequest(engine, "garbage.token.value")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	engine := protectedEngine()

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    auth.JwtIssuer,
		Subject:   database.TestSeeker1.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
	})
	signed, err := expired.SignedString([]byte(auth.SECRET_KEY))
	assert.NoError(t, err)

	rec := doRequest(engine, signed)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_UnknownUser(t *testing.T) {
	engine := protectedEngine()

	orphan := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    auth.JwtIssuer,
		Subject:   "00000000-0000-0000-0000-000000000001",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := orphan.SignedString([]byte(auth.SECRET_KEY))
	assert.NoError(t, err)

	rec := doRequest(engine, signed)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckRole_allowsMatching(t *testing.T) {
	engine := protectedEngine(CheckRole(model.RoleJobSeeker))
	token, err := auth.GetAccessToken(database.TestSeeker1.Email, testDB)
	assert.NoError(t, err)

	rec := doRequest(engine, token)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestCheckRole_rejectsOthers(t *testing.T) {
	engine := protectedEngine(CheckRole(model.RoleEmployer, model.RoleAdmin))
	token, err := auth.GetAccessToken(database.TestSeeker1.Email, testDB)
	assert.NoError(t, err)

	rec := doRequest(engine, token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCheckPermission_employerAlwaysPasses(t *testing.T) {
	engine := protectedEngine(CheckPermission(func(p model.HRPermissions) bool { return p.CanManageHRUsers }))
	token, err := auth.GetAccessToken(database.TestEmployer1.Email, testDB)
	assert.NoError(t, err)

	rec := doRequest(engine, token)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestCheckPermission_hrNeedsFlag(t *testing.T) {
	granted := protectedEngine(CheckPermission(func(p model.HRPermissions) bool { return p.CanScheduleInterviews }))
	missing := protectedEngine(CheckPermission(func(p model.HRPermissions) bool { return p.CanManageHRUsers }))
	token, err := auth.GetAccessToken(database.TestHRUser.Email, testDB)
	assert.NoError(t, err)

	assert.Equal(t, http.StatusOK, doRequest(granted, token).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(missing, token).Code)
}

func TestJwtBlacklistCheck(t *testing.T) {
	store := auth.NewInMemoryBlacklistStore()
	engine := protectedEngine(JwtBlacklistCheck(store))
	token, err := auth.GetAccessToken(database.TestSeeker1.Email, testDB)
	assert.NoError(t, err)

	assert.Equal(t, http.StatusOK, doRequest(engine, token).Code)

	assert.NoError(t, store.AddToBlacklist(token, time.Now().Add(time.Hour)))

	assert.Equal(t, http.StatusUnauthorized, doRequest(engine, token).Code)
}
