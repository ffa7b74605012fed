package auth

import (
	"context"
	"fmt"
	"net/http"

	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"

	"github.com/riyanshibariyaa/jp5/internal/database"
	"github.com/riyanshibariyaa/jp5/internal/model"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

var testDB *database.DBinstanceStruct
var testTeardown func(context.Context, ...testcontainers.TerminateOption) error

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
}

// Helper: validate access token in response and return claims.
func assertValidAccessToken(t *testing.T, resp map[string]interface{}) *jwt.RegisteredClaims {
	t.Helper()
	tokenStr, ok := resp["access_token"].(string)
	assert.True(t, ok, "access_token not a string")
	token, err := ValidatedToken(tokenStr)
	assert.NoError(t, err)
	assert.True(t, token.Valid)
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	assert.True(t, ok, "claims type mismatch")
	assert.NotEmpty(t, claims.Subject, "token subject empty")
	return claims
}

func TestRegisterJobSeeker(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":      "new.seeker@example.com",
		"password":   "password123",
		"first_name": "New",
		"last_name":  "Seeker",
		"role":       "jobseeker",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	assert.Contains(t, resp, "access_token")

	claims := assertValidAccessToken(t, resp)

	if uVal, has := resp["user"]; has {
		if uMap, ok := uVal.(map[string]interface{}); ok {
			if idVal, ok := uMap["id"].(string); ok {
				assert.Equal(t, idVal, claims.Subject)
			}
			assert.Equal(t, model.RoleJobSeeker, uMap["role"])
		}
	}
}

func TestRegisterEmployerCreatesCompany(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":            "new.employer@example.com",
		"password":         "companyPass123",
		"first_name":       "New",
		"last_name":        "Employer",
		"role":             "employer",
		"company_name":     "Orbit Systems",
		"company_industry": "Aerospace",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	claims := assertValidAccessToken(t, resp)

	userObj, ok := resp["user"].(map[string]interface{})
	assert.True(t, ok, "user object has wrong type")

	if idVal, ok := userObj["id"].(string); ok {
		assert.Equal(t, idVal, claims.Subject, "JWT subject should match user id")
	}
	assert.NotEmpty(t, userObj["company_id"], "employer registration should attach a company")

	var company model.Company
	assert.NoError(t, testDB.First(&company, "name = ?", "Orbit Systems").Error)
	assert.Equal(t, "Aerospace", company.Industry)
}

func TestRegisterEmployerWithoutCompanyName(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":      "no.company@example.com",
		"password":   "companyPass123",
		"first_name": "No",
		"last_name":  "Company",
		"role":       "employer",
	}
	rec, _, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterPasswordTooShort(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":      "short.pass@example.com",
		"password":   "short",
		"first_name": "Short",
		"last_name":  "Pass",
		"role":       "jobseeker",
	}
	rec, _, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":      database.TestSeeker1.Email,
		"password":   "password123",
		"first_name": "Dup",
		"last_name":  "Email",
		"role":       "jobseeker",
	}
	rec, _, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterInvalidRole(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":      "bad.role@example.com",
		"password":   "password123",
		"first_name": "Bad",
		"last_name":  "Role",
		"role":       "admin",
	}
	rec, _, err := utilities.SimulateAPICall(handler.RegisterHandler, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginSuccess(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":    database.TestSeeker1.Email,
		"password": database.TestSeedPassword,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "unexpected status, body: %s", rec.Body.String())

	claims := assertValidAccessToken(t, resp)
	assert.Equal(t, database.TestSeeker1.ID.String(), claims.Subject)
}

func TestLoginWrongPassword(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":    database.TestSeeker1.Email,
		"password": "definitely-wrong",
	}
	rec, _, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	handler := NewLocalAuthHandler(testDB)

	payload := map[string]string{
		"email":    "ghost@example.com",
		"password": "password123",
	}
	rec, _, err := utilities.SimulateAPICall(handler.LoginHandler, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGenerateAndValidateToken(t *testing.T) {
	access, _, err := GenerateStandardToken(database.TestSeeker1.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, access)

	token, err := ValidatedToken(access)
	assert.NoError(t, err)
	assert.True(t, token.Valid)

	claims := token.Claims.(*jwt.RegisteredClaims)
	assert.Equal(t, JwtIssuer, claims.Issuer)
	assert.Equal(t, database.TestSeeker1.ID.String(), claims.Subject)
}

func TestValidateGarbageToken(t *testing.T) {
	_, err := ValidatedToken("not.a.token")
	assert.Error(t, err)
}
