package auth

import (
	"fmt"
	"net/http"

	"github.com/riyanshibariyaa/jp5/internal/database"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

// GetAccessToken logs in as the user with the given email using the seed
// password and returns a bearer token for use in handler tests.
func GetAccessToken(email string, db *database.DBinstanceStruct) (string, error) {
	handler := NewLocalAuthHandler(db)
	rec, resp, err := utilities.SimulateAPICall(
		handler.LoginHandler,
		"/api/v1/auth/login",
		"POST",
		map[string]string{
			"email":    email,
			"password": database.TestSeedPassword,
		},
	)
	if err != nil {
		return "", err
	}
	if rec.Code != http.StatusOK {
		return "", fmt.Errorf("login failed with status %d: %v", rec.Code, resp)
	}
	accessToken, ok := resp["access_token"].(string)
	if !ok {
		return "", fmt.Errorf("missing access token in login response: %v", resp)
	}
	return accessToken, nil
}
