package model

// AccessToken struct holds the access token data
type AccessToken struct {
	Token string `json:"token"`
}

// AuthResponse struct holds the response data for login or registration
type AuthResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// GoogleUserInfo is the shape of the Google userinfo endpoint response.
type GoogleUserInfo struct {
	GID       string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
}
