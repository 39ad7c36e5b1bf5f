package auth

import "opshub/internal/users"

const TokenTypeBearer = "Bearer"

// AuthResponse is the session payload returned by every sign-in flow.
type AuthResponse struct {
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
	TokenType    string             `json:"tokenType"`
	ExpiresIn    int64              `json:"expiresIn"`
	User         users.UserResponse `json:"user"`
}

// MockUser is an entry of the development sign-in directory.
type MockUser struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	SiteIDs []uint `json:"siteIds"`
}
