package auth

// RegisterRequest caps passwords at 72 characters here; the hasher also
// refuses anything past bcrypt's 72-byte limit.
type RegisterRequest struct {
	Email             string `json:"email" validate:"required,email,max=255"`
	Password          string `json:"password" validate:"required,max=72"`
	ConfirmPassword   string `json:"confirmPassword" validate:"required,max=72"`
	Name              string `json:"name" validate:"required,min=2,max=100"`
	Role              string `json:"role,omitempty" validate:"omitempty,oneof=operational director admin"`
	SiteIDs           []uint `json:"siteIds,omitempty" validate:"omitempty,dive,gt=0"`
	PreferredLanguage string `json:"preferredLanguage,omitempty" validate:"omitempty,min=2,max=8,alpha"`
}

type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type MockSSORequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,max=72"`
}
