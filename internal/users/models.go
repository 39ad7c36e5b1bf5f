package users

import (
	"time"
)

type Role string

const (
	RoleOperational Role = "operational"
	RoleDirector    Role = "director"
	RoleAdmin       Role = "admin"
)

const DefaultLanguage = "fr"

// User is the credential and profile record.
type User struct {
	ID                     uint       `json:"id" gorm:"primaryKey"`
	Email                  string     `json:"email" gorm:"uniqueIndex;not null"`
	Name                   string     `json:"name" gorm:"not null"`
	Role                   Role       `json:"role" gorm:"type:varchar(32);not null"`
	SiteIDs                []uint     `json:"siteIds" gorm:"serializer:json"`
	PasswordHash           *string    `json:"-"`
	Locked                 bool       `json:"-" gorm:"not null;default:false"`
	FailedLoginAttempts    int        `json:"-" gorm:"not null;default:0"`
	LastLoginAt            *time.Time `json:"lastLoginAt,omitempty"`
	PasswordResetToken     *string    `json:"-" gorm:"index"`
	PasswordResetExpiresAt *time.Time `json:"-"`
	PreferredLanguage      string     `json:"preferredLanguage" gorm:"not null;default:'fr'"`
	NotificationEnabled    bool       `json:"notificationEnabled" gorm:"not null"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleOperational, RoleDirector, RoleAdmin:
		return true
	default:
		return false
	}
}

// Digest returns the stored password digest, or "" for SSO-only accounts.
func (u *User) Digest() string {
	if u.PasswordHash == nil {
		return ""
	}
	return *u.PasswordHash
}

func (u *User) SetPassword(digest string) {
	u.PasswordHash = &digest
}

// SetResetToken stores a token together with its expiry.
func (u *User) SetResetToken(token string, expiresAt time.Time) {
	u.PasswordResetToken = &token
	u.PasswordResetExpiresAt = &expiresAt
}

func (u *User) ClearResetToken() {
	u.PasswordResetToken = nil
	u.PasswordResetExpiresAt = nil
}

// ResetTokenExpired reports true when no expiry is recorded.
func (u *User) ResetTokenExpired(now time.Time) bool {
	return u.PasswordResetExpiresAt == nil || !u.PasswordResetExpiresAt.After(now)
}
