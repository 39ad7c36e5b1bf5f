package users

// UserResponse is the public profile snapshot, also embedded in session responses.
type UserResponse struct {
	ID                  uint   `json:"id"`
	Email               string `json:"email"`
	Name                string `json:"name"`
	Role                string `json:"role"`
	SiteIDs             []uint `json:"siteIds"`
	PreferredLanguage   string `json:"preferredLanguage"`
	NotificationEnabled bool   `json:"notificationEnabled"`
}

func ToResponse(u *User) UserResponse {
	siteIDs := u.SiteIDs
	if siteIDs == nil {
		siteIDs = []uint{}
	}
	return UserResponse{
		ID:                  u.ID,
		Email:               u.Email,
		Name:                u.Name,
		Role:                string(u.Role),
		SiteIDs:             siteIDs,
		PreferredLanguage:   u.PreferredLanguage,
		NotificationEnabled: u.NotificationEnabled,
	}
}
