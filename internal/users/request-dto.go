package users

// UpdatePreferencesRequest changes profile settings; absent fields are left alone.
type UpdatePreferencesRequest struct {
	PreferredLanguage   *string `json:"preferredLanguage" validate:"omitempty,min=2,max=8,alpha"`
	NotificationEnabled *bool   `json:"notificationEnabled"`
}
