package notifications

// Page is one slice of a user's notifications.
type Page struct {
	Content       []Notification `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
