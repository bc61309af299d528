package notification

type ListNotificationsQuery struct {
	Unread bool `form:"unread"`
	Limit  int  `form:"limit" binding:"omitempty,min=1,max=200"`
}

type NotificationResponse struct {
	ID         uint64  `json:"id"`
	EmployeeID string  `json:"employeeId"`
	Kind       string  `json:"kind"`
	Message    string  `json:"message"`
	ReadAt     *string `json:"readAt"`
	CreatedAt  string  `json:"createdAt"`
}
