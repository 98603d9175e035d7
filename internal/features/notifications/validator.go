package notifications

// ValidateNotificationListQuery clamps paging to 1..50 per page
func ValidateNotificationListQuery(query *NotificationListQuery) {
	if query.Page < 1 {
		query.Page = 1
	}

	if query.Limit < 1 {
		query.Limit = 20
	}
	if query.Limit > 50 {
		query.Limit = 50
	}
}
