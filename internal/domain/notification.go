package domain

import "time"

type Notification struct {
	NotificationID string    `json:"id" dynamodbav:"notification_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	Title          string    `json:"title" dynamodbav:"title"`
	Message        string    `json:"message" dynamodbav:"message"`
	IsRead         bool      `json:"is_read" dynamodbav:"is_read"`
	Date           time.Time `json:"date" dynamodbav:"created_at"`
	RelatedItemID  *string   `json:"related_item_id,omitempty" dynamodbav:"related_item_id,omitempty"`
}
