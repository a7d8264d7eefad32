package dynamo

// DynamoDB attribute names used in key, condition and update expressions.
const (
	fieldItemID         = "item_id"
	fieldClaimID        = "claim_id"
	fieldNotificationID = "notification_id"
	fieldUserID         = "user_id"
	fieldReporterID     = "reporter_id"
	fieldClaimantID     = "claimant_id"
	fieldRole           = "role"
	fieldStatus         = "status"
	fieldCategory       = "category"
	fieldIsVerified     = "is_verified"
	fieldIsRead         = "is_read"
	fieldCreatedAt      = "created_at"
)

// Secondary index names created by Bootstrap.
const (
	indexReporter         = "reporter_id-index"
	indexClaimant         = "claimant_id-index"
	indexClaimStatus      = "status-index"
	indexUserNotification = "user_id-created_at-index"
	indexRole             = "role-user_id-index"
)
