package domain

import "time"

// Event routing keys published on every workflow state change.
const (
	EventItemCreated    = "item.created"
	EventItemVerified   = "item.verified"
	EventItemRejected   = "item.rejected"
	EventItemResolved   = "item.resolved"
	EventClaimSubmitted = "claim.submitted"
	EventClaimApproved  = "claim.approved"
	EventClaimRejected  = "claim.rejected"
	EventMatchFound     = "match.found"
)

type Event struct {
	Type       string    `json:"type"`
	ItemID     string    `json:"item_id"`
	ClaimID    string    `json:"claim_id,omitempty"`
	UserID     string    `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent stamps an event with the current UTC time.
func NewEvent(eventType, itemID string) Event {
	return Event{Type: eventType, ItemID: itemID, OccurredAt: time.Now().UTC()}
}
