package domain

import "time"

type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "PENDING"
	ClaimStatusApproved ClaimStatus = "APPROVED"
	ClaimStatusRejected ClaimStatus = "REJECTED"
)

type Claim struct {
	ClaimID          string      `json:"id" dynamodbav:"claim_id"`
	ItemID           string      `json:"item_id" dynamodbav:"item_id"`
	ClaimantID       string      `json:"claimant_id" dynamodbav:"claimant_id"`
	ClaimantName     string      `json:"claimant_name" dynamodbav:"claimant_name"`
	Status           ClaimStatus `json:"status" dynamodbav:"status"`
	Date             time.Time   `json:"date" dynamodbav:"created_at"`
	ProofDescription string      `json:"proof_description" dynamodbav:"proof_description"`
}

// ClaimWithItem pairs a claim with its item. Item is nil when the item has
// since been rejected (hard-deleted) by staff.
type ClaimWithItem struct {
	Claim Claim `json:"claim"`
	Item  *Item `json:"item"`
}

type SubmitClaimRequest struct {
	ProofDescription string `json:"proof_description" validate:"required,max=2000"`
}

type ProcessClaimRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}
