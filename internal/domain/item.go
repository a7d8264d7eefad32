package domain

import "time"

type ItemType string

const (
	ItemTypeLost  ItemType = "LOST"
	ItemTypeFound ItemType = "FOUND"
)

// Opposite returns the type a matching report must have.
func (t ItemType) Opposite() ItemType {
	if t == ItemTypeLost {
		return ItemTypeFound
	}
	return ItemTypeLost
}

type ItemStatus string

const (
	ItemStatusOpen     ItemStatus = "OPEN"
	ItemStatusPending  ItemStatus = "PENDING" // waiting for a claim to be processed
	ItemStatusResolved ItemStatus = "RESOLVED"
)

// Categories is the fixed set an item's category must belong to.
var Categories = []string{
	"Electronics",
	"Clothing",
	"ID/Cards",
	"Keys",
	"Books/Notes",
	"Accessories",
	"Other",
}

// DayLayout is the calendar-day format used for Item.Date and date filters.
const DayLayout = "2006-01-02"

type Item struct {
	ItemID      string     `json:"id" dynamodbav:"item_id"`
	Title       string     `json:"title" dynamodbav:"title"`
	Description string     `json:"description" dynamodbav:"description"`
	Type        ItemType   `json:"type" dynamodbav:"type"`
	Status      ItemStatus `json:"status" dynamodbav:"status"`
	Location    string     `json:"location" dynamodbav:"location"`
	Date        string     `json:"date" dynamodbav:"date"`
	ImageURL    string     `json:"image_url" dynamodbav:"image_url"`
	ContactName string     `json:"contact_name" dynamodbav:"contact_name"`
	Category    string     `json:"category" dynamodbav:"category"`
	ReporterID  string     `json:"reporter_id" dynamodbav:"reporter_id"`
	IsVerified  bool       `json:"is_verified" dynamodbav:"is_verified"`
	CreatedAt   time.Time  `json:"created" dynamodbav:"created_at"`
}

// Claimable reports whether a new claim may move the item to PENDING.
func (i *Item) Claimable() bool { return i.Status == ItemStatusOpen }

// CreateItemRequest carries the reporter-supplied fields. id, status and
// verification are always assigned by the service.
type CreateItemRequest struct {
	Title       string   `json:"title" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Type        ItemType `json:"type" validate:"required,oneof=LOST FOUND"`
	Location    string   `json:"location" validate:"required"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
	ContactName string   `json:"contact_name" validate:"required"`
	Category    string   `json:"category" validate:"required,category"`
}
