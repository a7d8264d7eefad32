// Package seed loads the demo campus data used by development deployments
// and by mock login.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/findr-api/internal/domain"
)

type itemWriter interface {
	Put(ctx context.Context, item *domain.Item) error
}

type userWriter interface {
	Put(ctx context.Context, u *domain.User) error
}

type notificationWriter interface {
	Put(ctx context.Context, n *domain.Notification) error
}

func Users() []domain.User {
	return []domain.User{
		{UserID: "user-1", Name: "Kent Jasper Sisi", Email: "kntjspr26@ustp.edu.ph", Role: domain.RoleStudent, AvatarURL: "/kent.jpg"},
		{UserID: "user-2", Name: "Jane Smith", Email: "jane.smith@ustp.edu.ph", Role: domain.RoleStudent, AvatarURL: "https://i.pravatar.cc/150?u=user-2"},
		{UserID: "user-3", Name: "Mike Ross", Email: "mike.ross@ustp.edu.ph", Role: domain.RoleStudent, AvatarURL: "https://i.pravatar.cc/150?u=user-3"},
		{UserID: "staff-1", Name: "John Doe", Email: "admin@ustp.edu.ph", Role: domain.RoleStaff, AvatarURL: "https://i.pravatar.cc/150?u=staff-1"},
	}
}

// Items returns the demo catalog, newest first.
func Items(now time.Time) []domain.Item {
	items := []domain.Item{
		{
			ItemID: "1", Title: "Blue Hydroflask", Description: "Blue 32oz Hydroflask with stickers of NASA and a cat.",
			Type: domain.ItemTypeLost, Status: domain.ItemStatusOpen, Location: "Science Complex", Date: "2023-10-25",
			ImageURL: "https://picsum.photos/400/300?random=1", ContactName: "Kent Jasper Sisi",
			Category: "Accessories", ReporterID: "user-1", IsVerified: true,
		},
		{
			ItemID: "2", Title: "Casio Scientific Calculator", Description: "Black Casio fx-991EX. Found under a desk.",
			Type: domain.ItemTypeFound, Status: domain.ItemStatusOpen, Location: "Building 3, Rm 304", Date: "2023-10-26",
			ImageURL: "https://picsum.photos/400/300?random=2", ContactName: "Jane Smith",
			Category: "Electronics", ReporterID: "user-2", IsVerified: true,
		},
		{
			ItemID: "3", Title: "Student ID (Ending 1234)", Description: "Found near the cafeteria entrance.",
			Type: domain.ItemTypeFound, Status: domain.ItemStatusPending, Location: "Cafeteria", Date: "2023-10-24",
			ImageURL: "https://picsum.photos/400/300?random=3", ContactName: "Admin",
			Category: "ID/Cards", ReporterID: "staff-1", IsVerified: true,
		},
		{
			ItemID: "4", Title: "Beige Totebag", Description: "Canvas totebag containing notebooks.",
			Type: domain.ItemTypeLost, Status: domain.ItemStatusOpen, Location: "Library 2nd Floor", Date: "2023-10-27",
			ImageURL: "https://picsum.photos/400/300?random=4", ContactName: "Mike Ross",
			Category: "Accessories", ReporterID: "user-3", IsVerified: false,
		},
	}
	for i := range items {
		items[i].CreatedAt = now.Add(-time.Duration(i) * time.Minute)
	}
	return items
}

func Notifications(now time.Time) []domain.Notification {
	related := "2"
	return []domain.Notification{
		{
			NotificationID: "n-1", UserID: "user-1", Title: "Potential Match Found",
			Message: "A found item matching your description was reported.",
			Date:    now, RelatedItemID: &related,
		},
	}
}

// Load writes the demo data. Items are written oldest first so that stores
// which prepend on insert end up newest first.
func Load(ctx context.Context, users userWriter, items itemWriter, notifications notificationWriter, now time.Time) error {
	for _, u := range Users() {
		if err := users.Put(ctx, &u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.UserID, err)
		}
	}
	demo := Items(now)
	for i := len(demo) - 1; i >= 0; i-- {
		if err := items.Put(ctx, &demo[i]); err != nil {
			return fmt.Errorf("seed item %s: %w", demo[i].ItemID, err)
		}
	}
	for _, n := range Notifications(now) {
		if err := notifications.Put(ctx, &n); err != nil {
			return fmt.Errorf("seed notification %s: %w", n.NotificationID, err)
		}
	}
	return nil
}
