package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func day(s string) *time.Time {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func sampleItem() *Item {
	return &Item{
		ItemID:      "1",
		Title:       "Blue Hydroflask",
		Description: "Has a sticker of a cat.",
		Type:        ItemTypeLost,
		Location:    "Science Complex",
		Date:        "2023-10-25",
		Category:    "Accessories",
		IsVerified:  true,
	}
}

func TestItemFilter_Match(t *testing.T) {
	tests := []struct {
		name   string
		filter ItemFilter
		want   bool
	}{
		{"empty filter", ItemFilter{}, true},
		{"verified matches", ItemFilter{IsVerified: ptr(true)}, true},
		{"unverified excludes verified", ItemFilter{IsVerified: ptr(false)}, false},
		{"category equal", ItemFilter{Category: "Accessories"}, true},
		{"category differs", ItemFilter{Category: "Keys"}, false},
		{"query in title any case", ItemFilter{Query: "HYDRO"}, true},
		{"query in description", ItemFilter{Query: "sticker"}, true},
		{"query in location", ItemFilter{Query: "science"}, true},
		{"query nowhere", ItemFilter{Query: "wallet"}, false},
		{"start bound inclusive", ItemFilter{StartDate: day("2023-10-25")}, true},
		{"start after date", ItemFilter{StartDate: day("2023-10-26")}, false},
		{"end bound inclusive", ItemFilter{EndDate: day("2023-10-25")}, true},
		{"end before date", ItemFilter{EndDate: day("2023-10-24")}, false},
		{"range contains", ItemFilter{StartDate: day("2023-10-01"), EndDate: day("2023-10-31")}, true},
		{"all conjunctive, one fails", ItemFilter{Category: "Accessories", Query: "wallet"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Match(sampleItem()))
		})
	}
}

func TestItemFilter_UnparseableDateFailsBounds(t *testing.T) {
	it := sampleItem()
	it.Date = "yesterday"
	assert.False(t, ItemFilter{StartDate: day("2000-01-01")}.Match(it))
	assert.True(t, ItemFilter{}.Match(it))
}

func TestFilterByType(t *testing.T) {
	items := []Item{
		{ItemID: "a", Type: ItemTypeLost},
		{ItemID: "b", Type: ItemTypeFound},
		{ItemID: "c", Type: ItemTypeLost},
	}
	assert.Len(t, FilterByType(items, ""), 3)
	lost := FilterByType(items, ItemTypeLost)
	assert.Equal(t, []string{"a", "c"}, []string{lost[0].ItemID, lost[1].ItemID})
	assert.Len(t, FilterByType(items, ItemTypeFound), 1)
}

func TestIsCategory(t *testing.T) {
	assert.True(t, IsCategory("Books/Notes"))
	assert.False(t, IsCategory("books/notes"))
}
