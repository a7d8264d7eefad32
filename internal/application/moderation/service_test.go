package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/findr-api/internal/domain"
	"github.com/findr-api/internal/infrastructure/memory"
	"github.com/findr-api/internal/infrastructure/seed"
)

// --- mocks ---

type mockPhotoStore struct{ mock.Mock }

func (m *mockPhotoStore) KeyFromURL(objectURL string) (string, bool) {
	args := m.Called(objectURL)
	return args.String(0), args.Bool(1)
}
func (m *mockPhotoStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, e domain.Event) error {
	return m.Called(ctx, e).Error(0)
}

// --- helpers ---

type fixture struct {
	store  *memory.Store
	photos *mockPhotoStore
	events *mockPublisher
	svc    Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, seed.Load(context.Background(), store.Users(), store.Items(), store.Notifications(), time.Now()))
	f := &fixture{store: store, photos: &mockPhotoStore{}, events: &mockPublisher{}}
	f.events.On("Publish", mock.Anything, mock.Anything).Return(nil)
	f.svc = NewService(ServiceDeps{
		ItemRepo:  store.Items(),
		ClaimRepo: store.Claims(),
		Photos:    f.photos,
		Events:    f.events,
	})
	return f
}

func (f *fixture) submit(t *testing.T, claimID, itemID string) {
	t.Helper()
	require.NoError(t, f.store.Claims().Submit(context.Background(), &domain.Claim{
		ClaimID: claimID, ItemID: itemID, ClaimantID: "user-1", Status: domain.ClaimStatusPending, Date: time.Now(),
	}))
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e domain.Event) bool { return e.Type == eventType })
}

// --- item review tests ---

func TestVerifyItem_IdempotentAndListed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	unverified, err := f.svc.ListUnverified(ctx)
	require.NoError(t, err)
	require.Len(t, unverified, 1)
	assert.Equal(t, "4", unverified[0].ItemID)

	for i := 0; i < 2; i++ {
		it, err := f.svc.VerifyItem(ctx, "4")
		require.NoError(t, err)
		assert.True(t, it.IsVerified)
	}
	unverified, _ = f.svc.ListUnverified(ctx)
	assert.Empty(t, unverified)
	f.events.AssertCalled(t, "Publish", mock.Anything, eventOfType(domain.EventItemVerified))

	_, err = f.svc.VerifyItem(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRejectItem_DeletesItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.photos.On("KeyFromURL", "https://picsum.photos/400/300?random=4").Return("", false)

	require.NoError(t, f.svc.RejectItem(ctx, "4"))
	_, err := f.store.Items().Get(ctx, "4")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.events.AssertCalled(t, "Publish", mock.Anything, eventOfType(domain.EventItemRejected))
	f.photos.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	assert.ErrorIs(t, f.svc.RejectItem(ctx, "4"), domain.ErrNotFound)
}

func TestRejectItem_RemovesUploadedPhoto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	url := "https://photos.s3.us-east-1.amazonaws.com/items/user-2/abc.jpg"
	require.NoError(t, f.store.Items().Put(ctx, &domain.Item{ItemID: "p", ImageURL: url, Status: domain.ItemStatusOpen}))
	f.photos.On("KeyFromURL", url).Return("items/user-2/abc.jpg", true)
	f.photos.On("Delete", mock.Anything, "items/user-2/abc.jpg").Return(errors.New("access denied"))

	require.NoError(t, f.svc.RejectItem(ctx, "p"))
	f.photos.AssertExpectations(t)
}

func TestResolveItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	it, err := f.svc.ResolveItem(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.ItemStatusResolved, it.Status)

	_, err = f.svc.ResolveItem(ctx, "1")
	assert.NoError(t, err)

	_, err = f.svc.ResolveItem(ctx, "3")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// --- claim review tests ---

func TestListPendingClaims(t *testing.T) {
	f := newFixture(t)
	f.submit(t, "c1", "2")
	f.submit(t, "c2", "4")
	_, err := f.svc.ProcessClaim(context.Background(), "c2", false)
	require.NoError(t, err)

	pending, err := f.svc.ListPendingClaims(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "c1", pending[0].Claim.ClaimID)
	require.NotNil(t, pending[0].Item)
	assert.Equal(t, domain.ItemStatusPending, pending[0].Item.Status)
}

func TestProcessClaim(t *testing.T) {
	tests := []struct {
		name      string
		approved  bool
		wantClaim domain.ClaimStatus
		wantItem  domain.ItemStatus
		wantEvent string
	}{
		{"approve resolves item", true, domain.ClaimStatusApproved, domain.ItemStatusResolved, domain.EventClaimApproved},
		{"reject reopens item", false, domain.ClaimStatusRejected, domain.ItemStatusOpen, domain.EventClaimRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			f.submit(t, "c1", "2")

			c, err := f.svc.ProcessClaim(ctx, "c1", tt.approved)
			require.NoError(t, err)
			assert.Equal(t, tt.wantClaim, c.Status)

			it, _ := f.store.Items().Get(ctx, "2")
			assert.Equal(t, tt.wantItem, it.Status)
			f.events.AssertCalled(t, "Publish", mock.Anything, eventOfType(tt.wantEvent))

			_, err = f.svc.ProcessClaim(ctx, "c1", !tt.approved)
			assert.ErrorIs(t, err, domain.ErrInvalidState)
		})
	}
}

func TestProcessClaim_RejectThenReclaim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.submit(t, "c1", "2")
	_, err := f.svc.ProcessClaim(ctx, "c1", false)
	require.NoError(t, err)

	f.submit(t, "c2", "2")
	it, _ := f.store.Items().Get(ctx, "2")
	assert.Equal(t, domain.ItemStatusPending, it.Status)
}

func TestProcessClaim_Missing(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ProcessClaim(context.Background(), "nope", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
