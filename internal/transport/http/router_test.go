package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findr-api/internal/application/catalog"
	"github.com/findr-api/internal/application/claim"
	"github.com/findr-api/internal/application/matching"
	"github.com/findr-api/internal/application/media"
	"github.com/findr-api/internal/application/moderation"
	"github.com/findr-api/internal/application/notification"
	"github.com/findr-api/internal/application/session"
	"github.com/findr-api/internal/config"
	"github.com/findr-api/internal/domain"
	"github.com/findr-api/internal/infrastructure/imaging"
	jwtinfra "github.com/findr-api/internal/infrastructure/jwt"
	"github.com/findr-api/internal/infrastructure/memory"
	"github.com/findr-api/internal/infrastructure/seed"
	"github.com/findr-api/internal/transport/http/handler"
)

// --- helpers ---

// newTestServer wires the real services around a freshly seeded memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := memory.NewStore()
	require.NoError(t, seed.Load(ctx, store.Users(), store.Items(), store.Notifications(), time.Now()))

	tokens, err := jwtinfra.NewEphemeralProvider(time.Hour)
	require.NoError(t, err)

	matcher := matching.NewService(matching.ServiceDeps{
		ItemRepo:         store.Items(),
		NotificationRepo: store.Notifications(),
		UserRepo:         store.Users(),
	})
	deps := &Deps{
		Catalog: catalog.NewService(catalog.ServiceDeps{ItemRepo: store.Items(), Matcher: matcher}),
		Claims: claim.NewService(claim.ServiceDeps{
			ClaimRepo: store.Claims(),
			ItemRepo:  store.Items(),
			UserRepo:  store.Users(),
		}),
		Moderation:    moderation.NewService(moderation.ServiceDeps{ItemRepo: store.Items(), ClaimRepo: store.Claims()}),
		Notifications: notification.NewService(store.Notifications()),
		Sessions:      session.NewService(store.Users(), tokens),
		Media:         media.NewService(media.ServiceDeps{Processor: imaging.NewProcessor(0)}),
		Tokens:        tokens,
	}
	cfg := &config.Config{
		AllowedOrigins: []string{"*"},
		RequestTimeout: 5 * time.Second,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
	srv := httptest.NewServer(NewRouter(ctx, cfg, deps))
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t      *testing.T
	base   string
	bearer string
}

func (c *client) do(method, path string, body interface{}, out interface{}) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func login(t *testing.T, srv *httptest.Server, role string) *client {
	t.Helper()
	c := &client{t: t, base: srv.URL + "/v1"}
	var env handler.AuthEnvelope
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/sessions/login", map[string]string{"role": role}, &env))
	require.NotEmpty(t, env.Bearer)
	c.bearer = env.Bearer
	return c
}

// --- tests ---

func TestRouter_HealthIsPublic(t *testing.T) {
	srv := newTestServer(t)
	c := &client{t: t, base: srv.URL + "/v1"}
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health-check/ping", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/items", nil, nil))
}

func TestRouter_StudentCannotModerate(t *testing.T) {
	srv := newTestServer(t)
	student := login(t, srv, domain.RoleStudent)
	assert.Equal(t, http.StatusForbidden, student.do(http.MethodGet, "/moderation/items", nil, nil))
	assert.Equal(t, http.StatusForbidden, student.do(http.MethodPost, "/moderation/items/4/verify", nil, nil))
}

func TestRouter_StudentSeesVerifiedOnly(t *testing.T) {
	srv := newTestServer(t)
	student := login(t, srv, domain.RoleStudent)

	var items []domain.Item
	require.Equal(t, http.StatusOK, student.do(http.MethodGet, "/items?verified=false", nil, &items))
	require.Len(t, items, 3)
	for _, it := range items {
		assert.True(t, it.IsVerified)
	}

	staff := login(t, srv, domain.RoleStaff)
	require.Equal(t, http.StatusOK, staff.do(http.MethodGet, "/moderation/items", nil, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "4", items[0].ItemID)
}

func TestRouter_ReportMatchClaimApprove(t *testing.T) {
	srv := newTestServer(t)
	student := login(t, srv, domain.RoleStudent)
	staff := login(t, srv, domain.RoleStaff)

	// Staff reports a found bottle; user-1's lost Blue Hydroflask matches.
	var found domain.Item
	require.Equal(t, http.StatusCreated, staff.do(http.MethodPost, "/items", domain.CreateItemRequest{
		Title:       "Hydroflask",
		Type:        domain.ItemTypeFound,
		Location:    "Gym",
		Date:        "2023-10-28",
		ContactName: "John Doe",
		Category:    "Accessories",
	}, &found))
	assert.Equal(t, domain.ItemStatusOpen, found.Status)
	assert.False(t, found.IsVerified)

	var count handler.CountEnvelope
	require.Equal(t, http.StatusOK, student.do(http.MethodGet, "/notifications/unread-count", nil, &count))
	assert.Equal(t, 2, count.Count)

	var feed []domain.Notification
	require.Equal(t, http.StatusOK, student.do(http.MethodGet, "/notifications", nil, &feed))
	require.NotEmpty(t, feed)
	assert.Equal(t, "New Item Match!", feed[0].Title)
	require.NotNil(t, feed[0].RelatedItemID)
	assert.Equal(t, found.ItemID, *feed[0].RelatedItemID)

	var read domain.Notification
	require.Equal(t, http.StatusOK, student.do(http.MethodPut, "/notifications/"+feed[0].NotificationID+"/read", nil, &read))
	assert.True(t, read.IsRead)
	assert.Equal(t, http.StatusForbidden, staff.do(http.MethodPut, "/notifications/"+feed[0].NotificationID+"/read", nil, nil))

	// Claim, then a second claim on the now pending item conflicts.
	var c domain.Claim
	require.Equal(t, http.StatusCreated, student.do(http.MethodPost, "/items/"+found.ItemID+"/claims",
		domain.SubmitClaimRequest{ProofDescription: "NASA sticker"}, &c))
	assert.Equal(t, domain.ClaimStatusPending, c.Status)
	assert.Equal(t, "Kent Jasper Sisi", c.ClaimantName)
	assert.Equal(t, http.StatusConflict, student.do(http.MethodPost, "/items/"+found.ItemID+"/claims",
		domain.SubmitClaimRequest{ProofDescription: "again"}, nil))

	var pending []domain.ClaimWithItem
	require.Equal(t, http.StatusOK, staff.do(http.MethodGet, "/moderation/claims", nil, &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, domain.ItemStatusPending, pending[0].Item.Status)

	approved := true
	require.Equal(t, http.StatusOK, staff.do(http.MethodPost, "/moderation/claims/"+c.ClaimID,
		domain.ProcessClaimRequest{Approved: &approved}, nil))
	assert.Equal(t, http.StatusConflict, staff.do(http.MethodPost, "/moderation/claims/"+c.ClaimID,
		domain.ProcessClaimRequest{Approved: &approved}, nil))

	var item domain.Item
	require.Equal(t, http.StatusOK, student.do(http.MethodGet, "/items/"+found.ItemID, nil, &item))
	assert.Equal(t, domain.ItemStatusResolved, item.Status)

	var mine []domain.ClaimWithItem
	require.Equal(t, http.StatusOK, student.do(http.MethodGet, "/users/me/claims", nil, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, domain.ClaimStatusApproved, mine[0].Claim.Status)
}

func TestRouter_RejectThenGetIsNotFound(t *testing.T) {
	srv := newTestServer(t)
	staff := login(t, srv, domain.RoleStaff)

	assert.Equal(t, http.StatusOK, staff.do(http.MethodDelete, "/moderation/items/4", nil, nil))
	assert.Equal(t, http.StatusNotFound, staff.do(http.MethodGet, "/items/4", nil, nil))
	assert.Equal(t, http.StatusNotFound, staff.do(http.MethodDelete, "/moderation/items/4", nil, nil))
}

func TestRouter_UploadRequiresMultipart(t *testing.T) {
	srv := newTestServer(t)
	student := login(t, srv, domain.RoleStudent)
	assert.Equal(t, http.StatusBadRequest, student.do(http.MethodPost, "/items/images", nil, nil))
}
