package services

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/proglide/admin-console/internal/models"
	"github.com/proglide/admin-console/internal/search"
	"github.com/proglide/admin-console/internal/session"
	"github.com/proglide/admin-console/internal/tags"
	"github.com/proglide/admin-console/internal/upstream"
	"github.com/proglide/admin-console/internal/utils"
	"github.com/proglide/admin-console/internal/workspace"
)

type fakeAPI struct {
	mu        sync.Mutex
	products  map[models.Category][]models.Product
	users     []models.User
	subs      []models.UserSubscription
	listCalls int
	writes    int
	listErr   error
	writeErr  error
	nextID    int
}

func (f *fakeAPI) ListProducts(_ context.Context, c models.Category) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Product(nil), f.products[c]...), nil
}

func (f *fakeAPI) CreateProduct(_ context.Context, token string, in *models.ProductInput) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.nextID++
	p := models.Product{ID: "new-" + strconv.Itoa(f.nextID), Category: in.Category, CompatibleDevices: in.CompatibleDevices, Specs: in.Specs}
	return &p, nil
}

func (f *fakeAPI) UpdateProduct(_ context.Context, token, id string, in *models.ProductInput) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return &models.Product{ID: id, Category: in.Category, CompatibleDevices: in.CompatibleDevices, Specs: in.Specs}, nil
}

func (f *fakeAPI) DeleteProduct(_ context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	return f.writeErr
}

func (f *fakeAPI) ListUsers(context.Context) ([]models.User, error) {
	return f.users, f.listErr
}

func (f *fakeAPI) ListSubscriptions(context.Context) ([]models.UserSubscription, error) {
	return f.subs, f.listErr
}

func battery(id, model, devices string) models.Product {
	return models.Product{ID: id, Category: models.CategoryBattery, CompatibleDevices: devices, Specs: models.Specs{"modelNo": model}}
}

type fixture struct {
	api      *fakeAPI
	views    *workspace.Registry
	sessions *session.Manager
	svc      *InventoryService
	sess     *session.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	utils.SetJWTSecret("services-test-secret")

	api := &fakeAPI{products: map[models.Category][]models.Product{
		models.CategoryBattery: {
			battery("b1", "BN-54", "Redmi 9, Redmi 9 Prime"),
			battery("b2", "BN-62", "Poco M3"),
		},
	}}
	views := workspace.NewRegistry()
	sessions, err := session.NewManager("admin@proglide.in", "pw", "", time.Hour)
	require.NoError(t, err)
	sessions.OnTeardown(views.Drop)

	sess, err := sessions.Login("admin@proglide.in", "pw")
	require.NoError(t, err)

	return &fixture{
		api:      api,
		views:    views,
		sessions: sessions,
		svc:      NewInventoryService(api, views, sessions, search.NewEngine(language.English)),
		sess:     sess,
	}
}

func TestBrowseCachesUntilRefresh(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Browse(ctx, f.sess, models.CategoryBattery, search.Query{Sort: search.SortNameAsc}, false)
	require.NoError(t, err)
	require.Len(t, res.Cards, 2)
	assert.Equal(t, "BN-54", res.Cards[0].Title)
	assert.Equal(t, []string{"Redmi 9", "Redmi 9 Prime"}, res.Cards[0].Devices)

	_, err = f.svc.Browse(ctx, f.sess, models.CategoryBattery, search.Query{Text: "poco"}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, f.api.listCalls)

	_, err = f.svc.Browse(ctx, f.sess, models.CategoryBattery, search.Query{}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, f.api.listCalls)
}

func TestBrowseRejectsHeightSortOutsideScreenGuards(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Browse(context.Background(), f.sess, models.CategoryBattery, search.Query{Sort: search.SortHeightAsc}, false)
	assert.ErrorIs(t, err, ErrSortNotAvailable)
	assert.Zero(t, f.api.listCalls)
}

func TestBrowseUpstreamFailure(t *testing.T) {
	f := newFixture(t)
	f.api.listErr = &upstream.APIError{StatusCode: 500}

	_, err := f.svc.Browse(context.Background(), f.sess, models.CategoryBattery, search.Query{}, false)
	var apiErr *upstream.APIError
	assert.True(t, errors.As(err, &apiErr))
}

func TestCreateRejectsDuplicateDevice(t *testing.T) {
	f := newFixture(t)
	input := &models.ProductInput{
		Category:          models.CategoryBattery,
		CompatibleDevices: "Galaxy M31, redmi 9 ",
		Specs:             models.Specs{"modelNo": "BN-99"},
	}

	_, err := f.svc.Create(context.Background(), f.sess, input)
	var conflict *tags.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "b1", conflict.ProductID)
	assert.Equal(t, "BN-54", conflict.ProductName)
	assert.Zero(t, f.api.writes)
}

func TestCreatePrependsToView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := &models.ProductInput{
		Category:          models.CategoryBattery,
		CompatibleDevices: " Galaxy M31 ,, ",
		Specs:             models.Specs{"modelNo": "BN-99"},
	}

	created, err := f.svc.Create(ctx, f.sess, input)
	require.NoError(t, err)
	assert.Equal(t, "Galaxy M31", created.CompatibleDevices)

	res, err := f.svc.Browse(ctx, f.sess, models.CategoryBattery, search.Query{}, false)
	require.NoError(t, err)
	require.Len(t, res.Cards, 3)
	assert.Equal(t, created.ID, res.Cards[0].ID)
	assert.Equal(t, 1, f.api.listCalls)
}

func TestCreateDedupesDevices(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.Create(context.Background(), f.sess, &models.ProductInput{
		Category:          models.CategoryBattery,
		CompatibleDevices: "iPhone 13, iphone 13 ,Galaxy M31,IPHONE 13",
		Specs:             models.Specs{"modelNo": "BN-99"},
	})
	require.NoError(t, err)
	assert.Equal(t, "iPhone 13,Galaxy M31", created.CompatibleDevices)
}

func TestUpdateKeepsOwnDevices(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Update(ctx, f.sess, "b1", &models.ProductInput{
		Category:          models.CategoryBattery,
		CompatibleDevices: "Redmi 9, Redmi 9A",
		Specs:             models.Specs{"modelNo": "BN-54"},
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, f.sess, "missing", &models.ProductInput{Category: models.CategoryBattery})
	assert.ErrorIs(t, err, ErrProductNotFound)

	res, err := f.svc.Browse(ctx, f.sess, models.CategoryBattery, search.Query{Text: "redmi9a"}, false)
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, "b1", res.Cards[0].ID)
}

func TestCreateValidatesSchema(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), f.sess, &models.ProductInput{
		Category: models.CategoryScreenGuard,
		Specs:    models.Specs{"height": "150"},
	})
	assert.Error(t, err)
	assert.Zero(t, f.api.writes)
}

func TestDeleteRemovesFromView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Browse(ctx, f.sess, models.CategoryBattery, search.Query{}, false)
	require.NoError(t, err)
	require.NoError(t, f.svc.Delete(ctx, f.sess, models.CategoryBattery, "b2"))

	res, err := f.svc.Browse(ctx, f.sess, models.CategoryBattery, search.Query{}, false)
	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, "b1", res.Cards[0].ID)
}

func TestExpiredUpstreamSessionLogsOut(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Browse(ctx, f.sess, models.CategoryBattery, search.Query{}, false)
	require.NoError(t, err)
	require.Equal(t, 1, f.views.Len())

	f.api.writeErr = upstream.ErrSessionExpired
	err = f.svc.Delete(ctx, f.sess, models.CategoryBattery, "b1")
	assert.ErrorIs(t, err, upstream.ErrSessionExpired)

	_, err = f.sessions.Authenticate(f.sess.Token)
	assert.ErrorIs(t, err, session.ErrInvalidSession)
	assert.Zero(t, f.views.Len())
}

func TestDeviceEditing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.AddDevice(ctx, f.sess, models.CategoryBattery, &DeviceEditRequest{Current: "Galaxy M31", Value: "Galaxy M21"})
	require.NoError(t, err)
	assert.Equal(t, "Galaxy M31,Galaxy M21", res.Devices)

	_, err = f.svc.AddDevice(ctx, f.sess, models.CategoryBattery, &DeviceEditRequest{Current: "", Value: "POCO M3"})
	var conflict *tags.ConflictError
	assert.True(t, errors.As(err, &conflict))

	res, err = f.svc.AddDevice(ctx, f.sess, models.CategoryBattery, &DeviceEditRequest{Current: "Poco M3", Value: "Poco M3", EditingID: "b2"})
	require.NoError(t, err)
	assert.Equal(t, "Poco M3", res.Devices)

	removed := f.svc.RemoveDevice(&DeviceEditRequest{Current: "Galaxy M31,Galaxy M21", Value: "Galaxy M31"})
	assert.Equal(t, []string{"Galaxy M21"}, removed.Tags)
}

func TestNewCardDefaultsToUniversal(t *testing.T) {
	card := NewCard(models.Product{ID: "x", Category: models.CategoryComboDisplay, Specs: models.Specs{"brandName": "Vivo", "modelNo": "Y20"}})
	assert.Equal(t, UniversalDevices, card.Compatible)
	assert.Equal(t, "Vivo", card.Caption)
	assert.Equal(t, "Y20", card.Title)
	assert.Empty(t, card.Devices)
	assert.Empty(t, card.Specs)
}

func TestListUsers(t *testing.T) {
	api := &fakeAPI{users: []models.User{
		{ID: "1", Name: "Asha", ShopName: "Asha Mobiles"},
		{ID: "2", Name: "Ravi", ShopName: "Cell Point"},
		{ID: "3", Name: "Meena", ShopName: "Mobile Hub"},
	}}
	svc := NewUserService(api)

	res, err := svc.ListUsers(context.Background(), utils.PaginationParams{Page: 1, Limit: 10, Search: "MOBILE"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	assert.Len(t, res.Data, 2)

	res, err = svc.ListUsers(context.Background(), utils.PaginationParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, []models.User{api.users[2]}, res.Data)
}

func TestDashboardStats(t *testing.T) {
	api := &fakeAPI{
		products: map[models.Category][]models.Product{
			models.CategoryBattery:   {battery("b1", "BN-54", ""), battery("b2", "BN-62", "")},
			models.CategoryPhoneCase: {{ID: "c1", Category: models.CategoryPhoneCase}},
		},
		subs: []models.UserSubscription{
			{User: models.User{ID: "1"}, Subscription: &models.Subscription{SubscriptionRecord: models.SubscriptionRecord{PlanType: models.PlanTypePro, Status: models.SubscriptionStatusActive}}},
			{User: models.User{ID: "2"}},
		},
	}

	stats, err := NewDashboardService(api, api).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Len(t, stats.Categories, len(models.Categories))
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.Plans[models.PlanTypePro])
	assert.Equal(t, 1, stats.Plans[models.PlanTypeFree])
	assert.Equal(t, 1, stats.Statuses[models.SubscriptionStatusNone])

	api.listErr = errors.New("boom")
	_, err = NewDashboardService(api, api).Stats(context.Background())
	assert.Error(t, err)
}
