package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tnguye65/pokecollection/internal/common"
	"github.com/tnguye65/pokecollection/internal/logging"
	"github.com/tnguye65/pokecollection/internal/server/catalog"
	"github.com/tnguye65/pokecollection/internal/server/models"
	"github.com/tnguye65/pokecollection/internal/server/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const (
	testUserID = "6f1c2a3e-1111-4222-8333-444455556666"
	testToken  = "valid-token"
)

type fakeUsers struct {
	register       func(ctx context.Context, username, email, password string) (*models.User, error)
	login          func(ctx context.Context, email, password string) (*services.Session, error)
	getProfile     func(ctx context.Context, userID string) (*models.User, error)
	updateProfile  func(ctx context.Context, userID string, username, email *string) (*models.User, error)
	changePassword func(ctx context.Context, userID, current, next string) error
	deleteAccount  func(ctx context.Context, userID string) error
}

func (f *fakeUsers) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return f.register(ctx, username, email, password)
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.Session, error) {
	return f.login(ctx, email, password)
}

func (f *fakeUsers) Validate(token string) (string, error) {
	switch token {
	case testToken:
		return testUserID, nil
	case "expired":
		return "", common.ErrTokenExpired
	default:
		return "", common.ErrMalformedToken
	}
}

func (f *fakeUsers) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return f.getProfile(ctx, userID)
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, userID string, username, email *string) (*models.User, error) {
	return f.updateProfile(ctx, userID, username, email)
}

func (f *fakeUsers) ChangePassword(ctx context.Context, userID, current, next string) error {
	return f.changePassword(ctx, userID, current, next)
}

func (f *fakeUsers) DeleteAccount(ctx context.Context, userID string) error {
	return f.deleteAccount(ctx, userID)
}

type fakeCollection struct {
	add    func(ctx context.Context, userID string, in services.AddCardInput) (*models.CollectionItem, error)
	update func(ctx context.Context, userID string, itemID int64, in services.UpdateItemInput) (*models.CollectionItem, error)
	remove func(ctx context.Context, userID string, itemID int64) error
	list   func(ctx context.Context, userID string) ([]*models.CollectionItem, error)
	stats  func(ctx context.Context, userID string) (*models.CollectionStats, error)
	owns   func(ctx context.Context, userID, cardID, variant string) (bool, error)
}

func (f *fakeCollection) AddCard(ctx context.Context, userID string, in services.AddCardInput) (*models.CollectionItem, error) {
	return f.add(ctx, userID, in)
}

func (f *fakeCollection) UpdateItem(ctx context.Context, userID string, itemID int64, in services.UpdateItemInput) (*models.CollectionItem, error) {
	return f.update(ctx, userID, itemID, in)
}

func (f *fakeCollection) RemoveItem(ctx context.Context, userID string, itemID int64) error {
	return f.remove(ctx, userID, itemID)
}

func (f *fakeCollection) ListCollection(ctx context.Context, userID string) ([]*models.CollectionItem, error) {
	return f.list(ctx, userID)
}

func (f *fakeCollection) Stats(ctx context.Context, userID string) (*models.CollectionStats, error) {
	return f.stats(ctx, userID)
}

func (f *fakeCollection) OwnsCard(ctx context.Context, userID, cardID, variant string) (bool, error) {
	return f.owns(ctx, userID, cardID, variant)
}

// fakeCatalog serves cards by id; ids listed in failing return errors.
type fakeCatalog struct {
	cards   map[string]*catalog.Card
	failing map[string]error
	search  func(ctx context.Context, name string) ([]catalog.CardBrief, error)
}

func (f *fakeCatalog) GetCard(ctx context.Context, id string) (*catalog.Card, error) {
	if err, ok := f.failing[id]; ok {
		return nil, err
	}
	if card, ok := f.cards[id]; ok {
		return card, nil
	}
	return nil, common.ErrCardNotFound
}

func (f *fakeCatalog) SearchCards(ctx context.Context, name string) ([]catalog.CardBrief, error) {
	return f.search(ctx, name)
}

type testEnv struct {
	users      *fakeUsers
	collection *fakeCollection
	catalog    *fakeCatalog
	server     *RESTServer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		users:      &fakeUsers{},
		collection: &fakeCollection{},
		catalog: &fakeCatalog{
			cards:   map[string]*catalog.Card{},
			failing: map[string]error{},
		},
	}
	env.server = NewRESTServer(Options{LoginRatePerMinute: 60, LoginBurst: 100}, logging.Nop{}, env.users, env.collection, env.catalog)
	return env
}

// do sends a request. Authenticated requests carry the session cookie.
func (env *testEnv) do(method, path, body string, authenticated bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authenticated {
		req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: testToken})
	}

	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)
	return rec
}

func strPtr(s string) *string { return &s }

func (env *testEnv) doWithToken(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)
	return rec
}
