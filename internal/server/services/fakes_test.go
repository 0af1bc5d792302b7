package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/tnguye65/pokecollection/internal/common"
	"github.com/tnguye65/pokecollection/internal/dbx"
	"github.com/tnguye65/pokecollection/internal/server/catalog"
	"github.com/tnguye65/pokecollection/internal/server/models"
	"github.com/tnguye65/pokecollection/internal/server/repositories/collection"
	usersrepo "github.com/tnguye65/pokecollection/internal/server/repositories/users"
)

// memStore backs both fake repositories so that user deletion can cascade.
type memStore struct {
	mu     sync.Mutex
	users  map[string]*models.User
	items  map[int64]*models.CollectionItem
	nextID int64

	// err, when set, is returned by every repository call.
	err error
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[string]*models.User),
		items: make(map[int64]*models.CollectionItem),
	}
}

type fakeUsersRepo struct{ s *memStore }

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	for _, other := range f.s.users {
		if other.Username == u.Username {
			return nil, common.ErrDuplicateUsername
		}
		if other.Email == u.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	now := time.Now()
	cp := *u
	cp.ID = uuid.NewString()
	cp.CreatedAt, cp.UpdatedAt = now, now
	f.s.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	u, ok := f.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	for _, u := range f.s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) UpdateProfile(ctx context.Context, id, username, email string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	u, ok := f.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	for oid, other := range f.s.users {
		if oid == id {
			continue
		}
		if other.Username == username {
			return nil, common.ErrDuplicateUsername
		}
		if other.Email == email {
			return nil, common.ErrDuplicateEmail
		}
	}
	u.Username, u.Email, u.UpdatedAt = username, email, time.Now()
	out := *u
	return &out, nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return f.s.err
	}
	u, ok := f.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return f.s.err
	}
	if _, ok := f.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.s.users, id)
	for iid, it := range f.s.items {
		if it.UserID == id {
			delete(f.s.items, iid)
		}
	}
	return nil
}

type fakeCollectionRepo struct{ s *memStore }

func (f *fakeCollectionRepo) Upsert(ctx context.Context, item *models.CollectionItem) (*models.CollectionItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	now := time.Now()
	for _, it := range f.s.items {
		if it.UserID == item.UserID && it.CardID == item.CardID && it.Variant == item.Variant {
			if it.Quantity+item.Quantity > common.MaxQuantity {
				return nil, common.ErrInvalidQuantity
			}
			it.Quantity += item.Quantity
			if item.Notes != nil {
				it.Notes = item.Notes
			}
			it.UpdatedAt = now
			out := *it
			return &out, nil
		}
	}
	f.s.nextID++
	cp := *item
	cp.ID = f.s.nextID
	cp.AddedAt, cp.UpdatedAt = now, now
	f.s.items[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeCollectionRepo) GetByID(ctx context.Context, id int64) (*models.CollectionItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	it, ok := f.s.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *it
	return &out, nil
}

func (f *fakeCollectionRepo) Update(ctx context.Context, item *models.CollectionItem) (*models.CollectionItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	it, ok := f.s.items[item.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	it.Quantity, it.Condition, it.Notes, it.UpdatedAt = item.Quantity, item.Condition, item.Notes, time.Now()
	out := *it
	return &out, nil
}

func (f *fakeCollectionRepo) Delete(ctx context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return f.s.err
	}
	if _, ok := f.s.items[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.s.items, id)
	return nil
}

func (f *fakeCollectionRepo) ListByUser(ctx context.Context, userID string) ([]*models.CollectionItem, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	var out []*models.CollectionItem
	for _, it := range f.s.items {
		if it.UserID == userID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCollectionRepo) Stats(ctx context.Context, userID string) (*models.CollectionStats, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return nil, f.s.err
	}
	stats := &models.CollectionStats{}
	cards := make(map[string]struct{})
	for _, it := range f.s.items {
		if it.UserID == userID {
			stats.TotalCards += int64(it.Quantity)
			cards[it.CardID] = struct{}{}
		}
	}
	stats.UniqueCards = int64(len(cards))
	return stats, nil
}

func (f *fakeCollectionRepo) Exists(ctx context.Context, userID, cardID, variant string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if f.s.err != nil {
		return false, f.s.err
	}
	for _, it := range f.s.items {
		if it.UserID == userID && it.CardID == cardID && it.Variant == variant {
			return true, nil
		}
	}
	return false, nil
}

type fakeRepoManager struct{ s *memStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return &fakeUsersRepo{s: m.s} }
func (m *fakeRepoManager) Collection(db dbx.DBTX) collection.Repository {
	return &fakeCollectionRepo{s: m.s}
}

// fakeCatalog knows a fixed set of card ids. err overrides lookups.
type fakeCatalog struct {
	cards map[string]*catalog.Card
	err   error
	calls int
}

func newFakeCatalog(ids ...string) *fakeCatalog {
	c := &fakeCatalog{cards: make(map[string]*catalog.Card)}
	for _, id := range ids {
		c.cards[id] = &catalog.Card{CardBrief: catalog.CardBrief{ID: id, Name: "card " + id}}
	}
	return c
}

func (c *fakeCatalog) GetCard(ctx context.Context, id string) (*catalog.Card, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	card, ok := c.cards[id]
	if !ok {
		return nil, common.ErrCardNotFound
	}
	return card, nil
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}
