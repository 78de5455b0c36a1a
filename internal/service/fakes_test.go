package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

// memoryAuthStore backs both UserRepository and PasswordResetRepository.
type memoryAuthStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*domain.User
	resets  map[int64]*domain.PasswordReset
	nextID  int64
	findErr error
}

func newMemoryAuthStore() *memoryAuthStore {
	return &memoryAuthStore{users: map[uuid.UUID]*domain.User{}, resets: map[int64]*domain.PasswordReset{}}
}

func (m *memoryAuthStore) Create(ctx context.Context, email string, passwordHash []byte) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return nil, &pgconn.PgError{Code: "23505"}
		}
	}
	u := &domain.User{ID: uuid.New(), Email: strings.ToLower(email), PasswordHash: append([]byte(nil), passwordHash...)}
	m.users[u.ID] = u
	return u, nil
}

func (m *memoryAuthStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	if u := m.userByEmail(email); u != nil {
		copied := *u
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memoryAuthStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memoryAuthStore) userByEmail(email string) *domain.User {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

func (m *memoryAuthStore) Replace(ctx context.Context, userID uuid.UUID, otpHash, otpSalt []byte, expiresAt time.Time) (*domain.PasswordReset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return nil, sql.ErrNoRows
	}
	for id, r := range m.resets {
		if r.UserID == userID {
			delete(m.resets, id)
		}
	}
	m.nextID++
	r := &domain.PasswordReset{ID: m.nextID, UserID: userID, OTPHash: otpHash, OTPSalt: otpSalt, ExpiresAt: expiresAt}
	m.resets[r.ID] = r
	copied := *r
	return &copied, nil
}

func (m *memoryAuthStore) FindActiveByEmail(ctx context.Context, email string, now time.Time) (*domain.PasswordReset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := m.userByEmail(email)
	if u == nil {
		return nil, sql.ErrNoRows
	}
	for _, r := range m.resets {
		if r.UserID == u.ID && r.ExpiresAt.After(now) {
			copied := *r
			return &copied, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryAuthStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.resets, id)
	return nil
}

func (m *memoryAuthStore) Consume(ctx context.Context, resetID int64, userID uuid.UUID, passwordHash []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.resets[resetID]; !ok {
		return sql.ErrNoRows
	}
	u, ok := m.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	delete(m.resets, resetID)
	u.PasswordHash = append([]byte(nil), passwordHash...)
	return nil
}

func (m *memoryAuthStore) pendingResets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.resets)
}

type fakeResetSender struct {
	sent []struct{ email, otp string }
	err  error
}

func (f *fakeResetSender) SendPasswordReset(ctx context.Context, email, otp string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, struct{ email, otp string }{email, otp})
	return nil
}

func (f *fakeResetSender) lastOTP() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].otp
}

// memoryCatalog implements the category and product repositories with the
// same folding rules as the SQL queries.
type memoryCatalog struct {
	categories map[int64]*domain.Category
	products   map[int64]*domain.Product
	nextCat    int64
	nextProd   int64
	clock      time.Time
	listErr    error
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{
		categories: map[int64]*domain.Category{},
		products:   map[int64]*domain.Product{},
		clock:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memoryCatalog) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type memoryCategories struct{ *memoryCatalog }

func (m memoryCategories) List(ctx context.Context, search string) ([]domain.Category, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	key := util.FoldKey(search)
	out := []domain.Category{}
	for _, c := range m.categories {
		if strings.Contains(c.NameKey, key) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m memoryCategories) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	if c, ok := m.categories[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m memoryCategories) NameTaken(ctx context.Context, nameKey string, excludeID int64) (bool, error) {
	for _, c := range m.categories {
		if c.NameKey == nameKey && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m memoryCategories) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if taken, _ := m.NameTaken(ctx, category.NameKey, 0); taken {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	m.nextCat++
	c := *category
	c.ID = m.nextCat
	c.CreatedAt = m.tick()
	m.categories[c.ID] = &c
	copied := c
	return &copied, nil
}

func (m memoryCategories) Update(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	existing, ok := m.categories[category.ID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	existing.Name = category.Name
	existing.NameKey = category.NameKey
	existing.Description = category.Description
	copied := *existing
	return &copied, nil
}

func (m memoryCategories) Delete(ctx context.Context, id int64) error {
	if _, ok := m.categories[id]; !ok {
		return sql.ErrNoRows
	}
	for _, p := range m.products {
		if p.CategoryID == id {
			return &pgconn.PgError{Code: "23503"}
		}
	}
	delete(m.categories, id)
	return nil
}

type memoryProducts struct{ *memoryCatalog }

func (m memoryProducts) List(ctx context.Context, filter domain.ProductListFilter) ([]domain.Product, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	key := util.FoldKey(filter.Search)
	matched := []domain.Product{}
	for _, p := range m.products {
		if key != "" && !strings.Contains(p.NameKey, key) {
			continue
		}
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		matched = append(matched, *p)
	}
	desc := filter.SortOrder == domain.SortDesc
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch {
		case filter.SortBy == domain.ProductSortPrice && a.Price != b.Price:
			return (a.Price < b.Price) != desc
		case filter.SortBy != domain.ProductSortPrice && a.NameKey != b.NameKey:
			return (a.NameKey < b.NameKey) != desc
		case !a.CreatedAt.Equal(b.CreatedAt):
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	total := len(matched)
	offset := domain.NewPagination(filter.Page, filter.Limit, total).Offset()
	if offset >= total {
		return []domain.Product{}, total, nil
	}
	end := offset + filter.Limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m memoryProducts) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	if p, ok := m.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m memoryProducts) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	category, ok := m.categories[product.CategoryID]
	if !ok {
		return nil, &pgconn.PgError{Code: "23503"}
	}
	m.nextProd++
	p := *product
	p.ID = m.nextProd
	p.CategoryName = category.Name
	p.CreatedAt = m.tick()
	p.UpdatedAt = p.CreatedAt
	m.products[p.ID] = &p
	copied := p
	return &copied, nil
}

func (m memoryProducts) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	existing, ok := m.products[product.ID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	category, ok := m.categories[product.CategoryID]
	if !ok {
		return nil, &pgconn.PgError{Code: "23503"}
	}
	created := existing.CreatedAt
	*existing = *product
	existing.CategoryName = category.Name
	existing.CreatedAt = created
	existing.UpdatedAt = m.tick()
	copied := *existing
	return &copied, nil
}

func (m memoryProducts) Delete(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.products, id)
	return nil
}

type fakeCategoryCache struct {
	entries     map[string][]domain.Category
	gets        int
	hits        int
	invalidated int
	getErr      error
}

func newFakeCategoryCache() *fakeCategoryCache {
	return &fakeCategoryCache{entries: map[string][]domain.Category{}}
}

func (f *fakeCategoryCache) Get(ctx context.Context, search string) ([]domain.Category, bool, error) {
	f.gets++
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	v, ok := f.entries[util.FoldKey(search)]
	if ok {
		f.hits++
	}
	return v, ok, nil
}

func (f *fakeCategoryCache) Set(ctx context.Context, search string, categories []domain.Category) error {
	f.entries[util.FoldKey(search)] = categories
	return nil
}

func (f *fakeCategoryCache) Invalidate(ctx context.Context) error {
	f.invalidated++
	f.entries = map[string][]domain.Category{}
	return nil
}

type fakeObjectStorage struct {
	objectName  string
	contentType string
	body        []byte
	uploadErr   error
	deleted     []string
}

func (f *fakeObjectStorage) Upload(ctx context.Context, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	f.objectName = objectName
	f.contentType = contentType
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.body = data
	return "upload/" + objectName, nil
}

func (f *fakeObjectStorage) Delete(ctx context.Context, objectName string) error {
	f.deleted = append(f.deleted, objectName)
	return nil
}

var errBoom = errors.New("boom")
