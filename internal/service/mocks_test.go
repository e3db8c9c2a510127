package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"barwy-shop/internal/domain"
	"barwy-shop/internal/repository"

	"github.com/google/uuid"
)

// catalogStore is an in-memory catalog shared by the mock repositories
type catalogStore struct {
	mu         sync.Mutex
	products   map[uuid.UUID]domain.Product
	categories map[string]domain.Category
	links      map[uuid.UUID]map[uuid.UUID]bool

	failUpdate error
}

func newCatalogStore() *catalogStore {
	return &catalogStore{
		products:   make(map[uuid.UUID]domain.Product),
		categories: make(map[string]domain.Category),
		links:      make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (s *catalogStore) addCategory(name string) domain.Category {
	c := *domain.NewCategory(name)
	s.categories[c.NormalizedName] = c
	return c
}

type catalogSnapshot struct {
	products   map[uuid.UUID]domain.Product
	categories map[string]domain.Category
	links      map[uuid.UUID]map[uuid.UUID]bool
}

func (s *catalogStore) snapshot() catalogSnapshot {
	snap := catalogSnapshot{
		products:   make(map[uuid.UUID]domain.Product, len(s.products)),
		categories: make(map[string]domain.Category, len(s.categories)),
		links:      make(map[uuid.UUID]map[uuid.UUID]bool, len(s.links)),
	}
	for k, v := range s.products {
		snap.products[k] = v
	}
	for k, v := range s.categories {
		snap.categories[k] = v
	}
	for k, v := range s.links {
		set := make(map[uuid.UUID]bool, len(v))
		for c := range v {
			set[c] = true
		}
		snap.links[k] = set
	}
	return snap
}

func (s *catalogStore) restore(snap catalogSnapshot) {
	s.products, s.categories, s.links = snap.products, snap.categories, snap.links
}

// mockTxManager restores the catalog when the unit of work fails
type mockTxManager struct {
	store *catalogStore
}

func (m *mockTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.mu.Lock()
	snap := m.store.snapshot()
	m.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.store.mu.Lock()
		m.store.restore(snap)
		m.store.mu.Unlock()
		return err
	}
	return nil
}

type mockProductRepository struct {
	store *catalogStore
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.Price.IsNegative() {
		return repository.ErrConflict
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	stored := *product
	stored.Categories = nil
	m.store.products[product.ID] = stored
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if m.store.failUpdate != nil {
		return m.store.failUpdate
	}
	existing, ok := m.store.products[product.ID]
	if !ok {
		return repository.ErrProductNotFound
	}
	stored := *product
	stored.IsDeleted = existing.IsDeleted
	stored.Categories = nil
	m.store.products[product.ID] = stored
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.setDeleted(id, true)
}

func (m *mockProductRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return m.setDeleted(id, false)
}

func (m *mockProductRepository) setDeleted(id uuid.UUID, deleted bool) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	p, ok := m.store.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	p.IsDeleted = deleted
	m.store.products[id] = p
	return nil
}

func (m *mockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	p, ok := m.store.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return m.withCategories(p), nil
}

func (m *mockProductRepository) withCategories(p domain.Product) *domain.Product {
	p.Categories = []domain.Category{}
	for _, c := range m.store.categories {
		if m.store.links[p.ID][c.ID] {
			p.Categories = append(p.Categories, c)
		}
	}
	sort.Slice(p.Categories, func(i, j int) bool { return p.Categories[i].Name < p.Categories[j].Name })
	return &p
}

func (m *mockProductRepository) ListActive(ctx context.Context) ([]*domain.Product, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	products := []*domain.Product{}
	for _, p := range m.store.products {
		if !p.IsDeleted {
			products = append(products, m.withCategories(p))
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].CreatedAt.Before(products[j].CreatedAt) })
	return products, nil
}

func (m *mockProductRepository) ListByCategory(ctx context.Context, categoryName string) ([]*domain.Product, error) {
	active, _ := m.ListActive(ctx)

	products := []*domain.Product{}
	for _, p := range active {
		if p.HasCategory(categoryName) {
			products = append(products, p)
		}
	}
	return products, nil
}

func (m *mockProductRepository) AddToCategory(ctx context.Context, productID uuid.UUID, categoryName string) error {
	return m.AddToCategories(ctx, productID, []string{categoryName})
}

func (m *mockProductRepository) AddToCategories(ctx context.Context, productID uuid.UUID, categoryNames []string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(categoryNames))
	for _, name := range categoryNames {
		c, ok := m.store.categories[domain.NormalizeName(name)]
		if !ok {
			return errors.Join(repository.ErrCategoryNotFound, errors.New(name))
		}
		ids = append(ids, c.ID)
	}

	if m.store.links[productID] == nil {
		m.store.links[productID] = make(map[uuid.UUID]bool)
	}
	for _, id := range ids {
		m.store.links[productID][id] = true
	}
	return nil
}

func (m *mockProductRepository) ReplaceCategories(ctx context.Context, productID uuid.UUID, categoryNames []string) error {
	m.store.mu.Lock()
	delete(m.store.links, productID)
	m.store.mu.Unlock()
	return m.AddToCategories(ctx, productID, categoryNames)
}

func (m *mockProductRepository) CountActive(ctx context.Context) (int, error) {
	active, _ := m.ListActive(ctx)
	return len(active), nil
}

func (m *mockProductRepository) CountByImage(ctx context.Context, image string) (int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	total := 0
	for _, p := range m.store.products {
		if p.Image == image {
			total++
		}
	}
	return total, nil
}

func (m *mockProductRepository) Any(ctx context.Context) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.products) > 0, nil
}

type mockCategoryRepository struct {
	store *catalogStore
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	category.NormalizedName = domain.NormalizeName(category.Name)
	if _, exists := m.store.categories[category.NormalizedName]; exists {
		return errors.Join(repository.ErrCategoryAlreadyExists, repository.ErrConflict)
	}
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	m.store.categories[category.NormalizedName] = *category
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	categories := []*domain.Category{}
	for _, c := range m.store.categories {
		c := c
		categories = append(categories, &c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, c := range m.store.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

func (m *mockCategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	c, ok := m.store.categories[domain.NormalizeName(name)]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	return &c, nil
}

func (m *mockCategoryRepository) Any(ctx context.Context) (bool, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return len(m.store.categories) > 0, nil
}

// mockImageStore keeps files in memory
type mockImageStore struct {
	files   map[string][]byte
	failErr error
}

func newMockImageStore() *mockImageStore {
	return &mockImageStore{files: make(map[string][]byte)}
}

func (m *mockImageStore) Save(ctx context.Context, name string, data []byte) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.files[name] = data
	return nil
}

func (m *mockImageStore) Remove(ctx context.Context, name string) error {
	delete(m.files, name)
	return nil
}

func (m *mockImageStore) Path(name string) string {
	return "/images/" + name
}

// Account mocks

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	user.Email = strings.ToLower(user.Email)
	if _, exists := m.users[user.Email]; exists {
		return errors.Join(repository.ErrUserAlreadyExists, repository.ErrConflict)
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.UserName == "" {
		user.UserName = user.Email
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[strings.ToLower(email)]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockUserRepository) Any(ctx context.Context) (bool, error) {
	return len(m.users) > 0, nil
}

type mockRoleRepository struct {
	roles       map[string]*domain.Role
	assignments map[uuid.UUID][]string
}

func newMockRoleRepository(names ...string) *mockRoleRepository {
	m := &mockRoleRepository{
		roles:       make(map[string]*domain.Role),
		assignments: make(map[uuid.UUID][]string),
	}
	for _, name := range names {
		_ = m.Create(context.Background(), &domain.Role{Name: name})
	}
	return m
}

func (m *mockRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	role.NormalizedName = domain.NormalizeName(role.Name)
	if _, exists := m.roles[role.NormalizedName]; exists {
		return repository.ErrRoleAlreadyExists
	}
	role.ID = uuid.New()
	m.roles[role.NormalizedName] = role
	return nil
}

func (m *mockRoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	role, ok := m.roles[domain.NormalizeName(name)]
	if !ok {
		return nil, repository.ErrRoleNotFound
	}
	return role, nil
}

func (m *mockRoleRepository) Any(ctx context.Context) (bool, error) {
	return len(m.roles) > 0, nil
}

func (m *mockRoleRepository) AssignToUser(ctx context.Context, userID, roleID uuid.UUID) error {
	for _, role := range m.roles {
		if role.ID == roleID {
			for _, existing := range m.assignments[userID] {
				if existing == role.Name {
					return nil
				}
			}
			m.assignments[userID] = append(m.assignments[userID], role.Name)
			return nil
		}
	}
	return repository.ErrRoleNotFound
}

func (m *mockRoleRepository) RolesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	roles := append([]string{}, m.assignments[userID]...)
	sort.Strings(roles)
	return roles, nil
}

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{
		tokens: make(map[string]*domain.RefreshToken),
	}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, userID uuid.UUID, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists || refreshToken.UserID != userID {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

// passthroughTx runs the unit of work without isolation
type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
