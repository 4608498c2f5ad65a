package impl

import (
	"context"
	"io"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
)

// In-memory fakes for the repository and gateway contracts. They mirror the
// real adapters' semantics closely enough to exercise the services: the
// product fake folds review ratings into the aggregate under a lock the same
// way the SQL single-UPDATE does, and the order fake applies MarkPaid as a
// conditional update.

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- user repository ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user

			return &copied, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user

	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domainerrors.ErrConflict.WrapMessage("email already registered")
		}
	}

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied

	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role entity.Role) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.User
	for _, user := range r.users {
		if user.Role == role {
			copied := *user
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (r *fakeUserRepo) ListRecentByRole(ctx context.Context, role entity.Role, limit int) ([]*entity.User, error) {
	users, err := r.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	if len(users) > limit {
		users = users[:limit]
	}

	return users, nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role entity.Role) (int64, error) {
	users, err := r.ListByRole(ctx, role)
	if err != nil {
		return 0, err
	}

	return int64(len(users)), nil
}

// --- product repository ---

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
	sums     map[uuid.UUID]int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[uuid.UUID]*entity.Product),
		sums:     make(map[uuid.UUID]int64),
	}
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	copied := *product
	r.products[product.ID] = &copied

	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[product.ID]
	if !ok {
		return repository.ErrProductNotFound
	}
	stored.Title = product.Title
	stored.Price = product.Price
	stored.Description = product.Description
	stored.Category = product.Category
	stored.Image = product.Image

	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)

	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	copied.Reviews = append([]*entity.Review(nil), product.Reviews...)

	return &copied, nil
}

func (r *fakeProductRepo) ListBySeller(_ context.Context, sellerID uuid.UUID) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Product
	for _, product := range r.products {
		if product.SellerID == sellerID {
			copied := *product
			out = append(out, &copied)
		}
	}

	return out, nil
}

func (r *fakeProductRepo) ListAll(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		copied := *product
		out = append(out, &copied)
	}

	return out, nil
}

func (r *fakeProductRepo) ListByCategory(_ context.Context, category string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Product
	for _, product := range r.products {
		if product.Category == category {
			copied := *product
			out = append(out, &copied)
		}
	}

	return out, nil
}

func (r *fakeProductRepo) Search(_ context.Context, query string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Product
	for _, product := range r.products {
		if containsFold(product.Title, query) || containsFold(product.Description, query) {
			copied := *product
			out = append(out, &copied)
		}
	}

	return out, nil
}

// AppendReview mirrors the single-UPDATE semantics of the SQL adapter: the
// sum, count and rounded average change together under one lock acquisition.
func (r *fakeProductRepo) AppendReview(_ context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[review.ProductID]
	if !ok {
		return repository.ErrProductNotFound
	}

	sum := r.sums[review.ProductID] + int64(review.Rating)
	count := product.RatingCount + 1
	r.sums[review.ProductID] = sum
	product.RatingCount = count
	product.AverageRating = math.Round(float64(sum)/float64(count)*100) / 100

	review.ID = uuid.New()
	review.CreatedAt = time.Now()
	copied := *review
	product.Reviews = append(product.Reviews, &copied)

	return nil
}

func containsFold(haystack, needle string) bool {
	h := []rune(haystack)
	n := []rune(needle)
	if len(n) == 0 {
		return true
	}
	for i := 0; i+len(n) <= len(h); i++ {
		match := true
		for j := range n {
			a, b := h[i+j], n[j]
			if a != b && toLowerRune(a) != toLowerRune(b) {
				match = false

				break
			}
		}
		if match {
			return true
		}
	}

	return false
}

func toLowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}

	return r
}

// --- order repository ---

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*entity.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.UpdatedAt = order.CreatedAt
	copied := *order
	r.orders[order.ID] = &copied

	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order

	return &copied, nil
}

func (r *fakeOrderRepo) FindByGatewayOrderID(_ context.Context, gatewayOrderID string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.GatewayOrderID == gatewayOrderID {
			copied := *order

			return &copied, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			copied := *order
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (r *fakeOrderRepo) ListAll(_ context.Context) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Order, 0, len(r.orders))
	for _, order := range r.orders {
		copied := *order
		out = append(out, &copied)
	}

	return out, nil
}

// MarkPaid is a conditional update exactly like the SQL adapter's: it only
// matches a pending order, and reports whether a row changed.
func (r *fakeOrderRepo) MarkPaid(_ context.Context, gatewayOrderID, paymentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range r.orders {
		if order.GatewayOrderID == gatewayOrderID && order.Status == entity.OrderStatusPending {
			order.Status = entity.OrderStatusProcessing
			order.PaymentID = paymentID

			return true, nil
		}
	}

	return false, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.Status = status

	return nil
}

// --- cart repository ---

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]entity.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]entity.Cart)}
}

func (r *fakeCartRepo) Load(_ context.Context, scope string) (*entity.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.carts[scope]
	if !ok {
		return &entity.Cart{}, nil
	}
	copied := entity.Cart{Items: append([]entity.CartItem(nil), stored.Items...)}

	return &copied, nil
}

func (r *fakeCartRepo) Save(_ context.Context, scope string, cart *entity.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[scope] = entity.Cart{Items: append([]entity.CartItem(nil), cart.Items...)}

	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, scope string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, scope)

	return nil
}

// --- payment gateway ---

type fakeGateway struct {
	mu        sync.Mutex
	created   []*service.CreateGatewayOrderInput
	nextID    int
	createErr error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{}
}

func (g *fakeGateway) CreateOrder(_ context.Context, input *service.CreateGatewayOrderInput) (*service.GatewayOrder, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.createErr != nil {
		return nil, g.createErr
	}

	g.nextID++
	g.created = append(g.created, input)

	return &service.GatewayOrder{
		ID:        gatewayOrderID(g.nextID),
		Amount:    input.Amount,
		Currency:  input.Currency,
		Status:    "created",
		Receipt:   input.Receipt,
		CreatedAt: time.Now(),
	}, nil
}

// VerifySignature accepts the deterministic signature validSignature produces.
func (g *fakeGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return signature == validSignature(gatewayOrderID, paymentID)
}

func gatewayOrderID(n int) string {
	return "order_fake_" + strconv.Itoa(n)
}

func validSignature(orderID, paymentID string) string {
	return "sig:" + orderID + "|" + paymentID
}

// fakeTxManager runs the callback against a shared set of fakes; the in-memory
// stores have no transaction semantics to emulate.
type fakeTxManager struct {
	userRepo    *fakeUserRepo
	productRepo *fakeProductRepo
	orderRepo   *fakeOrderRepo
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m)
}

func (m *fakeTxManager) UserRepo() repository.UserRepository {
	return m.userRepo
}

func (m *fakeTxManager) ProductRepo() repository.ProductRepository {
	return m.productRepo
}

func (m *fakeTxManager) OrderRepo() repository.OrderRepository {
	return m.orderRepo
}
