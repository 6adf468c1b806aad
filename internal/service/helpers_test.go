package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/set-night/gamestore/internal/domain"
	"github.com/set-night/gamestore/internal/repository/repotest"
	"github.com/set-night/gamestore/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const userID int64 = 42

func strptr(s string) *string { return &s }

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

type fakePublisher struct {
	mu     sync.Mutex
	orders []*domain.Order
	err    error
}

func (p *fakePublisher) PublishOrderCompleted(_ context.Context, order *domain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, order)
	return p.err
}

type fakeLogger struct {
	mu        sync.Mutex
	purchases int
	errors    []error
}

func (l *fakeLogger) LogPurchase(*domain.Order, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.purchases++
}

func (l *fakeLogger) LogError(err error, _ string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, err)
}

type fixture struct {
	store     *repotest.Store
	cart      *service.CartService
	checkout  *service.CheckoutService
	publisher *fakePublisher
	logger    *fakeLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repotest.NewStore()
	pub := &fakePublisher{}
	logger := &fakeLogger{}
	return &fixture{
		store:     store,
		cart:      service.NewCartService(store),
		checkout:  service.NewCheckoutService(store, pub, logger, 0),
		publisher: pub,
		logger:    logger,
	}
}
