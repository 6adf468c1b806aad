package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

// Querier is the full set of queries used by the services. *Queries is the
// Postgres implementation; repotest provides an in-memory one.
type Querier interface {
	// catalog
	GetGame(ctx context.Context, id int64) (Game, error)
	GetBundle(ctx context.Context, id int64) (Bundle, error)
	ListBundleGames(ctx context.Context, bundleID int64) ([]Game, error)
	IncrementGameSales(ctx context.Context, gameIDs []int64) error

	// cart
	EnsureCart(ctx context.Context, userID int64) (Cart, error)
	GetCartByUserID(ctx context.Context, userID int64) (Cart, error)
	ListCartItems(ctx context.Context, cartID int64) ([]CartItem, error)
	ListCartBundles(ctx context.Context, cartID int64) ([]CartBundle, error)
	CreateCartItem(ctx context.Context, arg CreateCartItemParams) (CartItem, error)
	DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error)
	CreateCartBundle(ctx context.Context, arg CreateCartBundleParams) (CartBundle, error)
	DeleteCartBundle(ctx context.Context, arg DeleteCartBundleParams) (int64, error)
	ClearCart(ctx context.Context, cartID int64) error

	// ownership
	IsGameOwned(ctx context.Context, arg IsGameOwnedParams) (bool, error)
	ListOwnedGameIDs(ctx context.Context, arg ListOwnedGameIDsParams) ([]int64, error)
	CreatePurchasedGame(ctx context.Context, arg CreatePurchasedGameParams) error
	ListPurchasedGames(ctx context.Context, userID int64) ([]PurchasedGame, error)

	// orders
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error)
	CreateOrderBundle(ctx context.Context, arg CreateOrderBundleParams) (OrderBundle, error)
	GetOrder(ctx context.Context, arg GetOrderParams) (Order, error)
	ListOrdersByUser(ctx context.Context, arg ListOrdersByUserParams) ([]Order, error)
	ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)
	ListOrderBundles(ctx context.Context, orderID uuid.UUID) ([]OrderBundle, error)

	// wishlist
	DeleteWishlistGames(ctx context.Context, arg DeleteWishlistGamesParams) (int64, error)
}

var _ Querier = (*Queries)(nil)
