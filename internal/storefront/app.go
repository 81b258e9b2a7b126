package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/fjod/go_foodcart/internal/cache"
	"github.com/fjod/go_foodcart/internal/cart"
	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/fjod/go_foodcart/internal/session"
	"github.com/fjod/go_foodcart/internal/view"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	Client    *Client
	Sessions  session.Store
	// Snapshots keeps the cart between sessions. Nil disables persistence.
	Snapshots cart.SnapshotStore
	Notifier  cart.Notifier
	PageSize  int
	Log       logrus.FieldLogger
}

// App is the client-side application state. Main views call Require before
// rendering and send the user to sign-up or login on ErrNotAuthenticated.
type App struct {
	API         *Client
	Session     *session.Session
	Cart        *cart.Cart
	Restaurants *Browser[domain.Restaurant]
	Groceries   *Browser[domain.Product]

	snapshots cart.SnapshotStore
	log       logrus.FieldLogger
}

func NewApp(ctx context.Context, cfg AppConfig) (*App, error) {
	sess, err := session.Open(ctx, cfg.Sessions)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = view.DefaultPageSize
	}

	a := &App{
		API:         cfg.Client,
		Session:     sess,
		Cart:        cart.New(cfg.Notifier),
		Restaurants: NewRestaurantBrowser(cfg.Client, pageSize, cfg.Log),
		Groceries:   NewGroceryBrowser(cfg.Client, pageSize, cfg.Log),
		snapshots:   cfg.Snapshots,
		log:         cfg.Log.WithField("component", "storefront"),
	}
	if user, ok := sess.User(); ok {
		a.restoreCart(ctx, user.ID)
	}
	return a, nil
}

// Require returns the signed-in user or ErrNotAuthenticated.
func (a *App) Require() (domain.PublicUser, error) {
	user, ok := a.Session.User()
	if !ok {
		return domain.PublicUser{}, ErrNotAuthenticated
	}
	return user, nil
}

func (a *App) SignUp(ctx context.Context, name, email, password string) (*domain.PublicUser, error) {
	user, err := a.API.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.signIn(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (a *App) Login(ctx context.Context, email, password string) (*domain.PublicUser, error) {
	user, err := a.API.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := a.signIn(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (a *App) signIn(ctx context.Context, user domain.PublicUser) error {
	if err := a.Session.SignIn(ctx, user); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	a.restoreCart(ctx, user.ID)
	return nil
}

// Logout saves the cart, empties it without notifying, and forgets the user.
func (a *App) Logout(ctx context.Context) error {
	if err := a.SaveCart(ctx); err != nil && !errors.Is(err, ErrNotAuthenticated) {
		a.log.WithError(err).Warn("failed to save cart on logout")
	}
	a.Cart.Restore(cart.State{})
	return a.Session.SignOut(ctx)
}

// SaveCart stores the current cart under the signed-in user. An empty cart
// deletes the stored snapshot.
func (a *App) SaveCart(ctx context.Context) error {
	user, err := a.Require()
	if err != nil {
		return err
	}
	if a.snapshots == nil {
		return nil
	}

	snap := a.Cart.Snapshot()
	if len(snap.Items) == 0 {
		return a.snapshots.Delete(ctx, user.ID)
	}
	if err := a.snapshots.Set(ctx, user.ID, &snap); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (a *App) restoreCart(ctx context.Context, userID string) {
	if a.snapshots == nil {
		return
	}
	snap, err := a.snapshots.Get(ctx, userID)
	if errors.Is(err, cache.ErrCacheMiss) {
		return
	}
	if err != nil {
		a.log.WithError(err).WithField("user_id", userID).Warn("failed to restore cart")
		return
	}
	a.Cart.Restore(*snap)
}

// AddMenuItem puts a restaurant menu item into the cart.
func (a *App) AddMenuItem(restaurantID, section string, item domain.MenuItem) {
	a.Cart.AddItem(cart.ProductFrom(cart.MenuItemMapping(restaurantID, section), item))
}

func (a *App) AddProduct(p domain.Product) {
	a.Cart.AddItem(cart.ProductFrom(cart.GroceryMapping, p))
}
