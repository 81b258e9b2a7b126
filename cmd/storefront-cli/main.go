package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/fjod/go_foodcart/internal/cache"
	"github.com/fjod/go_foodcart/internal/cart"
	"github.com/fjod/go_foodcart/internal/config"
	"github.com/fjod/go_foodcart/internal/session"
	"github.com/fjod/go_foodcart/internal/storefront"
	"github.com/fjod/go_foodcart/internal/view"
	"github.com/fjod/go_foodcart/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const usage = `usage: storefront-cli <command> [args]

  signup <name> <email> <password>
  login <email> <password>
  logout
  whoami
  restaurants [search]
  products [search]
  add-product <id>
  cart`

var errUsage = errors.New(usage)

func main() {
	cfg := config.Load()
	log := logger.NewWithOutput(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	app, err := newApp(ctx, cfg.StorefrontAPIURL, redisClient, cfg.SessionName, os.Stdout, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open storefront")
	}

	if err := run(ctx, app, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp keeps the session and cart snapshots in Redis so they survive
// between invocations. Cart notifications are printed to out.
func newApp(ctx context.Context, apiURL string, rc *redis.Client, sessionName string, out io.Writer, log logrus.FieldLogger) (*storefront.App, error) {
	notify := cart.NotifierFunc(func(n cart.Notification) {
		fmt.Fprintln(out, n.Message)
	})
	return storefront.NewApp(ctx, storefront.AppConfig{
		Client:    storefront.NewClient(apiURL, log),
		Sessions:  session.NewRedisStore(rc, sessionName),
		Snapshots: cache.NewRedisCartCache(rc),
		Notifier:  notify,
		Log:       log,
	})
}

func run(ctx context.Context, app *storefront.App, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case "signup":
		if len(args) != 3 {
			return errUsage
		}
		user, err := app.SignUp(ctx, args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "signed up as %s\n", user.Email)
		return nil
	case "login":
		if len(args) != 2 {
			return errUsage
		}
		user, err := app.Login(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "logged in as %s\n", user.Email)
		return nil
	case "logout":
		return app.Logout(ctx)
	case "whoami":
		user, err := app.Require()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s <%s>\n", user.Name, user.Email)
		return nil
	case "restaurants":
		if _, err := app.Require(); err != nil {
			return err
		}
		return listRestaurants(ctx, app, strings.Join(args, " "), out)
	case "products":
		if _, err := app.Require(); err != nil {
			return err
		}
		return listProducts(ctx, app, strings.Join(args, " "), out)
	case "add-product":
		if len(args) != 1 {
			return errUsage
		}
		return addProduct(ctx, app, args[0])
	case "cart":
		if _, err := app.Require(); err != nil {
			return err
		}
		printCart(app.Cart, out)
		return nil
	default:
		return errUsage
	}
}

func listRestaurants(ctx context.Context, app *storefront.App, search string, out io.Writer) error {
	if err := app.Restaurants.Load(ctx); err != nil {
		return err
	}
	app.Restaurants.Update(func(f *view.FilterState) { f.SetSearch(search) })
	result := app.Restaurants.View()
	if result.Message != "" {
		fmt.Fprintln(out, result.Message)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range result.Items {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\n", r.ID, r.Name, r.Rating, strings.Join(r.Cuisines, ", "))
	}
	return tw.Flush()
}

func listProducts(ctx context.Context, app *storefront.App, search string, out io.Writer) error {
	if err := app.Groceries.Load(ctx); err != nil {
		return err
	}
	app.Groceries.Update(func(f *view.FilterState) { f.SetSearch(search) })
	result := app.Groceries.View()
	if result.Message != "" {
		fmt.Fprintln(out, result.Message)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, p := range result.Items {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\n", p.ID, p.Title, p.Price, p.Category)
	}
	return tw.Flush()
}

func addProduct(ctx context.Context, app *storefront.App, rawID string) error {
	if _, err := app.Require(); err != nil {
		return err
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("product id %q: %w", rawID, errUsage)
	}
	product, err := app.API.Product(ctx, id)
	if err != nil {
		return err
	}
	app.AddProduct(*product)
	return app.SaveCart(ctx)
}

func printCart(c *cart.Cart, out io.Writer) {
	items := c.Items()
	if len(items) == 0 {
		fmt.Fprintln(out, "Your cart is empty")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, li := range items {
		fmt.Fprintf(tw, "%s\tx%d\t%s\n", li.Name, li.Quantity, li.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(tw, "Total\t\t%s\n", c.TotalPrice().StringFixed(2))
	_ = tw.Flush()
}
