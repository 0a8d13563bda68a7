package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"shop_client/config"
	"shop_client/internal/app"
	"shop_client/internal/auth"
	"shop_client/pkg/logger"
)

const usage = `Usage: adminctl <command> [flags]

Commands:
  login -u <username> [-p <password>]   sign in (password falls back to ADMINCTL_PASSWORD)
  logout                                sign out and forget the stored session
  whoami                                show the signed-in profile
  products [-page N -limit N -search s] list products
  categories                            list categories
  orders [-status s -page N -limit N]   list orders
  order show <id>                       show one order
  order status <id> <status>            change an order's status
  order create -customer ... -item id:qty
  upload [-folder f] <file>...          upload images`

// hintNavigator tells the operator to sign in again when the session is dropped.
type hintNavigator struct {
	*auth.RouteTracker
	loginRoute string
}

func (n hintNavigator) Navigate(route string) {
	n.RouteTracker.Navigate(route)
	if route == n.loginRoute {
		fmt.Fprintln(os.Stderr, "Session is no longer valid, run `adminctl login` to sign in again.")
	}
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	log := logger.New(os.Getenv("LOG_LEVEL"))
	log.SetOutput(os.Stderr)
	cfg, err := config.LoadConfig(log)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	nav := hintNavigator{RouteTracker: auth.NewRouteTracker("/"), loginRoute: cfg.LoginRoute}
	a, err := app.New(ctx, cfg, app.Options{Navigator: nav}, log)
	if err != nil {
		log.Fatalf("Failed to initialise client: %v", err)
	}

	err = a.Start(ctx)
	if err == nil {
		err = run(ctx, a, os.Args[1:], os.Stdout)
	}
	if cerr := a.Close(); cerr != nil && err == nil {
		err = cerr
	}

	var ue usageError
	switch {
	case err == nil:
	case errors.As(err, &ue):
		fmt.Fprintf(os.Stderr, "%v\n\n%s\n", err, usage)
		os.Exit(2)
	default:
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
