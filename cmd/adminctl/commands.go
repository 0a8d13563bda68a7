package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"shop_client/internal/app"
	"shop_client/internal/clients"
	"shop_client/internal/domain"
	"shop_client/internal/services"
	"shop_client/internal/validation"
)

type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

// itemList collects repeated -item productID:quantity flags.
type itemList []domain.OrderItemInput

func (l *itemList) String() string { return fmt.Sprint(len(*l)) }

func (l *itemList) Set(v string) error {
	id, qty, ok := strings.Cut(v, ":")
	if !ok || id == "" {
		return fmt.Errorf("expected productID:quantity, got %q", v)
	}
	n, err := strconv.Atoi(qty)
	if err != nil {
		return fmt.Errorf("invalid quantity in %q", v)
	}
	*l = append(*l, domain.OrderItemInput{ProductID: id, Quantity: n})
	return nil
}

func run(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if len(args) == 0 {
		return usagef("missing command")
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		return runLogin(ctx, a, rest, out)
	case "logout":
		if err := a.Auth.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Signed out.")
		return nil
	case "whoami":
		profile, err := a.Auth.Refresh(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, profile)
	case "products":
		params, err := parseList(cmd, rest, false)
		if err != nil {
			return err
		}
		page, err := a.Services.Products.GetAll(ctx, params)
		if err != nil {
			return err
		}
		return printJSON(out, page)
	case "categories":
		page, err := a.Services.Categories.GetAll(ctx, domain.ListParams{})
		if err != nil {
			return err
		}
		return printJSON(out, page)
	case "orders":
		params, err := parseList(cmd, rest, true)
		if err != nil {
			return err
		}
		page, err := a.Services.Orders.GetAll(ctx, params)
		if err != nil {
			return err
		}
		return printJSON(out, page)
	case "order":
		return runOrder(ctx, a, rest, out)
	case "upload":
		return runUpload(ctx, a, rest, out)
	default:
		return usagef("unknown command %q", cmd)
	}
}

func runLogin(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return usagef("login: %v", err)
	}
	if *password == "" {
		*password = os.Getenv("ADMINCTL_PASSWORD")
	}

	creds := domain.Credentials{Username: *username, Password: *password}
	if err := a.Validator.Validate(creds); err != nil {
		return err
	}
	profile, err := a.Auth.Login(ctx, creds)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Signed in as %s (%s).\n", profile.Name, profile.Role)
	return nil
}

func parseList(name string, args []string, withStatus bool) (domain.ListParams, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var p domain.ListParams
	fs.IntVar(&p.Page, "page", 0, "page number")
	fs.IntVar(&p.Limit, "limit", 0, "page size")
	fs.StringVar(&p.Search, "search", "", "search term")
	if withStatus {
		fs.StringVar(&p.Status, "status", "", "status filter")
	}
	if err := fs.Parse(args); err != nil {
		return p, usagef("%s: %v", name, err)
	}
	return p, nil
}

func runOrder(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	if len(args) == 0 {
		return usagef("order: missing action")
	}
	switch args[0] {
	case "show":
		if len(args) != 2 {
			return usagef("order show: expected an order id")
		}
		order, err := a.Services.Orders.GetByID(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(out, order)
	case "status":
		if len(args) != 3 {
			return usagef("order status: expected an order id and a status")
		}
		input := domain.OrderStatusInput{Status: domain.OrderStatus(args[2])}
		if err := a.Validator.Validate(input); err != nil {
			return err
		}
		order, err := a.Services.Orders.UpdateStatus(ctx, args[1], input)
		if err != nil {
			return err
		}
		return printJSON(out, order)
	case "create":
		input, err := parseOrderInput(args[1:])
		if err != nil {
			return err
		}
		if err := a.Validator.Validate(input); err != nil {
			return err
		}
		order, err := a.Services.Orders.Create(ctx, input)
		if err != nil {
			return err
		}
		return printJSON(out, order)
	default:
		return usagef("order: unknown action %q", args[0])
	}
}

func parseOrderInput(args []string) (domain.OrderInput, error) {
	fs := flag.NewFlagSet("order create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var in domain.OrderInput
	var items itemList
	fs.StringVar(&in.CustomerName, "customer", "", "customer name")
	fs.StringVar(&in.CustomerEmail, "email", "", "customer email")
	fs.StringVar(&in.CustomerPhone, "phone", "", "customer phone")
	fs.StringVar(&in.ShippingAddress, "address", "", "shipping address")
	fs.StringVar(&in.VoucherCode, "voucher", "", "voucher code")
	fs.StringVar(&in.Note, "note", "", "order note")
	fs.Var(&items, "item", "productID:quantity, repeatable")
	if err := fs.Parse(args); err != nil {
		return in, usagef("order create: %v", err)
	}
	in.Items = items
	return in, nil
}

func runUpload(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	folder := fs.String("folder", "", "destination folder")
	if err := fs.Parse(args); err != nil {
		return usagef("upload: %v", err)
	}
	if fs.NArg() == 0 {
		return usagef("upload: no files given")
	}

	files := make([]services.ImageFile, 0, fs.NArg())
	for _, path := range fs.Args() {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		files = append(files, services.ImageFile{Filename: filepath.Base(path), Content: f})
	}

	images, err := a.Services.Uploads.Images(ctx, *folder, files)
	if err != nil {
		return err
	}
	return printJSON(out, images)
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printError renders local and server field errors one per line.
func printError(w io.Writer, err error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		fmt.Fprintln(w, "Invalid input:")
		for _, f := range verr.Fields {
			fmt.Fprintf(w, "  %s: %s\n", f.Field, f.Message)
		}
		return
	}
	if apiErr, ok := clients.AsAPIError(err); ok {
		fmt.Fprintf(w, "Error: %s\n", apiErr.Message)
		for _, f := range apiErr.Errors {
			fmt.Fprintf(w, "  %s: %s\n", f.Field, f.Message)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
