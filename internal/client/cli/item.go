package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tradeboard/internal/client/authz"
	"github.com/dmitrijs2005/tradeboard/internal/client/client"
	"github.com/dmitrijs2005/tradeboard/internal/client/display"
	"github.com/dmitrijs2005/tradeboard/internal/client/models"
)

func (a *App) categoryArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	category, err := getSimpleText(a.reader, "Enter category", a.out)
	if err != nil {
		return "", err
	}
	if category == "" {
		return "", &client.ValidationError{Field: "category", Message: "is required"}
	}
	return category, nil
}

func (a *App) listingArgs(args []string) (string, int64, error) {
	category, err := a.categoryArg(args)
	if err != nil {
		return "", 0, err
	}

	var raw string
	if len(args) > 1 {
		raw = args[1]
	} else if raw, err = getSimpleText(a.reader, "Enter listing id", a.out); err != nil {
		return "", 0, err
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "#"), 10, 64)
	if err != nil || id <= 0 {
		return "", 0, &client.ValidationError{Field: "id", Message: "must be a positive number"}
	}
	return category, id, nil
}

// fetch loads the listing named by args.
func (a *App) fetch(ctx context.Context, args []string) (models.Listing, error) {
	category, id, err := a.listingArgs(args)
	if err != nil {
		return models.Listing{}, err
	}
	return a.svc.Catalog.Listing(ctx, category, id)
}

func (a *App) Show(ctx context.Context, args []string) error {
	l, err := a.fetch(ctx, args)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, display.Detail(l))

	caps := authz.Resolve(a.session(ctx), l)
	var actions []string
	if caps.Has(authz.CapEdit) {
		actions = append(actions, "edit")
	}
	if caps.Has(authz.CapDelete) {
		actions = append(actions, "delete")
	}
	if caps.Has(authz.CapModerateDelete) {
		actions = append(actions, "moderate")
	}
	if len(actions) > 0 {
		fmt.Fprintf(a.out, "You can: %s %s %d\n", strings.Join(actions, " | "), l.Category, l.ID)
	}
	return nil
}
