package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tradeboard/internal/client/display"
)

func (a *App) Categories(ctx context.Context, _ []string) error {
	list, err := a.svc.Catalog.Categories(ctx)
	if err != nil {
		return err
	}

	if list.Degraded {
		fmt.Fprintln(a.out, "Server unreachable, showing default categories.")
	}
	for _, c := range list.Categories {
		fmt.Fprintf(a.out, "  %-14s %s (%d)\n", c.Key, display.CategoryName(c.DisplayName), c.ListingCount)
	}
	return nil
}

func (a *App) List(ctx context.Context, args []string) error {
	category, err := a.categoryArg(args)
	if err != nil {
		return err
	}

	listings, err := a.svc.Catalog.Listings(ctx, category)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, display.CategoryName(category))
	if len(listings) == 0 {
		fmt.Fprintln(a.out, "No listings yet in this category.")
		return nil
	}

	now := time.Now()
	for _, l := range listings {
		fmt.Fprintln(a.out, display.Summary(l, now))
	}
	return nil
}
