package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tradeboard/internal/client/display"
	"github.com/dmitrijs2005/tradeboard/internal/client/lifecycle"
)

var (
	errNotPermitted = lifecycle.ErrNotPermitted
	errTerminal     = lifecycle.ErrTerminalState
)

func (a *App) Delete(ctx context.Context, args []string) error {
	l, err := a.fetch(ctx, args)
	if err != nil {
		return err
	}

	if err := a.svc.Lifecycle.Delete(ctx, l); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Listing deleted.")
	return nil
}

// Moderate redacts a listing. Staff only.
func (a *App) Moderate(ctx context.Context, args []string) error {
	l, err := a.fetch(ctx, args)
	if err != nil {
		return err
	}

	redacted, err := a.svc.Lifecycle.Moderate(ctx, l)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Post deleted by moderation.")
	fmt.Fprintln(a.out, display.Detail(redacted))
	return nil
}
