package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tradeboard/internal/client/client"
	"github.com/dmitrijs2005/tradeboard/internal/client/lifecycle"
	"github.com/dmitrijs2005/tradeboard/internal/client/services"
)

// message turns an error from any layer into the line shown to the user.
func message(err error) string {
	var (
		verr *client.ValidationError
		rej  *client.RequestRejectedError
	)

	switch {
	case errors.As(err, &verr):
		return "Invalid input: " + verr.Error()
	case errors.Is(err, lifecycle.ErrCancelled):
		return "Cancelled."
	case errors.Is(err, lifecycle.ErrInFlight):
		return "That request is already in progress."
	case errors.Is(err, lifecycle.ErrTerminalState):
		return "This listing can no longer be changed."
	case errors.Is(err, client.ErrUnauthenticated):
		return "Please log in first."
	case errors.Is(err, lifecycle.ErrNotPermitted):
		return "You are not allowed to do that."
	case errors.Is(err, services.ErrAccessDenied):
		return "Access denied. Admin or moderator role required."
	case errors.Is(err, client.ErrUnavailable):
		return "Server unreachable. Please try again later."
	case errors.Is(err, client.ErrNotFound):
		return "Listing not found or invalid."
	case errors.As(err, &rej):
		return rej.Error()
	}
	return fmt.Sprintf("Error: %v", err)
}

func (a *App) report(ctx context.Context, err error) {
	a.log.Debug(ctx, "command failed", "error", err)
	fmt.Fprintln(a.out, message(err))
}
