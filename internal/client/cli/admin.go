package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tradeboard/internal/client/display"
)

// Admin lists all users with their posts.
func (a *App) Admin(ctx context.Context, _ []string) error {
	users, err := a.svc.Admin.Users(ctx)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found.")
		return nil
	}
	for _, u := range users {
		fmt.Fprintln(a.out, display.UserPosts(u))
	}
	fmt.Fprintln(a.out, "Use 'moderate <category> <id>' to remove a post's content.")
	return nil
}
