package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	var parts []string
	if sess := a.session(context.Background()); sess != nil {
		parts = append(parts, sess.User.Name)
	}
	if m := a.Mode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s) ", strings.Join(parts, " "))
}

// Root greets the user and runs the REPL until exit.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to tradeboard (type 'help' for commands)")
	if sess := a.session(ctx); sess != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", sess.User.Name)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
