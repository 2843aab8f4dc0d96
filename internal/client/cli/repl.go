package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

type commandFunc func(ctx context.Context, args []string) error

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	isStaff(ctx context.Context) bool
	report(ctx context.Context, err error)

	Categories(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Post(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Moderate(ctx context.Context, args []string) error
	Admin(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Signup(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Whoami(ctx context.Context, args []string) error
}

const (
	helpAnonymous = "Available commands: categories, (l)ist <category>, show <category> <id>, login, signup, exit"
	helpUser      = "Available commands: categories, (l)ist <category>, show <category> <id>, post <category>, edit <category> <id>, delete <category> <id>, whoami, logout, exit"
	helpStaff     = helpUser + "\nStaff commands: admin, moderate <category> <id>"
)

func helpText(ctx context.Context, a execIface) string {
	switch {
	case a.isStaff(ctx):
		return helpStaff
	case a.isLoggedIn(ctx):
		return helpUser
	}
	return helpAnonymous
}

// runREPL reads commands line by line from reader and dispatches them to a.
// Every failure is reported and the loop continues. It returns on EOF or
// when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	commands := map[string]commandFunc{
		"categories": a.Categories,
		"c":          a.Categories,
		"list":       a.List,
		"l":          a.List,
		"show":       a.Show,
		"post":       a.Post,
		"edit":       a.Edit,
		"delete":     a.Delete,
		"moderate":   a.Moderate,
		"admin":      a.Admin,
		"login":      a.Login,
		"signup":     a.Signup,
		"register":   a.Signup,
		"logout":     a.Logout,
		"whoami":     a.Whoami,
	}

	for {
		fmt.Fprintf(out, "tb %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText(ctx, a))
			continue
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		}

		fn, ok := commands[cmd]
		if !ok {
			fmt.Fprintln(out, "Unknown command:", cmd)
			continue
		}
		if err := fn(ctx, args); err != nil {
			a.report(ctx, err)
		}
	}
}
