package lifecycle

import "context"

const (
	DeletePrompt   = "Are you sure you want to delete this listing? This action cannot be undone."
	ModeratePrompt = "Delete this post by moderation? Its content will be replaced with a moderation notice. The post itself stays visible."
)

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
