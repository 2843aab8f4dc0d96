package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/tradeboard/internal/client/authz"
	"github.com/dmitrijs2005/tradeboard/internal/client/client"
	"github.com/dmitrijs2005/tradeboard/internal/client/display"
	"github.com/dmitrijs2005/tradeboard/internal/client/models"
)

var getMultiline = GetMultiline

// clearValue, typed while editing, empties an optional field.
const clearValue = "-"

// readDraft prompts for every listing field. Empty answers keep the values
// from base; "-" clears an optional field that has one and a price of 0
// makes the listing free.
func (a *App) readDraft(base models.Draft) (models.Draft, error) {
	d := base
	var err error

	if d.Title, err = GetTextWithDefault(a.reader, "Title", base.Title, a.out); err != nil {
		return d, err
	}

	descPrompt := "Description"
	if base.Description != "" {
		descPrompt = "Description (blank keeps the current text, - clears it)"
	}
	desc, err := getMultiline(a.reader, descPrompt, a.out)
	if err != nil {
		return d, err
	}
	switch desc {
	case "":
	case clearValue:
		d.Description = ""
	default:
		d.Description = desc
	}

	def, pricePrompt := "", "Price (blank for free)"
	if base.Price > 0 {
		def = strconv.FormatFloat(base.Price, 'f', 2, 64)
		pricePrompt = "Price (0 for free)"
	}
	rawPrice, err := GetTextWithDefault(a.reader, pricePrompt, def, a.out)
	if err != nil {
		return d, err
	}
	if d.Price, err = models.ParsePrice(rawPrice); err != nil {
		return d, &client.ValidationError{Field: "price", Message: err.Error()}
	}

	if d.Location, err = a.optionalField("Location", base.Location); err != nil {
		return d, err
	}
	if d.ContactEmail, err = a.optionalField("Contact email", base.ContactEmail); err != nil {
		return d, err
	}
	if d.ContactPhone, err = a.optionalField("Contact phone", base.ContactPhone); err != nil {
		return d, err
	}
	return d, nil
}

func (a *App) optionalField(prompt, current string) (string, error) {
	if current != "" {
		prompt += " (- clears)"
	}
	v, err := GetTextWithDefault(a.reader, prompt, current, a.out)
	if err != nil {
		return "", err
	}
	if v == clearValue {
		return "", nil
	}
	return v, nil
}

// Post creates a listing in the given category.
func (a *App) Post(ctx context.Context, args []string) error {
	if !authz.CanCreate(a.session(ctx)) {
		return client.ErrUnauthenticated
	}

	category, err := a.categoryArg(args)
	if err != nil {
		return err
	}

	draft, err := a.readDraft(models.Draft{})
	if err != nil {
		return err
	}

	id, err := a.svc.Lifecycle.Create(ctx, category, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Listing #%d created in %s.\n", id, display.CategoryName(category))
	return nil
}

// Edit changes one of the user's own listings and prints the result as
// stored by the backend.
func (a *App) Edit(ctx context.Context, args []string) error {
	l, err := a.fetch(ctx, args)
	if err != nil {
		return err
	}
	if !authz.Resolve(a.session(ctx), l).Has(authz.CapEdit) {
		if l.IsRedacted() {
			return fmt.Errorf("edit: %w", errTerminal)
		}
		return fmt.Errorf("edit: %w", errNotPermitted)
	}

	patch, err := a.readDraft(models.DraftFrom(l))
	if err != nil {
		return err
	}

	fresh, err := a.svc.Lifecycle.Edit(ctx, l, patch)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Listing updated.")
	fmt.Fprintln(a.out, display.Detail(fresh))
	return nil
}
