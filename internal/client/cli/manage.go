package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vpetrenko/promptmart/internal/client/models"
	"github.com/vpetrenko/promptmart/internal/common"
)

// getMultiline is a test seam over GetMultiline.
var getMultiline = GetMultiline

// Add interactively builds a prompt draft, validates it locally, and
// submits it. Validation failures never reach the network.
func (a *App) Add(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first")
		return nil
	}

	draft, err := a.readDraft(models.Draft{})
	if err != nil {
		return err
	}

	if err := draft.Validate(); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}

	id, err := a.client.CreatePrompt(ctx, draft)
	if err != nil {
		if errors.Is(err, common.ErrForbidden) {
			// Free-plan limit; surface the backend's wording.
			fmt.Fprintln(a.out, serverOr(err, "Upgrade your plan to create more prompts"))
			return nil
		}
		a.log.Error(ctx, "failed to create prompt", "error", err)
		fmt.Fprintln(a.out, serverOr(err, "Could not create the prompt, please try again later"))
		return err
	}

	// The create endpoint returns only the id; read the record back so the
	// cache holds server-populated fields (author, timestamps).
	created, err := a.client.GetPrompt(ctx, id)
	if err != nil {
		a.log.Warn(ctx, "created prompt could not be read back", "id", id, "error", err)
		fmt.Fprintf(a.out, "Created prompt #%d\n", id)
		return nil
	}
	a.cache.Add(*created)
	fmt.Fprintf(a.out, "Created prompt #%d: %s\n", created.ID, created.Title)
	return nil
}

// Edit fetches an owned prompt, pre-fills the form with its current
// values, and submits the changes. The cache is patched locally; the
// server does not echo the updated record.
func (a *App) Edit(ctx context.Context, rawID string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first")
		return nil
	}

	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: edit <id>")
		return nil
	}

	current, err := a.client.GetPrompt(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintf(a.out, "Prompt %d not found\n", id)
			return nil
		}
		a.log.Error(ctx, "failed to fetch prompt", "id", id, "error", err)
		fmt.Fprintln(a.out, "Could not fetch the prompt, please try again later")
		return err
	}

	draft, err := a.readDraft(models.Draft{
		Title:     current.Title,
		Content:   current.Content,
		Category:  current.Category,
		IsPremium: current.IsPremium,
		Price:     current.Price,
	})
	if err != nil {
		return err
	}

	if err := draft.Validate(); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}

	if err := a.client.UpdatePrompt(ctx, id, draft); err != nil {
		fmt.Fprintln(a.out, serverOr(err, "Could not update the prompt, please try again later"))
		return err
	}

	a.cache.Merge(id, draft)
	fmt.Fprintf(a.out, "Updated prompt #%d\n", id)
	return nil
}

// Delete removes an owned prompt and drops it from the cache without a
// refetch.
func (a *App) Delete(ctx context.Context, rawID string) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first")
		return nil
	}

	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return nil
	}

	if err := a.client.DeletePrompt(ctx, id); err != nil {
		fmt.Fprintln(a.out, serverOr(err, "Could not delete the prompt, please try again later"))
		return err
	}

	a.cache.Remove(id)
	fmt.Fprintf(a.out, "Deleted prompt #%d\n", id)
	return nil
}

// readDraft walks the user through the prompt form. Non-empty values in
// base are shown as defaults and kept on blank input, which makes the same
// form serve both create and edit.
func (a *App) readDraft(base models.Draft) (models.Draft, error) {
	draft := base

	title, err := getSimpleText(a.reader, labelWithDefault("Enter title", base.Title), os.Stdout)
	if err != nil {
		return draft, err
	}
	if title != "" {
		draft.Title = title
	}

	content, err := getMultiline(a.reader, "Enter prompt content", os.Stdout)
	if err != nil {
		return draft, err
	}
	if content != "" {
		draft.Content = content
	}

	fmt.Fprintf(a.out, "Categories: %s\n", strings.Join(models.Categories, ", "))
	category, err := getSimpleText(a.reader, labelWithDefault("Enter category", base.Category), os.Stdout)
	if err != nil {
		return draft, err
	}
	if category != "" {
		draft.Category = category
	}

	premium, err := getSimpleText(a.reader, "Premium prompt? (y/n)", os.Stdout)
	if err != nil {
		return draft, err
	}
	if premium != "" {
		draft.IsPremium = strings.EqualFold(premium, "y") || strings.EqualFold(premium, "yes")
	}

	if draft.IsPremium {
		raw, err := getSimpleText(a.reader, labelWithDefault("Enter price (USD)", formatPrice(base.Price)), os.Stdout)
		if err != nil {
			return draft, err
		}
		if raw != "" {
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				fmt.Fprintf(a.out, "Invalid price %q\n", raw)
				return draft, nil
			}
			draft.Price = price
		}
	} else {
		draft.Price = 0
	}

	return draft, nil
}

func labelWithDefault(label, current string) string {
	if current == "" {
		return label
	}
	return fmt.Sprintf("%s [%s]", label, current)
}

func formatPrice(p float64) string {
	if p == 0 {
		return ""
	}
	return strconv.FormatFloat(p, 'f', 2, 64)
}
