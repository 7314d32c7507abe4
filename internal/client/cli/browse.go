package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vpetrenko/promptmart/internal/client/api"
	"github.com/vpetrenko/promptmart/internal/client/catalog"
	"github.com/vpetrenko/promptmart/internal/client/models"
	"github.com/vpetrenko/promptmart/internal/common"
)

// ensureCatalog fetches the catalog on first use; later calls are served
// from the cache until the user runs reload.
func (a *App) ensureCatalog(ctx context.Context) error {
	if a.cache.Loaded() {
		return nil
	}
	prompts, err := a.client.ListPrompts(ctx)
	if err != nil {
		return err
	}
	a.cache.SetAll(prompts)
	return nil
}

// List renders the catalog under the current category, search, and sort
// filters.
func (a *App) List(ctx context.Context) error {
	if err := a.ensureCatalog(ctx); err != nil {
		a.log.Error(ctx, "failed to load catalog", "error", err)
		fmt.Fprintln(a.out, "Could not load the catalog, please try again later")
		return err
	}

	view := catalog.DeriveView(a.cache.Snapshot(), a.selectedCategory, a.searchTerm, a.sortOption)
	fmt.Fprintf(a.out, "Filters: category=%s search=%q sort=%s\n", a.selectedCategory, a.searchTerm, a.sortOption)
	if len(view) == 0 {
		fmt.Fprintln(a.out, "No prompts match the current filters")
		return nil
	}
	for i := range view {
		a.printSummary(&view[i])
	}
	return nil
}

// SetCategory updates the category filter. "All" (the default) disables it.
func (a *App) SetCategory(ctx context.Context, name string) error {
	if name != models.CategoryAll && !models.ValidCategory(name) {
		fmt.Fprintf(a.out, "Unknown category %q. Known: %s\n", name, strings.Join(models.Categories, ", "))
		return nil
	}
	a.selectedCategory = name
	return a.List(ctx)
}

// Search updates the search filter; an empty term clears it.
func (a *App) Search(ctx context.Context, term string) error {
	a.searchTerm = term
	return a.List(ctx)
}

// SetSort updates the sort order.
func (a *App) SetSort(ctx context.Context, option string) error {
	if !catalog.ValidSortOption(option) {
		names := make([]string, len(catalog.SortOptions))
		for i, opt := range catalog.SortOptions {
			names[i] = string(opt)
		}
		fmt.Fprintf(a.out, "Unknown sort option %q. Known: %s\n", option, strings.Join(names, ", "))
		return nil
	}
	a.sortOption = catalog.SortOption(option)
	return a.List(ctx)
}

// ClearFilters resets category, search, and sort to their defaults.
func (a *App) ClearFilters(ctx context.Context) error {
	a.selectedCategory = models.CategoryAll
	a.searchTerm = ""
	a.sortOption = catalog.SortLatest
	return a.List(ctx)
}

// Reload refetches the catalog from the server, replacing the cache.
func (a *App) Reload(ctx context.Context) error {
	prompts, err := a.client.ListPrompts(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to reload catalog", "error", err)
		fmt.Fprintln(a.out, "Could not load the catalog, please try again later")
		return err
	}
	a.cache.SetAll(prompts)
	fmt.Fprintf(a.out, "Loaded %d prompts\n", len(prompts))
	return nil
}

// Show displays a single prompt, fetching it when the cache misses.
func (a *App) Show(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return nil
	}

	prompt, ok := a.cache.Get(id)
	if !ok {
		fetched, err := a.client.GetPrompt(ctx, id)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				fmt.Fprintf(a.out, "Prompt %d not found\n", id)
				return nil
			}
			a.log.Error(ctx, "failed to fetch prompt", "id", id, "error", err)
			fmt.Fprintln(a.out, "Could not fetch the prompt, please try again later")
			return err
		}
		prompt = *fetched
	}

	a.printFull(&prompt)
	return nil
}

func (a *App) printSummary(p *models.Prompt) {
	marker := ""
	if p.IsPremium {
		marker = fmt.Sprintf(" [premium $%.2f]", p.Price)
	}
	fmt.Fprintf(a.out, "#%d %s%s — %s by %s (♥%d ↓%d ★%.1f)\n",
		p.ID, p.Title, marker, p.Category, p.Username, p.Likes, p.Downloads, p.Rating)
}

func (a *App) printFull(p *models.Prompt) {
	a.printSummary(p)
	if len(p.Tags) > 0 {
		fmt.Fprintf(a.out, "Tags: %s\n", strings.Join(p.Tags, ", "))
	}
	if p.CreatedAt != nil {
		fmt.Fprintf(a.out, "Created: %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	}
	if p.ContentHidden() {
		fmt.Fprintf(a.out, "Premium content. Run 'buy %d' to purchase.\n", p.ID)
		return
	}
	fmt.Fprintln(a.out, p.Content)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// serverOr returns the backend-provided message from err, or fallback when
// the error carries none.
func serverOr(err error, fallback string) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}
