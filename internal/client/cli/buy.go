package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/vpetrenko/promptmart/internal/client/models"
	"github.com/vpetrenko/promptmart/internal/common"
)

// Buy starts a hosted-checkout purchase for a premium prompt and prints
// the checkout URL for the user to open.
func (a *App) Buy(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: buy <id>")
		return nil
	}

	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first")
		return nil
	}

	prompt, ok := a.cache.Get(id)
	if !ok {
		fetched, err := a.client.GetPrompt(ctx, id)
		if err != nil {
			fmt.Fprintln(a.out, serverOr(err, "Could not fetch the prompt, please try again later"))
			return err
		}
		prompt = *fetched
	}

	if !prompt.IsPremium {
		fmt.Fprintf(a.out, "Prompt #%d is free, no purchase needed\n", id)
		return nil
	}

	sess, err := a.checkout.Initiate(ctx, prompt)
	if err != nil {
		if errors.Is(err, common.ErrLoginRequired) {
			fmt.Fprintln(a.out, "Please log in first")
			return nil
		}
		fmt.Fprintln(a.out, serverOr(err, "Could not start checkout, please try again later"))
		return err
	}

	fmt.Fprintf(a.out, "Checkout session %s created.\n", sess.ID)
	fmt.Fprintf(a.out, "Open this URL to complete the purchase:\n%s\n", sess.URL)
	return nil
}

// Sales prints the seller's sales ledger with dashboard aggregates.
func (a *App) Sales(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first")
		return nil
	}

	sales, err := a.client.Sales(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to fetch sales", "error", err)
		fmt.Fprintln(a.out, serverOr(err, "Could not fetch sales, please try again later"))
		return err
	}

	if len(sales) == 0 {
		fmt.Fprintln(a.out, "No sales yet")
		return nil
	}

	for _, sale := range sales {
		fmt.Fprintf(a.out, "%s bought %q for $%.2f on %s\n", sale.Buyer, sale.Prompt, sale.Price, sale.Date)
	}

	summary := models.Summarize(sales)
	fmt.Fprintf(a.out, "Total: %d sold to %d buyers, $%.2f earned\n",
		summary.TotalSold, summary.UniqueBuyers, summary.TotalEarned)
	return nil
}
