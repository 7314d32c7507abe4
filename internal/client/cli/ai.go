package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/vpetrenko/promptmart/internal/client/preview"
	"github.com/vpetrenko/promptmart/internal/common"
)

// writeFile is a test seam over os.WriteFile for image previews.
var writeFile = os.WriteFile

// Preview runs a catalog prompt through the AI preview service. Premium
// prompts whose content the backend withheld point at purchase; readable
// premium prompts still require a paid plan for AI preview.
func (a *App) Preview(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: preview <id>")
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

	if prompt.ContentHidden() {
		fmt.Fprintf(a.out, "Premium content. Run 'buy %d' to unlock previews.\n", id)
		return nil
	}

	// Premium previews are gated on the plan even when the content itself
	// is readable (owner, past purchase).
	if prompt.IsPremium && !a.session.User().OnPaidPlan() {
		fmt.Fprintln(a.out, "AI preview of premium prompts requires a paid plan. Visit the pricing page to upgrade.")
		return common.ErrPremiumRequired
	}

	extra, err := getSimpleText(a.reader, "Extra context (blank for none)", os.Stdout)
	if err != nil {
		return err
	}

	part, err := a.preview.GeneratePreview(ctx, preview.Request{Prompt: prompt.Content, Context: extra})
	if err != nil {
		if errors.Is(err, preview.ErrNoAPIKey) {
			fmt.Fprintln(a.out, "No AI API key configured. Run 'setkey' first.")
			return nil
		}
		a.log.Error(ctx, "preview failed", "id", id, "error", err)
		fmt.Fprintln(a.out, "Preview failed, please try again later")
		return err
	}

	switch p := part.(type) {
	case preview.Text:
		fmt.Fprintln(a.out, "--- preview ---")
		fmt.Fprintln(a.out, string(p))
	case preview.Image:
		name := fmt.Sprintf("preview-%d.png", id)
		if err := writeFile(name, p, 0o644); err != nil {
			fmt.Fprintln(a.out, "Could not save the generated image")
			return err
		}
		fmt.Fprintf(a.out, "Image preview saved to %s\n", name)
	}
	return nil
}

// SuggestTags asks the AI service for discovery tags for entered prompt
// text. Failures degrade to "no suggestions".
func (a *App) SuggestTags(ctx context.Context) error {
	content, err := getMultiline(a.reader, "Enter prompt text", os.Stdout)
	if err != nil {
		return err
	}
	if content == "" {
		return nil
	}

	if !a.preview.HasKey() {
		fmt.Fprintln(a.out, "No AI API key configured. Run 'setkey' first.")
		return nil
	}

	tags := a.preview.GenerateTags(ctx, content)
	if len(tags) == 0 {
		fmt.Fprintln(a.out, "No suggestions")
		return nil
	}
	fmt.Fprintf(a.out, "Suggested tags: %s\n", strings.Join(tags, ", "))
	return nil
}

// RateQuality scores entered prompt text from 1 to 5 with brief feedback.
func (a *App) RateQuality(ctx context.Context) error {
	content, err := getMultiline(a.reader, "Enter prompt text", os.Stdout)
	if err != nil {
		return err
	}
	if content == "" {
		return nil
	}

	q := a.preview.RateQuality(ctx, content)
	if q.Rating == 0 {
		fmt.Fprintln(a.out, q.Feedback)
		return nil
	}
	fmt.Fprintf(a.out, "Rating: %s (%d/5)\n", strings.Repeat("★", q.Rating), q.Rating)
	fmt.Fprintf(a.out, "Feedback: %s\n", q.Feedback)
	return nil
}

// SetPreviewKey installs and persists the AI API key.
func (a *App) SetPreviewKey(ctx context.Context) error {
	key, err := getSimpleText(a.reader, "Enter AI API key", os.Stdout)
	if err != nil {
		return err
	}
	if key == "" {
		fmt.Fprintln(a.out, "Key unchanged")
		return nil
	}

	if err := a.preview.SetKey(ctx, key); err != nil {
		a.log.Error(ctx, "failed to persist preview key", "error", err)
		fmt.Fprintln(a.out, "Key set for this session, but could not be persisted")
		return err
	}
	fmt.Fprintln(a.out, "Key saved")
	return nil
}
