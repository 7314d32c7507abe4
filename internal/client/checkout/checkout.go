// Package checkout drives the purchase flow for priced prompts through the
// backend's hosted checkout integration.
package checkout

import (
	"context"
	"fmt"

	"github.com/vpetrenko/promptmart/internal/client/api"
	"github.com/vpetrenko/promptmart/internal/client/models"
	"github.com/vpetrenko/promptmart/internal/common"
	"github.com/vpetrenko/promptmart/internal/logging"
)

// authState is the slice of session state the flow needs; satisfied by
// *session.Store.
type authState interface {
	IsAuthenticated() bool
	User() *models.User
}

// Session is a created checkout session ready to hand to the user.
type Session struct {
	ID  string
	URL string
}

type Flow struct {
	client     api.Client
	session    authState
	baseURL    string
	successURL string
	cancelURL  string
	log        logging.Logger
}

func NewFlow(client api.Client, session authState, baseURL, successURL, cancelURL string, log logging.Logger) *Flow {
	return &Flow{
		client:     client,
		session:    session,
		baseURL:    baseURL,
		successURL: successURL,
		cancelURL:  cancelURL,
		log:        log,
	}
}

// Initiate creates a checkout session for the prompt. The login gate runs
// before any network call so an anonymous user gets an immediate
// common.ErrLoginRequired instead of a server round-trip.
func (f *Flow) Initiate(ctx context.Context, prompt models.Prompt) (*Session, error) {
	if !f.session.IsAuthenticated() {
		return nil, common.ErrLoginRequired
	}
	user := f.session.User()
	if user == nil {
		return nil, common.ErrLoginRequired
	}

	id, err := f.client.CreateCheckoutSession(ctx, api.CheckoutRequest{
		PromptID:    prompt.ID,
		PromptTitle: prompt.Title,
		Price:       prompt.Price,
		UserID:      user.ID,
		SuccessURL:  f.successURL,
		CancelURL:   f.cancelURL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}

	f.log.Info(ctx, "checkout session created", "prompt_id", prompt.ID, "session_id", id)
	return &Session{ID: id, URL: f.baseURL + id}, nil
}
