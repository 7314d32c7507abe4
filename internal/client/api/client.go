// Package api is the client contract for the marketplace REST backend:
// auth, prompt catalog CRUD, the sales ledger, and checkout sessions.
package api

import (
	"context"

	"github.com/vpetrenko/promptmart/internal/client/models"
)

// CheckoutRequest is the body of POST /create-checkout-session.
type CheckoutRequest struct {
	PromptID    int64   `json:"prompt_id"`
	PromptTitle string  `json:"prompt_title"`
	Price       float64 `json:"price"`
	UserID      int64   `json:"user_id"`
	SuccessURL  string  `json:"success_url"`
	CancelURL   string  `json:"cancel_url"`
}

// Client defines the remote operations the promptmart CLI depends on.
//
// Authenticated calls send the token installed via SetToken as a bearer
// header. Me takes an explicit token because the rehydration probe runs
// before any credential has been promoted to the client.
//
// All methods must honor context cancellation/timeouts.
type Client interface {
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	Register(ctx context.Context, username, email, password string) error
	Me(ctx context.Context, token string) (*models.User, error)

	ListPrompts(ctx context.Context) ([]models.Prompt, error)
	GetPrompt(ctx context.Context, id int64) (*models.Prompt, error)
	CreatePrompt(ctx context.Context, draft models.Draft) (int64, error)
	UpdatePrompt(ctx context.Context, id int64, draft models.Draft) error
	DeletePrompt(ctx context.Context, id int64) error

	Sales(ctx context.Context) ([]models.Sale, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error)

	SetToken(token string)
	ClearToken()
}
