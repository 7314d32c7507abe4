package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vpetrenko/promptmart/internal/client/models"
	"github.com/vpetrenko/promptmart/internal/common"
)

// HTTPClient is the REST implementation of Client. It holds the current
// bearer token; the session store installs and clears it.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) ClearToken() {
	c.SetToken("")
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// errBody covers every message key the backend uses across its blueprints.
type errBody struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
	Err     string `json:"error"`
}

func (b errBody) text() string {
	switch {
	case b.Msg != "":
		return b.Msg
	case b.Message != "":
		return b.Message
	default:
		return b.Err
	}
}

// do issues a JSON request and decodes a 2xx response into out (when out
// is non-nil). A non-2xx status becomes an *Error carrying the server
// message; a transport failure wraps common.ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errBody
		_ = json.Unmarshal(data, &eb)
		return &Error{Status: resp.StatusCode, Message: eb.text()}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	req := map[string]string{"username": username, "password": password}

	var resp struct {
		AccessToken string       `json:"access_token"`
		User        *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", req, &resp); err != nil {
		return "", nil, err
	}
	if resp.AccessToken == "" || resp.User == nil {
		return "", nil, &Error{Status: http.StatusUnauthorized, Message: "Login failed"}
	}
	return resp.AccessToken, resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) error {
	req := map[string]string{"username": username, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/register", "", req, nil)
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ListPrompts(ctx context.Context) ([]models.Prompt, error) {
	var prompts []models.Prompt
	if err := c.do(ctx, http.MethodGet, "/prompts", c.currentToken(), nil, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

func (c *HTTPClient) GetPrompt(ctx context.Context, id int64) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/prompts/%d", id), c.currentToken(), nil, &prompt); err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (c *HTTPClient) CreatePrompt(ctx context.Context, draft models.Draft) (int64, error) {
	var resp struct {
		Message  string `json:"message"`
		PromptID int64  `json:"prompt_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/prompts", c.currentToken(), draft, &resp); err != nil {
		return 0, err
	}
	return resp.PromptID, nil
}

func (c *HTTPClient) UpdatePrompt(ctx context.Context, id int64, draft models.Draft) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/prompts/%d", id), c.currentToken(), draft, nil)
}

func (c *HTTPClient) DeletePrompt(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/prompts/%d", id), c.currentToken(), nil, nil)
}

func (c *HTTPClient) Sales(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	if err := c.do(ctx, http.MethodGet, "/api/sales", c.currentToken(), nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/create-checkout-session", c.currentToken(), req, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", &Error{Status: http.StatusBadGateway, Message: "checkout session missing id"}
	}
	return resp.ID, nil
}
