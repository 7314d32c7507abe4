package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vpetrenko/promptmart/internal/client/api"
	"github.com/vpetrenko/promptmart/internal/client/catalog"
	"github.com/vpetrenko/promptmart/internal/client/checkout"
	"github.com/vpetrenko/promptmart/internal/client/models"
	"github.com/vpetrenko/promptmart/internal/client/preview"
	"github.com/vpetrenko/promptmart/internal/client/session"
	"github.com/vpetrenko/promptmart/internal/common"
	"github.com/vpetrenko/promptmart/internal/logging"
)

type memState struct {
	values map[string][]byte
}

func newMemState() *memState { return &memState{values: make(map[string][]byte)} }

func (s *memState) Get(_ context.Context, key string) ([]byte, error) { return s.values[key], nil }
func (s *memState) Set(_ context.Context, key string, value []byte) error {
	s.values[key] = value
	return nil
}
func (s *memState) Delete(_ context.Context, key string) error {
	delete(s.values, key)
	return nil
}
func (s *memState) Clear(_ context.Context) error {
	s.values = make(map[string][]byte)
	return nil
}

type fakeClient struct {
	prompts   []models.Prompt
	listCalls int
	listErr   error

	got      *models.Prompt
	getErr   error
	getCalls int

	createID     int64
	createErr    error
	createCalled bool
	gotDraft     models.Draft

	updateErr error
	updatedID int64

	deleteErr error
	deletedID int64

	sales    []models.Sale
	salesErr error

	sessionID   string
	checkoutErr error

	user     *models.User
	loginErr error
}

func (f *fakeClient) Login(_ context.Context, username, password string) (string, *models.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return "tok", f.user, nil
}
func (f *fakeClient) Register(_ context.Context, username, email, password string) error { return nil }
func (f *fakeClient) Me(_ context.Context, token string) (*models.User, error)           { return f.user, nil }
func (f *fakeClient) ListPrompts(_ context.Context) ([]models.Prompt, error) {
	f.listCalls++
	return f.prompts, f.listErr
}
func (f *fakeClient) GetPrompt(_ context.Context, id int64) (*models.Prompt, error) {
	f.getCalls++
	return f.got, f.getErr
}
func (f *fakeClient) CreatePrompt(_ context.Context, draft models.Draft) (int64, error) {
	f.createCalled = true
	f.gotDraft = draft
	return f.createID, f.createErr
}
func (f *fakeClient) UpdatePrompt(_ context.Context, id int64, draft models.Draft) error {
	f.updatedID = id
	f.gotDraft = draft
	return f.updateErr
}
func (f *fakeClient) DeletePrompt(_ context.Context, id int64) error {
	f.deletedID = id
	return f.deleteErr
}
func (f *fakeClient) Sales(_ context.Context) ([]models.Sale, error) { return f.sales, f.salesErr }
func (f *fakeClient) CreateCheckoutSession(_ context.Context, req api.CheckoutRequest) (string, error) {
	return f.sessionID, f.checkoutErr
}
func (f *fakeClient) SetToken(token string) {}
func (f *fakeClient) ClearToken()           {}

func newTestApp(client api.Client) (*App, *bytes.Buffer) {
	log := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	state := newMemState()
	sess := session.NewStore(client, state, log)
	out := &bytes.Buffer{}
	return &App{
		client:   client,
		session:  sess,
		cache:    catalog.NewCache(),
		preview:  preview.NewGateway("http://unused", "m", "", time.Second, state, log),
		checkout: checkout.NewFlow(client, sess, "https://pay/", "s", "c", log),
		log:      log,
		reader:   bufio.NewReader(strings.NewReader("")),
		out:      out,

		selectedCategory: models.CategoryAll,
		sortOption:       catalog.SortLatest,
	}, out
}

func login(t *testing.T, a *App) {
	t.Helper()
	if err := a.session.Login(context.Background(), "vika", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

// stubInputs replaces the interactive input seams. Simple-text prompts are
// answered from the answers queue in order; the multiline and password
// prompts always return the given values.
func stubInputs(t *testing.T, answers []string, multiline, password string) {
	t.Helper()
	origST, origML, origGP := getSimpleText, getMultiline, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", nil
		}
		a := answers[i]
		i++
		return a, nil
	}
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		return multiline, nil
	}
	getPassword = func(_ io.Writer) (string, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getMultiline = origML
		getPassword = origGP
	})
}

func samplePrompts() []models.Prompt {
	return []models.Prompt{
		{ID: 1, Title: "Email writer", Category: "Business", Content: "Write an email", Username: "ann", Likes: 5},
		{ID: 2, Title: "Logo ideas", Category: "Design", Content: "Draw a logo", Username: "bob", IsPremium: true, Price: 4.99},
	}
}

func TestList_LazyFetch(t *testing.T) {
	client := &fakeClient{prompts: samplePrompts()}
	a, out := newTestApp(client)

	if err := a.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if err := a.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}

	if client.listCalls != 1 {
		t.Fatalf("catalog fetched %d times, want 1", client.listCalls)
	}
	if !strings.Contains(out.String(), "Email writer") || !strings.Contains(out.String(), "Logo ideas") {
		t.Fatalf("list output missing prompts:\n%s", out.String())
	}
}

func TestSetCategory_FiltersList(t *testing.T) {
	client := &fakeClient{prompts: samplePrompts()}
	a, out := newTestApp(client)

	if err := a.SetCategory(context.Background(), "Design"); err != nil {
		t.Fatalf("SetCategory: %v", err)
	}

	s := out.String()
	if strings.Contains(s, "Email writer") || !strings.Contains(s, "Logo ideas") {
		t.Fatalf("category filter not applied:\n%s", s)
	}
}

func TestSetCategory_Unknown(t *testing.T) {
	client := &fakeClient{prompts: samplePrompts()}
	a, out := newTestApp(client)

	if err := a.SetCategory(context.Background(), "Cooking"); err != nil {
		t.Fatalf("SetCategory: %v", err)
	}
	if a.selectedCategory != models.CategoryAll {
		t.Fatalf("filter changed to %q", a.selectedCategory)
	}
	if !strings.Contains(out.String(), "Unknown category") {
		t.Fatalf("missing message:\n%s", out.String())
	}
}

func TestShow_PremiumHidesContent(t *testing.T) {
	prompts := samplePrompts()
	prompts[1].Content = ""
	client := &fakeClient{}
	a, out := newTestApp(client)
	a.cache.SetAll(prompts)

	if err := a.Show(context.Background(), "2"); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if !strings.Contains(out.String(), "buy 2") {
		t.Fatalf("expected purchase hint:\n%s", out.String())
	}
}

func TestAdd_ValidationStopsBeforeNetwork(t *testing.T) {
	client := &fakeClient{user: &models.User{ID: 1, Username: "vika"}}
	a, out := newTestApp(client)
	login(t, a)
	stubInputs(t, []string{"", "Business", "n"}, "", "")

	if err := a.Add(context.Background()); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if client.createCalled {
		t.Fatal("invalid draft reached the server")
	}
	if !strings.Contains(out.String(), "title and content are required") {
		t.Fatalf("missing validation message:\n%s", out.String())
	}
}

func TestAdd_Success(t *testing.T) {
	created := models.Prompt{ID: 7, Title: "Story teller", Category: "Creative", Content: "Tell a story", Username: "vika"}
	client := &fakeClient{
		user:     &models.User{ID: 1, Username: "vika"},
		createID: 7,
		got:      &created,
	}
	a, out := newTestApp(client)
	login(t, a)
	stubInputs(t, []string{"Story teller", "Creative", "n"}, "Tell a story", "")

	if err := a.Add(context.Background()); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if client.gotDraft.Title != "Story teller" || client.gotDraft.IsPremium {
		t.Fatalf("draft mismatch: %+v", client.gotDraft)
	}
	if _, ok := a.cache.Get(7); !ok {
		t.Fatal("created prompt not cached")
	}
	if !strings.Contains(out.String(), "Created prompt #7") {
		t.Fatalf("missing confirmation:\n%s", out.String())
	}
}

func TestAdd_FreeTierLimit(t *testing.T) {
	limitMsg := "Free users can only create 5 prompts. Upgrade to Pro for unlimited prompts."
	client := &fakeClient{
		user:      &models.User{ID: 1, Username: "vika"},
		createErr: &api.Error{Status: http.StatusForbidden, Message: limitMsg},
	}
	a, out := newTestApp(client)
	login(t, a)
	stubInputs(t, []string{"Title", "Business", "n"}, "Body", "")

	if err := a.Add(context.Background()); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !strings.Contains(out.String(), limitMsg) {
		t.Fatalf("expected backend wording:\n%s", out.String())
	}
}

func TestEdit_MergesCache(t *testing.T) {
	prompts := samplePrompts()
	client := &fakeClient{
		user: &models.User{ID: 1, Username: "vika"},
		got:  &prompts[0],
	}
	a, _ := newTestApp(client)
	a.cache.SetAll(prompts)
	login(t, a)
	// Blank title keeps the old one; new content replaces the body.
	stubInputs(t, []string{"", "", "n"}, "Write a better email", "")

	if err := a.Edit(context.Background(), "1"); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	if client.updatedID != 1 {
		t.Fatalf("updated id %d", client.updatedID)
	}
	got, _ := a.cache.Get(1)
	if got.Title != "Email writer" || got.Content != "Write a better email" {
		t.Fatalf("cache not merged: %+v", got)
	}
}

func TestDelete_RemovesFromCache(t *testing.T) {
	client := &fakeClient{user: &models.User{ID: 1, Username: "vika"}}
	a, _ := newTestApp(client)
	a.cache.SetAll(samplePrompts())
	login(t, a)

	if err := a.Delete(context.Background(), "2"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if client.deletedID != 2 {
		t.Fatalf("deleted id %d", client.deletedID)
	}
	if _, ok := a.cache.Get(2); ok {
		t.Fatal("prompt still cached after delete")
	}
}

func TestBuy_RequiresLogin(t *testing.T) {
	client := &fakeClient{prompts: samplePrompts(), sessionID: "cs_1"}
	a, out := newTestApp(client)
	a.cache.SetAll(samplePrompts())

	if err := a.Buy(context.Background(), "2"); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if !strings.Contains(out.String(), "Please log in first") {
		t.Fatalf("missing login gate:\n%s", out.String())
	}
}

func TestBuy_FreePrompt(t *testing.T) {
	client := &fakeClient{user: &models.User{ID: 1}}
	a, out := newTestApp(client)
	a.cache.SetAll(samplePrompts())
	login(t, a)

	if err := a.Buy(context.Background(), "1"); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if !strings.Contains(out.String(), "free, no purchase needed") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestBuy_PrintsCheckoutURL(t *testing.T) {
	client := &fakeClient{user: &models.User{ID: 1, Username: "vika"}, sessionID: "cs_42"}
	a, out := newTestApp(client)
	a.cache.SetAll(samplePrompts())
	login(t, a)

	if err := a.Buy(context.Background(), "2"); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if !strings.Contains(out.String(), "https://pay/cs_42") {
		t.Fatalf("missing checkout URL:\n%s", out.String())
	}
}

func TestSales_Summary(t *testing.T) {
	client := &fakeClient{
		user: &models.User{ID: 1, Username: "vika"},
		sales: []models.Sale{
			{Buyer: "ann", Prompt: "Logo ideas", Price: 4.99, Date: "2026-08-01"},
			{Buyer: "ann", Prompt: "Email writer", Price: 2.00, Date: "2026-08-02"},
			{Buyer: "bob", Prompt: "Logo ideas", Price: 4.99, Date: "2026-08-03"},
		},
	}
	a, out := newTestApp(client)
	login(t, a)

	if err := a.Sales(context.Background()); err != nil {
		t.Fatalf("Sales: %v", err)
	}
	if !strings.Contains(out.String(), "3 sold to 2 buyers, $11.98 earned") {
		t.Fatalf("summary mismatch:\n%s", out.String())
	}
}

func TestLogin_Command(t *testing.T) {
	client := &fakeClient{user: &models.User{ID: 1, Username: "vika"}}
	a, out := newTestApp(client)
	stubInputs(t, []string{"vika"}, "", "pw")

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !a.isLoggedIn() {
		t.Fatal("not logged in after Login")
	}
	if !strings.Contains(out.String(), "Logged in as vika") {
		t.Fatalf("missing confirmation:\n%s", out.String())
	}
}

func TestPreview_NoKeyHint(t *testing.T) {
	client := &fakeClient{}
	a, out := newTestApp(client)
	a.cache.SetAll(samplePrompts())
	stubInputs(t, []string{""}, "", "")

	if err := a.Preview(context.Background(), "1"); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !strings.Contains(out.String(), "setkey") {
		t.Fatalf("missing key hint:\n%s", out.String())
	}
}

func TestBuy_NoFetchWhenLoggedOut(t *testing.T) {
	client := &fakeClient{got: &models.Prompt{ID: 2, IsPremium: true, Price: 4.99}}
	a, out := newTestApp(client)
	// Cache left empty: a fetch would be needed to resolve the prompt.

	if err := a.Buy(context.Background(), "2"); err != nil {
		t.Fatalf("Buy: %v", err)
	}
	if client.getCalls != 0 {
		t.Fatalf("GetPrompt called %d times before login", client.getCalls)
	}
	if !strings.Contains(out.String(), "Please log in first") {
		t.Fatalf("missing login gate:\n%s", out.String())
	}
}

func TestPreview_PremiumNeedsPaidPlan(t *testing.T) {
	client := &fakeClient{user: &models.User{ID: 1, Username: "vika", Plan: models.PlanFree}}
	a, out := newTestApp(client)
	a.cache.SetAll(samplePrompts())
	login(t, a)

	// Premium prompt #2 has readable content here (as for an owner or a
	// past purchaser), so only the plan gate stands between the free user
	// and the AI service.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("AI endpoint reached despite plan gate")
	}))
	t.Cleanup(srv.Close)
	a.preview = preview.NewGateway(srv.URL, "m", "key", time.Second, newMemState(), a.log)
	stubInputs(t, []string{""}, "", "")

	err := a.Preview(context.Background(), "2")
	if !errors.Is(err, common.ErrPremiumRequired) {
		t.Fatalf("err = %v, want ErrPremiumRequired", err)
	}
	if !strings.Contains(out.String(), "paid plan") {
		t.Fatalf("missing pricing pointer:\n%s", out.String())
	}
}

func TestPreview_PaidPlanPasses(t *testing.T) {
	client := &fakeClient{user: &models.User{ID: 1, Username: "vika", Plan: models.PlanPro}}
	a, out := newTestApp(client)
	a.cache.SetAll(samplePrompts())
	login(t, a)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"A minimalist logo."}]}}]}`))
	}))
	t.Cleanup(srv.Close)
	a.preview = preview.NewGateway(srv.URL, "m", "key", time.Second, newMemState(), a.log)
	stubInputs(t, []string{""}, "", "")

	if err := a.Preview(context.Background(), "2"); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !strings.Contains(out.String(), "A minimalist logo.") {
		t.Fatalf("missing preview output:\n%s", out.String())
	}
}

func TestPreview_PremiumLocked(t *testing.T) {
	prompts := samplePrompts()
	prompts[1].Content = ""
	client := &fakeClient{}
	a, out := newTestApp(client)
	a.cache.SetAll(prompts)

	if err := a.Preview(context.Background(), "2"); err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !strings.Contains(out.String(), "buy 2") {
		t.Fatalf("missing purchase hint:\n%s", out.String())
	}
}
