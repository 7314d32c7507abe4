package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/vpetrenko/promptmart/internal/client/api"
	"github.com/vpetrenko/promptmart/internal/client/catalog"
	"github.com/vpetrenko/promptmart/internal/client/checkout"
	"github.com/vpetrenko/promptmart/internal/client/config"
	"github.com/vpetrenko/promptmart/internal/client/models"
	"github.com/vpetrenko/promptmart/internal/client/preview"
	"github.com/vpetrenko/promptmart/internal/client/session"
	"github.com/vpetrenko/promptmart/internal/client/storage"
	"github.com/vpetrenko/promptmart/internal/logging"
)

// App ties the client services together and carries the catalog filter
// state the browse commands operate on.
type App struct {
	config   *config.Config
	client   api.Client
	session  *session.Store
	cache    *catalog.Cache
	preview  *preview.Gateway
	checkout *checkout.Flow
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer

	selectedCategory string
	searchTerm       string
	sortOption       catalog.SortOption
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	state, err := storage.Open(ctx, c.StatePath)
	if err != nil {
		log.Error(ctx, "error initializing client state", "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	sess := session.NewStore(apiClient, state, log)

	gw := preview.NewGateway(c.PreviewEndpoint, c.PreviewModel, c.PreviewAPIKey, c.RequestTimeout, state, log)
	gw.LoadKey(ctx)

	flow := checkout.NewFlow(apiClient, sess, c.CheckoutBaseURL, c.SuccessURL, c.CancelURL, log)

	return &App{
		config:   c,
		client:   apiClient,
		session:  sess,
		cache:    catalog.NewCache(),
		preview:  gw,
		checkout: flow,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,

		selectedCategory: models.CategoryAll,
		sortOption:       catalog.SortLatest,
	}, nil
}

// Run restores any persisted session and hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	a.session.Rehydrate(ctx)
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}
