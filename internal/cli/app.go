package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/evzhukov/lifevault/internal/config"
	"github.com/evzhukov/lifevault/internal/datamode"
	"github.com/evzhukov/lifevault/internal/logging"
	"github.com/evzhukov/lifevault/internal/remote"
	"github.com/evzhukov/lifevault/internal/services"
	"github.com/evzhukov/lifevault/internal/storage"
)

// App holds the wired services behind the interactive shell.
type App struct {
	config    *config.Config
	repos     *storage.Repositories
	profiles  *services.ProfileService
	records   *services.RecordService
	documents *services.DocumentService
	sync      *services.SyncService
	mode      *datamode.Resolver
	out       io.Writer
	log       logging.Logger
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	repos, err := storage.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	mode := datamode.NewResolver(repos.Metadata, cfg.ForceLocalOnly, log)
	token := func(ctx context.Context) (string, error) {
		v, err := repos.Metadata.Get(ctx, datamode.KeyAccessToken)
		if err != nil {
			return "", err
		}
		return string(v), nil
	}
	client := remote.NewHTTPClient(cfg.ServerEndpointURL, cfg.RequestTimeout, token, log)

	recs := services.NewRecordService(repos.Records, log)
	return &App{
		config:    cfg,
		repos:     repos,
		profiles:  services.NewProfileService(repos.Profiles, log),
		records:   recs,
		documents: services.NewDocumentService(repos.Documents, log),
		sync:      services.NewSyncService(recs, repos.Records, client, mode, log),
		mode:      mode,
		out:       os.Stdout,
		log:       log,
	}, nil
}

// Run drives the REPL until EOF or an exit command, then closes the store.
func (a *App) Run(ctx context.Context) error {
	defer a.repos.Close()
	sc := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, sc)
	return nil
}

// status renders the prompt segment showing the resolved data mode.
func (a *App) status() string {
	return a.mode.Peek().String()
}
