package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/catalog/tmdb"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/identity/firebase"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/nav"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// runner owns configuration and lazily built services for every command
type runner struct {
	cfg    *config.Config
	logger *slog.Logger

	catalog *tmdb.Client
	store   *store.SessionStore
	session *service.SessionService
}

// setup loads configuration and the logger. Services are built on first use.
func (r *runner) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return ctx, fmt.Errorf("failed to load config: %w", err)
	}
	r.cfg = cfg

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)
	r.logger = logger

	r.logger.Info("starting marquee", "version", Version, "command", cmd.Args().First())
	return ctx, nil
}

func (r *runner) teardown(ctx context.Context, cmd *cli.Command) error {
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			r.logger.Warn("failed to close session store", "error", err)
		}
	}
	return nil
}

func (r *runner) catalogClient() *tmdb.Client {
	if r.catalog == nil {
		r.catalog = tmdb.NewClient(tmdb.Options{
			BaseURL:     r.cfg.Catalog.BaseURL,
			APIKey:      r.cfg.Catalog.APIKey,
			AccessToken: r.cfg.Catalog.AccessToken,
			Timeout:     r.cfg.Catalog.Timeout,
		}, r.logger)
	}
	return r.catalog
}

func (r *runner) sessionService() (*service.SessionService, error) {
	if r.session != nil {
		return r.session, nil
	}
	st, err := store.NewSessionStore(r.cfg.Session.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	r.store = st

	provider := firebase.NewClient(r.cfg.Identity.BaseURL, r.cfg.Identity.APIKey, r.cfg.Identity.Timeout, r.logger)
	r.session = service.NewSessionService(provider, st, r.logger)
	return r.session, nil
}

// signedIn restores the saved session and fails when there is none
func (r *runner) signedIn(ctx context.Context) (*service.SessionService, error) {
	session, err := r.sessionService()
	if err != nil {
		return nil, err
	}
	session.Restore(ctx)
	if session.State() != domain.AuthAuthenticated {
		return nil, fmt.Errorf("%w: run `marquee login` first", domain.ErrNotSignedIn)
	}
	return session, nil
}

func (r *runner) requireIdentity() error {
	if r.cfg.Identity.APIKey == "" {
		return fmt.Errorf("missing credentials: identity.api_key (set it in config.yaml, .env or %s_IDENTITY_API_KEY)", config.EnvPrefix)
	}
	return nil
}

// TUI starts the interactive browser
func (r *runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.cfg.Validate(); err != nil {
		return err
	}

	session, err := r.sessionService()
	if err != nil {
		return err
	}

	start := nav.Parse(r.cfg.UI.DefaultView)
	if start.Page == nav.PageNotFound {
		r.logger.Warn("invalid default view, using home", "default_view", r.cfg.UI.DefaultView)
		start = nav.Home
	}

	model := tui.NewModel(
		service.NewCatalogService(r.catalogClient(), r.logger),
		session,
		tui.Options{
			StartRoute:   start,
			ImageBaseURL: r.cfg.Catalog.ImageBaseURL,
			ImageSize:    r.cfg.UI.ImageSize,
			Logger:       r.logger,
		},
	)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())

	r.logger.Info("starting TUI", "start", start.Path())

	if _, err := p.Run(); err != nil {
		r.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	r.logger.Info("shutting down")
	return nil
}

// Login signs in and saves the session for later runs
func (r *runner) Login(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireIdentity(); err != nil {
		return err
	}
	session, err := r.sessionService()
	if err != nil {
		return err
	}

	in := bufio.NewReader(os.Stdin)
	email := cmd.String("email")
	if email == "" {
		if email, err = prompt(in, "Email: "); err != nil {
			return err
		}
	}
	password, err := promptPassword(in, "Password: ")
	if err != nil {
		return err
	}

	identity, err := session.SignIn(ctx, service.LoginForm{Email: email, Password: password})
	if err != nil {
		return err
	}

	fmt.Println(styles.SuccessStyle.Render("✓ Signed in as " + identity.Name()))
	return nil
}

// Register creates an account. It does not sign in.
func (r *runner) Register(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireIdentity(); err != nil {
		return err
	}
	session, err := r.sessionService()
	if err != nil {
		return err
	}

	in := bufio.NewReader(os.Stdin)
	values := map[string]string{
		"first-name": cmd.String("first-name"),
		"last-name":  cmd.String("last-name"),
		"email":      cmd.String("email"),
	}
	labels := []struct{ flag, label string }{
		{"first-name", "First name: "},
		{"last-name", "Last name: "},
		{"email", "Email: "},
	}
	for _, l := range labels {
		if values[l.flag] != "" {
			continue
		}
		v, err := prompt(in, l.label)
		if err != nil {
			return err
		}
		values[l.flag] = v
	}
	password, err := promptPassword(in, "Password: ")
	if err != nil {
		return err
	}

	err = session.Register(ctx, service.RegisterForm{
		FirstName: values["first-name"],
		LastName:  values["last-name"],
		Email:     values["email"],
		Password:  password,
	})
	if err != nil {
		return err
	}

	fmt.Println(styles.SuccessStyle.Render("✓ " + service.MsgRegistered))
	return nil
}

// Logout clears the saved session
func (r *runner) Logout(ctx context.Context, cmd *cli.Command) error {
	session, err := r.sessionService()
	if err != nil {
		return err
	}
	session.Restore(ctx)
	if session.State() != domain.AuthAuthenticated {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := session.SignOut(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}

// Whoami prints the signed-in identity
func (r *runner) Whoami(ctx context.Context, cmd *cli.Command) error {
	session, err := r.sessionService()
	if err != nil {
		return err
	}
	session.Restore(ctx)

	identity := session.Identity()
	if session.State() != domain.AuthAuthenticated || identity == nil {
		fmt.Println("Not signed in.")
		return nil
	}

	fmt.Printf("%s %s\n", styles.LabelStyle.Render("User:   "), identity.Name())
	if identity.Email != "" && identity.Email != identity.Name() {
		fmt.Printf("%s %s\n", styles.LabelStyle.Render("Email:  "), identity.Email)
	}
	fmt.Printf("%s %s\n", styles.LabelStyle.Render("User ID:"), identity.UserID)
	if !identity.ExpiresAt.IsZero() {
		fmt.Printf("%s %s\n", styles.LabelStyle.Render("Expires:"), identity.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

// watchlist builds the watchlist service for a signed-in user
func (r *runner) watchlist(ctx context.Context) (*service.WatchlistService, error) {
	if _, err := r.signedIn(ctx); err != nil {
		return nil, err
	}
	svc := service.NewWatchlistService(r.catalogClient(), r.cfg.Catalog.AccountID, r.logger)
	if !svc.Configured() {
		return nil, fmt.Errorf("watchlist needs catalog credentials and catalog.account_id")
	}
	return svc, nil
}

// WatchlistList prints the watchlist for a kind
func (r *runner) WatchlistList(ctx context.Context, cmd *cli.Command) error {
	kind, err := parseKind(cmd.Args().First())
	if err != nil {
		return err
	}
	svc, err := r.watchlist(ctx)
	if err != nil {
		return err
	}

	items := svc.Get(ctx, kind)
	if len(items) == 0 {
		fmt.Println("Watchlist is empty.")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%8d  %s %s\n", item.ID, item.Title, styles.DimStyle.Render("("+item.Description()+")"))
	}
	return nil
}

// WatchlistAdd adds a title to the watchlist
func (r *runner) WatchlistAdd(ctx context.Context, cmd *cli.Command) error {
	return r.toggleWatchlist(ctx, cmd, true)
}

// WatchlistRemove removes a title from the watchlist
func (r *runner) WatchlistRemove(ctx context.Context, cmd *cli.Command) error {
	return r.toggleWatchlist(ctx, cmd, false)
}

func (r *runner) toggleWatchlist(ctx context.Context, cmd *cli.Command, add bool) error {
	kind, err := parseKind(cmd.Args().Get(0))
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(strings.TrimSpace(cmd.Args().Get(1)))
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q", cmd.Args().Get(1))
	}
	svc, err := r.watchlist(ctx)
	if err != nil {
		return err
	}

	if !svc.Toggle(ctx, kind, id, add) {
		return errors.New("watchlist update failed (see log for details)")
	}
	verb := "Removed"
	if add {
		verb = "Added"
	}
	fmt.Printf("%s %s %d. Watchlist now has %d entries.\n", verb, kind.Label(), id, len(svc.Cached(kind)))
	return nil
}

// ConfigInit writes a config file without credentials
func (r *runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if path == "" {
		path = filepath.Join(config.DefaultConfigPath(), "config.yaml")
	}
	if _, err := os.Stat(path); err == nil && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Printf("✓ Wrote %s\n", path)
	fmt.Printf("Set credentials with %s_CATALOG_ACCESS_TOKEN and %s_IDENTITY_API_KEY, or in a .env file.\n", config.EnvPrefix, config.EnvPrefix)
	return nil
}

// PrintVersion prints the build version
func (r *runner) PrintVersion(ctx context.Context, cmd *cli.Command) error {
	fmt.Printf("marquee %s\n", Version)
	return nil
}

func parseKind(s string) (domain.MediaKind, error) {
	kind, ok := domain.ParseMediaKind(s)
	if !ok || kind == domain.KindPerson {
		return "", fmt.Errorf("invalid kind %q (expected movie or tv)", s)
	}
	return kind, nil
}

func prompt(in *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a terminal
func promptPassword(in *bufio.Reader, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Print(label)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}
