package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/nav"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/tui/components"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// ViewState is the render state of the mounted view
type ViewState int

const (
	ViewLoading ViewState = iota
	ViewPopulated
	ViewEmpty
)

// Layout
const (
	ChromeHeight = 4 // navbar (2) + footer (1) + spacing
	maxHistory   = 50
)

// Options configures the application model
type Options struct {
	StartRoute   nav.Route
	ImageBaseURL string
	ImageSize    string
	Logger       *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	Catalog  *service.CatalogService
	Session  *service.SessionService
	observer *SessionObserver
	logger   *slog.Logger
	opts     Options

	// Session as last observed
	AuthState domain.AuthState
	Identity  *domain.SessionIdentity

	// Routing
	Route   nav.Route
	history []nav.Route

	// Mounted view
	requests *requestTracker
	State    ViewState
	listPage int
	page     *domain.Page
	detail   *domain.MediaItem

	// UI Components
	List         components.MediaList
	SearchBar    components.SearchBar
	Palette      components.Palette
	LoginForm    components.AuthForm
	RegisterForm components.AuthForm
	detailView   viewport.Model
	spinner      spinner.Model

	// UI state
	StatusMsg   string
	StatusIsErr bool
	ShowHelp    bool
	Width       int
	Height      int
}

// NewModel creates a new application model
func NewModel(catalog *service.CatalogService, session *service.SessionService, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.StartRoute == (nav.Route{}) {
		opts.StartRoute = nav.Root
	}
	session.SetRoute(opts.StartRoute)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.AccentStyle

	return Model{
		Catalog:      catalog,
		Session:      session,
		observer:     NewSessionObserver(session),
		logger:       opts.Logger,
		opts:         opts,
		AuthState:    domain.AuthUnknown,
		Route:        opts.StartRoute,
		requests:     newRequestTracker(),
		State:        ViewLoading,
		listPage:     1,
		List:         components.NewMediaList(),
		SearchBar:    components.NewSearchBar(),
		Palette:      components.NewPalette(),
		LoginForm:    components.NewAuthForm("Login", components.LoginFields()),
		RegisterForm: components.NewAuthForm("Register", components.RegisterFields()),
		detailView:   viewport.New(80, 20),
		spinner:      sp,
	}
}

// Init subscribes to session events and resolves the initial session
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.observer.Wait(),
		RestoreSessionCmd(m.Session),
		m.spinner.Tick,
	)
}

// Close releases the session subscription and cancels in-flight requests
func (m Model) Close() {
	m.requests.cancelAll()
	m.observer.Close()
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SessionEventMsg:
		return m.handleSessionEvent(msg.Event)

	case NavigateMsg:
		return m, m.navigate(msg.Route, msg.Replace)

	case HomeLoadedMsg:
		if !m.requests.finish(slotView, msg.Gen) {
			m.logger.Debug("dropping stale response", "kind", "home", "gen", msg.Gen)
			return m, nil
		}
		items := make([]domain.MediaItem, 0, len(msg.Movies)+len(msg.TV))
		items = append(items, msg.Movies...)
		items = append(items, msg.TV...)
		m.List.SetItems(items, map[domain.MediaKind]string{
			domain.KindMovie: "Trending Movies",
			domain.KindTV:    "Trending TV",
		})
		m.State = stateFor(len(items) > 0)
		return m, nil

	case ListLoadedMsg:
		if !m.requests.finish(slotView, msg.Gen) {
			m.logger.Debug("dropping stale response", "kind", msg.Kind, "gen", msg.Gen)
			return m, nil
		}
		m.page = msg.Page
		m.listPage = msg.Page.Page
		m.List.SetItems(msg.Page.Results, nil)
		m.State = stateFor(len(msg.Page.Results) > 0)
		return m, nil

	case DetailsLoadedMsg:
		if !m.requests.finish(slotView, msg.Gen) {
			m.logger.Debug("dropping stale response", "kind", msg.Kind, "id", msg.ID, "gen", msg.Gen)
			return m, nil
		}
		m.detail = msg.Item
		m.State = stateFor(msg.Item != nil)
		m.detailView.SetContent(m.renderDetailBody())
		m.detailView.GotoTop()
		return m, nil

	case SearchResultsMsg:
		if !m.requests.finish(slotView, msg.Gen) {
			m.logger.Debug("dropping stale response", "kind", "search", "query", msg.Query, "gen", msg.Gen)
			return m, nil
		}
		m.List.SetItems(msg.Results, nil)
		m.State = stateFor(len(msg.Results) > 0)
		return m, nil

	case SignInResultMsg:
		if !m.requests.finish(slotAuth, msg.Gen) {
			return m, nil
		}
		if msg.Err == nil {
			// Navigation follows from the session event
			m.LoginForm.Reset()
			return m, nil
		}
		applyFormError(&m.LoginForm, msg.Err)
		return m, nil

	case RegisterResultMsg:
		if !m.requests.finish(slotAuth, msg.Gen) {
			return m, nil
		}
		if msg.Err != nil {
			applyFormError(&m.RegisterForm, msg.Err)
			return m, nil
		}
		m.RegisterForm.Reset()
		m.LoginForm.Reset()
		m.LoginForm.SetNotice(service.MsgRegistered)
		return m, m.navigate(nav.Login, false)

	case SignedOutMsg:
		m.AuthState = domain.AuthAnonymous
		m.Identity = nil
		m.history = nil
		m.SearchBar.SetValue("")
		var cmds []tea.Cmd
		if msg.Err != nil {
			cmds = append(cmds, m.setStatus("Sign-out could not clear the saved session", true))
		}
		if m.Route.Page != nav.PageLogin {
			cmds = append(cmds, m.navigate(nav.Login, true))
		}
		return m, tea.Batch(cmds...)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// handleSessionEvent applies a transition and follows its navigation intent
func (m Model) handleSessionEvent(e service.SessionEvent) (tea.Model, tea.Cmd) {
	first := m.AuthState == domain.AuthUnknown
	m.AuthState = e.State
	m.Identity = e.Identity

	cmds := []tea.Cmd{m.observer.Wait()}
	if e.State == domain.AuthAnonymous {
		m.history = nil
	}

	switch {
	case e.Intent != nil:
		cmds = append(cmds, m.navigate(e.Intent.Target, e.Intent.Replace))
	case first:
		// The start route was held until the session resolved
		cmds = append(cmds, m.navigate(m.Route, true))
	}
	return m, tea.Batch(cmds...)
}

// navigate guards and mounts a route
func (m *Model) navigate(route nav.Route, replace bool) tea.Cmd {
	m.Palette.Hide()
	m.Session.SetRoute(route)

	if m.AuthState == domain.AuthUnknown {
		m.Route = route
		return nil
	}

	if d, ok := nav.Guard(route, m.AuthState, m.Identity).(nav.Redirect); ok {
		m.logger.Debug("route redirected", "from", route.Path(), "to", d.Target.Path())
		return m.navigate(d.Target, true)
	}

	if !replace && m.Route != route {
		m.history = append(m.history, m.Route)
		if len(m.history) > maxHistory {
			m.history = m.history[len(m.history)-maxHistory:]
		}
	}
	m.Route = route
	return m.mount()
}

// back returns to the previous route
func (m *Model) back() tea.Cmd {
	if len(m.history) == 0 {
		return nil
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return m.navigate(prev, true)
}

// mount resets view state for the current route and issues its one fetch
func (m *Model) mount() tea.Cmd {
	m.requests.cancel(slotView)
	m.page = nil
	m.detail = nil
	m.List.SetItems(nil, nil)

	r := m.Route
	if r.Page == nav.PageSearch {
		if strings.TrimSpace(m.SearchBar.Value()) != r.Param {
			m.SearchBar.SetValue(r.Param)
		}
	} else if !m.SearchBar.Focused() {
		m.SearchBar.SetValue("")
	}

	switch r.Page {
	case nav.PageRoot, nav.PageHome:
		ctx, gen := m.requests.begin(context.Background(), slotView)
		m.State = ViewLoading
		return LoadHomeCmd(ctx, gen, m.Catalog)
	case nav.PageMovies:
		return m.loadList(domain.KindMovie, 1)
	case nav.PageTV:
		return m.loadList(domain.KindTV, 1)
	case nav.PageMovieDetails:
		ctx, gen := m.requests.begin(context.Background(), slotView)
		m.State = ViewLoading
		return LoadDetailsCmd(ctx, gen, m.Catalog, domain.KindMovie, r.Param)
	case nav.PageTVDetails:
		ctx, gen := m.requests.begin(context.Background(), slotView)
		m.State = ViewLoading
		return LoadDetailsCmd(ctx, gen, m.Catalog, domain.KindTV, r.Param)
	case nav.PageSearch:
		ctx, gen := m.requests.begin(context.Background(), slotView)
		m.State = ViewLoading
		return SearchCmd(ctx, gen, m.Catalog, r.Param)
	case nav.PageLogin, nav.PageRegister:
		m.requests.cancel(slotAuth)
		m.LoginForm.SetBusy(false)
		m.RegisterForm.SetBusy(false)
		m.State = ViewPopulated
		return nil
	default:
		m.State = ViewPopulated
		return nil
	}
}

// loadList fetches a page of the popular list for the current list view
func (m *Model) loadList(kind domain.MediaKind, page int) tea.Cmd {
	if page < 1 {
		page = 1
	}
	ctx, gen := m.requests.begin(context.Background(), slotView)
	m.State = ViewLoading
	m.listPage = page
	return LoadListCmd(ctx, gen, m.Catalog, kind, page)
}

// listKind returns the media kind of a list route
func (m Model) listKind() (domain.MediaKind, bool) {
	switch m.Route.Page {
	case nav.PageMovies:
		return domain.KindMovie, true
	case nav.PageTV:
		return domain.KindTV, true
	}
	return "", false
}

// hasList reports whether the mounted view shows a MediaList
func (m Model) hasList() bool {
	switch m.Route.Page {
	case nav.PageRoot, nav.PageHome, nav.PageMovies, nav.PageTV, nav.PageSearch:
		return true
	}
	return false
}

func (m *Model) updateLayout() {
	contentHeight := m.Height - ChromeHeight - 2
	if contentHeight < 5 {
		contentHeight = 5
	}
	m.List.SetSize(m.Width-4, contentHeight-2)
	m.SearchBar.SetWidth(m.Width / 3)
	m.Palette.SetSize(min(60, m.Width-4))
	m.detailView.Width = m.Width - 4
	m.detailView.Height = contentHeight
	if m.detail != nil {
		m.detailView.SetContent(m.renderDetailBody())
	}
}

func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.StatusMsg = msg
	m.StatusIsErr = isErr
	return ClearStatusCmd(4 * time.Second)
}

// handleKeyMsg routes key presses by focus: palette, search bar, forms, list filter, then global keys
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Close()
		return m, tea.Quit
	}

	if m.Palette.IsVisible() {
		var cmd tea.Cmd
		var chosen *nav.Route
		m.Palette, cmd, chosen = m.Palette.Update(msg)
		if chosen != nil {
			return m, m.navigate(*chosen, false)
		}
		return m, cmd
	}

	if m.AuthState == domain.AuthUnknown {
		if key.Matches(msg, Keys.Quit) {
			m.Close()
			return m, tea.Quit
		}
		return m, nil
	}

	if m.SearchBar.Focused() {
		return m.handleSearchKey(msg)
	}

	if m.Route.Page == nav.PageLogin || m.Route.Page == nav.PageRegister {
		return m.handleFormKey(msg)
	}

	if m.hasList() && m.List.Filtering() {
		var cmd tea.Cmd
		m.List, cmd = m.List.Update(msg)
		return m, cmd
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
		return m, nil
	case key.Matches(msg, Keys.Palette):
		return m, m.Palette.Show(nav.Destinations(m.AuthState == domain.AuthAuthenticated))
	case key.Matches(msg, Keys.Search):
		return m, m.SearchBar.Focus()
	case key.Matches(msg, Keys.Logout):
		return m, SignOutCmd(m.Session)
	case key.Matches(msg, Keys.Home):
		return m, m.navigate(nav.Home, false)
	case key.Matches(msg, Keys.Movies):
		return m, m.navigate(nav.Movies, false)
	case key.Matches(msg, Keys.TV):
		return m, m.navigate(nav.TV, false)
	case key.Matches(msg, Keys.About):
		return m, m.navigate(nav.About, false)
	case key.Matches(msg, Keys.Back):
		return m, m.back()
	case key.Matches(msg, Keys.Refresh):
		return m, m.mount()
	}

	if kind, ok := m.listKind(); ok && m.State != ViewLoading && m.page != nil {
		switch {
		case key.Matches(msg, Keys.NextPage) && m.page.HasNext():
			return m, m.loadList(kind, m.listPage+1)
		case key.Matches(msg, Keys.PrevPage) && m.page.HasPrev():
			return m, m.loadList(kind, m.listPage-1)
		}
	}

	if m.hasList() {
		switch {
		case key.Matches(msg, Keys.Filter):
			return m, m.List.StartFilter()
		case key.Matches(msg, Keys.Enter):
			if item, ok := m.List.Selected(); ok {
				if r, ok := nav.DetailRoute(item); ok {
					return m, m.navigate(r, false)
				}
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.List, cmd = m.List.Update(msg)
		return m, cmd
	}

	if m.Route.Page == nav.PageMovieDetails || m.Route.Page == nav.PageTVDetails {
		var cmd tea.Cmd
		m.detailView, cmd = m.detailView.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleSearchKey drives the live search bar: each edit navigates
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "tab":
		m.SearchBar.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	var changed bool
	m.SearchBar, cmd, changed = m.SearchBar.Update(msg)
	if !changed {
		return m, cmd
	}
	target := nav.SearchRoute(m.SearchBar.Value())
	if target == m.Route {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.navigate(target, m.Route.Page == nav.PageSearch))
}

// handleFormKey drives the login and register forms
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.SwapForm) {
		if m.Route.Page == nav.PageLogin {
			return m, m.navigate(nav.Register, false)
		}
		return m, m.navigate(nav.Login, false)
	}
	if msg.String() == "esc" {
		return m, m.Palette.Show(nav.Destinations(false))
	}

	var cmd tea.Cmd
	var submitted bool
	if m.Route.Page == nav.PageLogin {
		m.LoginForm, cmd, submitted = m.LoginForm.Update(msg)
		if submitted {
			return m, m.submitLogin()
		}
		return m, cmd
	}

	m.RegisterForm, cmd, submitted = m.RegisterForm.Update(msg)
	if submitted {
		return m, m.submitRegister()
	}
	return m, cmd
}

func (m *Model) submitLogin() tea.Cmd {
	form := service.LoginForm{
		Email:    m.LoginForm.Value("email"),
		Password: m.LoginForm.Value("password"),
	}
	m.LoginForm.SetErrors(nil)
	m.LoginForm.SetFormError("")
	m.LoginForm.SetNotice("")
	m.LoginForm.SetBusy(true)

	ctx, gen := m.requests.begin(context.Background(), slotAuth)
	return SignInCmd(ctx, gen, m.Session, form)
}

func (m *Model) submitRegister() tea.Cmd {
	form := service.RegisterForm{
		FirstName: m.RegisterForm.Value("first_name"),
		LastName:  m.RegisterForm.Value("last_name"),
		Email:     m.RegisterForm.Value("email"),
		Password:  m.RegisterForm.Value("password"),
	}
	m.RegisterForm.SetErrors(nil)
	m.RegisterForm.SetFormError("")
	m.RegisterForm.SetBusy(true)

	ctx, gen := m.requests.begin(context.Background(), slotAuth)
	return RegisterCmd(ctx, gen, m.Session, form)
}

// applyFormError shows a submission error on a form
func applyFormError(form *components.AuthForm, err error) {
	var verrs service.ValidationErrors
	var failure *service.AuthFailure
	switch {
	case errors.As(err, &verrs):
		form.SetErrors(verrs)
	case errors.As(err, &failure):
		form.SetFormError(failure.Message)
	default:
		form.SetFormError(err.Error())
	}
}

func stateFor(populated bool) ViewState {
	if populated {
		return ViewPopulated
	}
	return ViewEmpty
}
