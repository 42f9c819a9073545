package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/catalog/tmdb"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/nav"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// CheckingText is shown until the session state resolves
const CheckingText = "Checking authentication status..."

// View renders the whole screen
func (m Model) View() string {
	if m.Width == 0 {
		return "Loading..."
	}

	if m.AuthState == domain.AuthUnknown {
		msg := m.spinner.View() + " " + CheckingText
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, msg)
	}

	var body string
	switch {
	case m.ShowHelp:
		body = m.renderHelp()
	default:
		body = m.renderContent()
	}

	screen := lipgloss.JoinVertical(lipgloss.Left,
		m.renderNavbar(),
		styles.ContentStyle.Render(body),
	)

	contentHeight := m.Height - lipgloss.Height(screen) - 1
	if contentHeight > 0 {
		screen += strings.Repeat("\n", contentHeight)
	}
	screen = lipgloss.JoinVertical(lipgloss.Left, screen, m.renderFooter())

	if m.Palette.IsVisible() {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.Palette.View())
	}
	return screen
}

func (m Model) renderNavbar() string {
	authed := m.AuthState == domain.AuthAuthenticated

	var links []string
	for i, r := range nav.Destinations(authed) {
		label := r.Title()
		if authed {
			label = fmt.Sprintf("%d %s", i+1, label)
		}
		if r == m.Route || (r == nav.Home && m.Route == nav.Root) {
			links = append(links, styles.ActiveNavLinkStyle.Render(label))
		} else {
			links = append(links, styles.NavLinkStyle.Render(label))
		}
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center,
		styles.BrandStyle.Render("Marquee"),
		strings.Join(links, ""),
	)

	var right string
	if authed {
		user := ""
		if m.Identity != nil {
			user = styles.DimStyle.Render(m.Identity.Name())
		}
		right = lipgloss.JoinHorizontal(lipgloss.Center, m.SearchBar.View(), "  ", user)
	}

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.NavbarStyle.Width(m.Width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderContent() string {
	switch m.Route.Page {
	case nav.PageRoot, nav.PageHome:
		return m.renderListView("", "No trending titles right now.")
	case nav.PageMovies:
		return m.renderListView(m.pageHeading("Popular Movies"), "No movies found.")
	case nav.PageTV:
		return m.renderListView(m.pageHeading("Popular TV Shows"), "No TV shows found.")
	case nav.PageSearch:
		heading := styles.TitleStyle.Render("Search Results for: " + m.Route.Param)
		return m.renderListView(heading, fmt.Sprintf("No results found for %q.", m.Route.Param))
	case nav.PageMovieDetails:
		return m.renderDetails("Movie details not found.")
	case nav.PageTVDetails:
		return m.renderDetails("TV Show details not found.")
	case nav.PageAbout:
		return renderAbout(m.Width - 4)
	case nav.PageLogin:
		return m.centered(m.LoginForm.View() + "\n\n" + styles.DimStyle.Render("ctrl+r: create an account"))
	case nav.PageRegister:
		return m.centered(m.RegisterForm.View() + "\n\n" + styles.DimStyle.Render("ctrl+r: back to login"))
	default:
		return renderNotFound(m.Route)
	}
}

func (m Model) pageHeading(title string) string {
	h := styles.TitleStyle.Render(title)
	if m.page != nil && m.page.TotalPages > 1 {
		h += styles.DimStyle.Render(fmt.Sprintf("  page %d of %d", m.page.Page, m.page.TotalPages))
	}
	return h
}

func (m Model) renderListView(heading, empty string) string {
	var b strings.Builder
	if heading != "" {
		b.WriteString(heading)
		b.WriteString("\n\n")
	}
	switch m.State {
	case ViewLoading:
		b.WriteString(m.spinner.View() + " Loading...")
	case ViewEmpty:
		b.WriteString(styles.DimStyle.Render(empty))
	default:
		b.WriteString(m.List.View())
	}
	return b.String()
}

func (m Model) renderDetails(notFound string) string {
	switch m.State {
	case ViewLoading:
		return m.spinner.View() + " Loading..."
	case ViewEmpty:
		return styles.ErrorStyle.Render(notFound)
	}
	return m.detailView.View()
}

// renderDetailBody lays out the detail record for the viewport
func (m Model) renderDetailBody() string {
	item := m.detail
	if item == nil {
		return ""
	}
	width := m.Width - 4
	if width < 20 {
		width = 20
	}

	var lines []string
	lines = append(lines, styles.TitleStyle.Render(item.Title))
	if item.Tagline != "" {
		lines = append(lines, styles.SubtitleStyle.Render(item.Tagline))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%s %s / 10", styles.LabelStyle.Render("Rating:"), styles.AccentStyle.Render("★ "+item.FormattedRating())))

	if genres := item.GenreNames(); len(genres) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", styles.LabelStyle.Render("Genres:"), strings.Join(genres, ", ")))
	}

	switch item.Kind {
	case domain.KindTV:
		lines = append(lines, fmt.Sprintf("%s %s", styles.LabelStyle.Render("First Air Date:"), orDash(item.ReleaseDate)))
		lines = append(lines, fmt.Sprintf("%s %d", styles.LabelStyle.Render("Number of Seasons:"), item.SeasonCount))
	default:
		lines = append(lines, fmt.Sprintf("%s %s", styles.LabelStyle.Render("Release Date:"), orDash(item.ReleaseDate)))
	}

	if item.HasImage() {
		url := tmdb.ImageURL(m.opts.ImageBaseURL, m.opts.ImageSize, item.ImagePath())
		lines = append(lines, fmt.Sprintf("%s %s", styles.LabelStyle.Render("Poster:"), styles.DimStyle.Render(url)))
	}

	if item.Overview != "" {
		lines = append(lines, "", lipgloss.NewStyle().Width(width).Render(item.Overview))
	}
	return strings.Join(lines, "\n")
}

func (m Model) centered(s string) string {
	w := m.Width - 4
	if w < lipgloss.Width(s) {
		return s
	}
	return lipgloss.PlaceHorizontal(w, lipgloss.Center, s)
}

func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		style := styles.SuccessStyle
		if m.StatusIsErr {
			style = styles.ErrorStyle
		}
		return styles.FooterStyle.Width(m.Width).Render(style.Render(m.StatusMsg))
	}

	var hints []string
	switch {
	case m.SearchBar.Focused():
		hints = []string{"type to search", "enter/esc done"}
	case m.Route.Page == nav.PageLogin || m.Route.Page == nav.PageRegister:
		hints = []string{"tab next field", "enter submit", "C-r switch", "esc go to"}
	case m.hasList() && m.List.Filtering():
		hints = []string{"type to filter", "enter accept", "esc clear"}
	default:
		hints = []string{"enter open", "/ search", "f filter", ": go to", "? help", "q quit"}
		if _, ok := m.listKind(); ok {
			hints = append(hints[:1], append([]string{"n/p page"}, hints[1:]...)...)
		}
	}

	year := time.Now().Year()
	left := styles.DimStyle.Render(strings.Join(hints, " • "))
	right := styles.DimStyle.Render(fmt.Sprintf("© %d Marquee. Powered by TMDB", year))
	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return styles.FooterStyle.Width(m.Width).Render(left)
	}
	return styles.FooterStyle.Width(m.Width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	bindings := []struct{ key, desc string }{
		{"j/k ↑/↓", "move"},
		{"enter", "open details"},
		{"h/←", "back"},
		{"n/p", "next/previous page"},
		{"1-4", "home, movies, tv, about"},
		{"/", "search"},
		{"f", "filter current list"},
		{":", "go to page"},
		{"r", "reload"},
		{"L", "logout"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, kb := range bindings {
		b.WriteString(styles.HelpKeyStyle.Width(10).Render(kb.key))
		b.WriteString(styles.HelpDescStyle.Render(kb.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("press any key to close"))
	return b.String()
}

func renderAbout(width int) string {
	if width < 30 {
		width = 30
	}
	wrap := lipgloss.NewStyle().Width(width)

	features := []struct{ name, desc string }{
		{"Trending Media:", "See what's currently popular in movies and TV, updated weekly."},
		{"Detailed Views:", "Ratings, genres, release dates and overviews for every movie and TV show."},
		{"User Authentication:", "Sign in or register with an email and password before browsing."},
		{"Watchlist:", "Manage your watchlist from the command line with `marquee watchlist`."},
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("About Marquee"))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentStyle.Render("Explore, Discover, and Track"))
	b.WriteString("\n")
	b.WriteString(wrap.Render("Marquee is a terminal browser for the world of movies and TV shows. Whether you're hunting for the latest blockbuster or revisiting a classic series, everything is a few keystrokes away."))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentStyle.Render("Key Features"))
	b.WriteString("\n")
	for _, f := range features {
		b.WriteString(wrap.Render(styles.HighlightStyle.Render(f.name) + " " + f.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render("Data provided by The Movie Database (TMDB)."))
	return b.String()
}

func renderNotFound(r nav.Route) string {
	var b strings.Builder
	b.WriteString(styles.ErrorStyle.Render("404 Not Found"))
	b.WriteString("\n\n")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("Nothing lives at %s. Press 1 to go home.", r.Param)))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
