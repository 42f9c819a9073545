package components

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/nav"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// Palette is the ":" route jumper. It fuzzy-matches route names and also
// accepts a literal path such as "/moviedetails/550".
type Palette struct {
	input   textinput.Model
	routes  []nav.Route
	matches []nav.Route
	cursor  int
	visible bool
	width   int
}

// NewPalette creates a hidden palette
func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "go to..."
	ti.CharLimit = 120
	ti.Width = 40
	ti.Prompt = ": "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Palette{input: ti, width: 48}
}

// Show opens the palette over the given destinations
func (p *Palette) Show(routes []nav.Route) tea.Cmd {
	p.visible = true
	p.routes = routes
	p.input.SetValue("")
	p.cursor = 0
	p.filter()
	return p.input.Focus()
}

// Hide closes the palette
func (p *Palette) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns true if the palette is open
func (p Palette) IsVisible() bool {
	return p.visible
}

// Matches returns the current candidates, best first
func (p Palette) Matches() []nav.Route {
	return p.matches
}

// SetSize updates the palette width
func (p *Palette) SetSize(width int) {
	p.width = width
	p.input.Width = width - 8
}

// filter ranks routes by how well their title matches the input
func (p *Palette) filter() {
	query := strings.TrimSpace(p.input.Value())
	p.cursor = 0

	if strings.HasPrefix(query, "/") {
		p.matches = []nav.Route{nav.Parse(query)}
		return
	}
	if query == "" {
		p.matches = append([]nav.Route(nil), p.routes...)
		return
	}

	names := make([]string, len(p.routes))
	for i, r := range p.routes {
		names[i] = r.Title()
	}

	ranks := fuzzy.RankFindFold(query, names)
	sort.Sort(ranks)

	p.matches = make([]nav.Route, 0, len(ranks))
	for _, rank := range ranks {
		p.matches = append(p.matches, p.routes[rank.OriginalIndex])
	}
}

// Update handles input; returns the chosen route when enter is pressed
func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd, *nav.Route) {
	if !p.visible {
		return p, nil, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			p.Hide()
			return p, nil, nil
		case "enter":
			if len(p.matches) == 0 {
				return p, nil, nil
			}
			chosen := p.matches[p.cursor]
			p.Hide()
			return p, nil, &chosen
		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil, nil
		case "down", "ctrl+n":
			if p.cursor < len(p.matches)-1 {
				p.cursor++
			}
			return p, nil, nil
		}
	}

	var cmd tea.Cmd
	prev := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != prev {
		p.filter()
	}
	return p, cmd, nil
}

// View renders the palette modal
func (p Palette) View() string {
	if !p.visible {
		return ""
	}

	lines := []string{p.input.View(), ""}
	if len(p.matches) == 0 {
		lines = append(lines, styles.DimStyle.Render("No matching routes"))
	}
	for i, r := range p.matches {
		label := r.Title() + "  " + styles.DimStyle.Render(r.Path())
		if i == p.cursor {
			lines = append(lines, styles.SelectedItemStyle.Render(r.Title()+"  "+r.Path()))
		} else {
			lines = append(lines, styles.NormalItemStyle.Render(label))
		}
	}

	return styles.ModalStyle.Width(p.width).Render(
		styles.ModalTitleStyle.Render("Go to") + "\n" + strings.Join(lines, "\n"),
	)
}
