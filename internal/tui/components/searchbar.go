package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/tui/styles"
)

// SearchBar is the navbar's live search input. Every edit is reported so the
// caller can navigate on each keystroke.
type SearchBar struct {
	input textinput.Model
}

// NewSearchBar creates an unfocused search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search movies, tv, people..."
	ti.CharLimit = 100
	ti.Width = 32
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{input: ti}
}

// Focus gives the bar keyboard focus
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur releases focus, keeping the text
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the bar has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the raw text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the text without reporting an edit
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
	s.input.CursorEnd()
}

// SetWidth sets the input width
func (s *SearchBar) SetWidth(w int) {
	s.input.Width = w
}

// Update forwards input; changed is true when the text was edited
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	prev := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != prev
}

// View renders the bar
func (s SearchBar) View() string {
	return s.input.View()
}
