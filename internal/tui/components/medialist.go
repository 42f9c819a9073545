package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// titleSource adapts a slice of items to fuzzy.Source
type titleSource []domain.MediaItem

func (s titleSource) String(i int) string { return s[i].Title }
func (s titleSource) Len() int            { return len(s) }

// MediaList is a scrollable list of catalog items with an in-list fuzzy filter
type MediaList struct {
	items    []domain.MediaItem
	headings map[domain.MediaKind]string // heading rendered whenever the kind changes

	// Filter state: filteredIdx is nil when no filter is applied
	filterInput  textinput.Model
	filterActive bool
	filteredIdx  []int
	matched      map[int][]int // item index -> matched character offsets

	cursor int
	offset int
	width  int
	height int
	keys   MediaListKeyMap
}

// NewMediaList creates an empty list
func NewMediaList() MediaList {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = 64
	ti.Prompt = "f "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return MediaList{
		filterInput: ti,
		keys:        DefaultMediaListKeyMap(),
		height:      10,
		width:       60,
	}
}

// SetItems replaces the list contents and clears any filter.
// headings may be nil for an ungrouped list.
func (l *MediaList) SetItems(items []domain.MediaItem, headings map[domain.MediaKind]string) {
	l.items = items
	l.headings = headings
	l.cursor = 0
	l.offset = 0
	l.ClearFilter()
}

// SetSize updates the list dimensions
func (l *MediaList) SetSize(width, height int) {
	l.width = width
	l.height = height
	if l.height < 3 {
		l.height = 3
	}
	l.filterInput.Width = width - 6
	l.clampOffset()
}

// Items returns the unfiltered items
func (l MediaList) Items() []domain.MediaItem {
	return l.items
}

// Len returns the number of visible (filtered) items
func (l MediaList) Len() int {
	if l.filteredIdx != nil {
		return len(l.filteredIdx)
	}
	return len(l.items)
}

// Selected returns the item under the cursor
func (l MediaList) Selected() (domain.MediaItem, bool) {
	if l.Len() == 0 {
		return domain.MediaItem{}, false
	}
	return l.items[l.mapIndex(l.cursor)], true
}

// Visible returns the items currently shown, in order
func (l MediaList) Visible() []domain.MediaItem {
	out := make([]domain.MediaItem, 0, l.Len())
	for i := 0; i < l.Len(); i++ {
		out = append(out, l.items[l.mapIndex(i)])
	}
	return out
}

// Filtering reports whether the filter input has focus
func (l MediaList) Filtering() bool {
	return l.filterActive
}

// FilterQuery returns the applied filter
func (l MediaList) FilterQuery() string {
	return l.filterInput.Value()
}

// StartFilter focuses the filter input
func (l *MediaList) StartFilter() tea.Cmd {
	l.filterActive = true
	return l.filterInput.Focus()
}

// ClearFilter removes the filter and shows every item
func (l *MediaList) ClearFilter() {
	l.filterActive = false
	l.filteredIdx = nil
	l.matched = nil
	l.filterInput.SetValue("")
	l.filterInput.Blur()
}

// SetFilter applies query directly
func (l *MediaList) SetFilter(query string) {
	l.filterInput.SetValue(query)
	l.applyFilter()
}

func (l *MediaList) applyFilter() {
	query := l.filterInput.Value()
	l.cursor = 0
	l.offset = 0

	if strings.TrimSpace(query) == "" {
		l.filteredIdx = nil
		l.matched = nil
		return
	}

	matches := fuzzy.FindFrom(query, titleSource(l.items))
	l.filteredIdx = make([]int, len(matches))
	l.matched = make(map[int][]int, len(matches))
	for i, match := range matches {
		l.filteredIdx[i] = match.Index
		l.matched[match.Index] = match.MatchedIndexes
	}
}

func (l MediaList) mapIndex(i int) int {
	if l.filteredIdx != nil && i < len(l.filteredIdx) {
		return l.filteredIdx[i]
	}
	return i
}

// Update handles navigation keys, and filter input while filtering
func (l MediaList) Update(msg tea.Msg) (MediaList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	if l.filterActive {
		switch {
		case key.Matches(keyMsg, l.keys.Escape):
			l.ClearFilter()
			return l, nil
		case key.Matches(keyMsg, l.keys.Accept):
			l.filterActive = false
			l.filterInput.Blur()
			return l, nil
		}
		var cmd tea.Cmd
		prev := l.filterInput.Value()
		l.filterInput, cmd = l.filterInput.Update(msg)
		if l.filterInput.Value() != prev {
			l.applyFilter()
		}
		return l, cmd
	}

	switch {
	case key.Matches(keyMsg, l.keys.Up):
		l.move(-1)
	case key.Matches(keyMsg, l.keys.Down):
		l.move(1)
	case key.Matches(keyMsg, l.keys.Home):
		l.cursor = 0
		l.clampOffset()
	case key.Matches(keyMsg, l.keys.End):
		l.cursor = l.Len() - 1
		l.clampOffset()
	case key.Matches(keyMsg, l.keys.HalfUp):
		l.move(-l.height / 2)
	case key.Matches(keyMsg, l.keys.HalfDown):
		l.move(l.height / 2)
	case key.Matches(keyMsg, l.keys.Escape):
		if l.filteredIdx != nil {
			l.ClearFilter()
		}
	}
	return l, nil
}

func (l *MediaList) move(delta int) {
	if l.Len() == 0 {
		return
	}
	l.cursor += delta
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor >= l.Len() {
		l.cursor = l.Len() - 1
	}
	l.clampOffset()
}

func (l *MediaList) clampOffset() {
	if l.cursor < 0 {
		l.cursor = 0
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.height {
		l.offset = l.cursor - l.height + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// View renders the visible window of the list
func (l MediaList) View() string {
	var b strings.Builder

	count := l.Len()
	if count == 0 {
		if l.filteredIdx != nil {
			b.WriteString(styles.DimStyle.Render("No matches") + "\n")
		} else {
			b.WriteString(styles.DimStyle.Render("No items") + "\n")
		}
	}

	end := l.offset + l.height
	if end > count {
		end = count
	}

	if l.offset > 0 {
		b.WriteString(styles.DimStyle.Render("↑ more") + "\n")
	}

	var prevKind domain.MediaKind
	for i := l.offset; i < end; i++ {
		idx := l.mapIndex(i)
		item := l.items[idx]
		if l.headings != nil && l.filteredIdx == nil && (i == l.offset || item.Kind != prevKind) {
			if h, ok := l.headings[item.Kind]; ok {
				b.WriteString(styles.SectionStyle.Render(h) + "\n")
			}
		}
		prevKind = item.Kind
		b.WriteString(l.renderItem(item, l.matched[idx], i == l.cursor))
		b.WriteString("\n")
	}

	if end < count {
		b.WriteString(styles.DimStyle.Render("↓ more") + "\n")
	}

	if l.filterActive || l.filteredIdx != nil {
		b.WriteString(l.filterInput.View())
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  %d/%d", count, len(l.items))))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (l MediaList) renderItem(item domain.MediaItem, matched []int, selected bool) string {
	titleWidth := l.width - 24
	if titleWidth < 10 {
		titleWidth = 10
	}
	title := styles.Truncate(item.Title, titleWidth)

	meta := item.Description()
	if item.Kind != domain.KindPerson && item.Rating > 0 {
		meta += "  ★ " + item.FormattedRating()
	}

	if selected {
		line := fmt.Sprintf("%-*s  %s", titleWidth, title, meta)
		return styles.SelectedItemStyle.Render(line)
	}

	rendered := highlightMatches(title, matched)
	pad := titleWidth - lipgloss.Width(title)
	if pad < 0 {
		pad = 0
	}
	return styles.NormalItemStyle.Render(rendered + strings.Repeat(" ", pad) + "  " + styles.DimStyle.Render(meta))
}

// highlightMatches styles the characters at the given byte offsets
func highlightMatches(s string, matched []int) string {
	if len(matched) == 0 {
		return s
	}
	set := make(map[int]struct{}, len(matched))
	for _, i := range matched {
		set[i] = struct{}{}
	}

	var b strings.Builder
	for i, r := range s {
		if _, ok := set[i]; ok {
			b.WriteString(styles.MatchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
