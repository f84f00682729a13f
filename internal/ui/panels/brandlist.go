package panels

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AnthonyBarbaro/stashhub/internal/ui/border"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/styles"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/text"
)

// BrandList is the multi-select list of brand names fetched from the
// backend. The list mirrors server order; the filter only narrows the
// view and never touches selection state.
type BrandList struct {
	brands       []string
	selected     map[string]bool
	visible      []string
	cursor       int
	offset       int
	width        int
	height       int
	gTap         DoubleTap
	filterActive bool
	filterText   string
	filterInput  textinput.Model
	focused      bool
}

func NewBrandList() BrandList {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.CharLimit = 64

	bl := BrandList{
		selected:    make(map[string]bool),
		filterInput: ti,
		gTap:        NewDoubleTap(gTapIDBrandList),
	}
	bl.applyFilter()
	return bl
}

// SetBrands replaces the list wholesale with names in the given order
// and resets selection, cursor, and scroll state.
func (b *BrandList) SetBrands(names []string) {
	b.brands = names
	b.selected = make(map[string]bool)
	b.cursor = 0
	b.offset = 0
	b.applyFilter()
	b.clampCursor()
}

func (b BrandList) Update(msg tea.Msg) (BrandList, tea.Cmd) {
	switch msg := msg.(type) {
	case GTimerExpiredMsg:
		b.gTap.HandleExpiry(msg)
		return b, nil
	case tea.KeyMsg:
		return b.updateKey(msg)
	}
	return b, nil
}

func (b BrandList) updateKey(key tea.KeyMsg) (BrandList, tea.Cmd) {
	if b.filterActive {
		return b.updateFilter(key)
	}

	switch key.String() {
	case "/":
		b.filterActive = true
		b.filterInput.Focus()
		return b, nil
	case "j", "down":
		if b.cursor < len(b.visible)-1 {
			b.cursor++
			b.scrollToCursor()
		}
		b.gTap.Pending = false
	case "k", "up":
		if b.cursor > 0 {
			b.cursor--
			b.scrollToCursor()
		}
		b.gTap.Pending = false
	case " ":
		if name := b.CursorBrand(); name != "" {
			b.selected[name] = !b.selected[name]
		}
		b.gTap.Pending = false
	case "a":
		for _, name := range b.brands {
			b.selected[name] = true
		}
		b.gTap.Pending = false
	case "c":
		b.selected = make(map[string]bool)
		b.gTap.Pending = false
	case "G":
		b.cursor = max(len(b.visible)-1, 0)
		b.scrollToCursor()
		b.gTap.Pending = false
	case "g":
		fired, cmd := b.gTap.Check()
		if fired {
			b.cursor = 0
			b.scrollToCursor()
		}
		return b, cmd
	default:
		b.gTap.Pending = false
		// Any other plain letter jumps to the first brand starting with
		// it, matching the listbox behavior of the desktop tool.
		if key.Type == tea.KeyRunes && len(key.Runes) == 1 && unicode.IsLetter(key.Runes[0]) {
			b.jumpToLetter(key.Runes[0])
		}
	}
	return b, nil
}

func (b *BrandList) updateFilter(msg tea.KeyMsg) (BrandList, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		if msg.Type == tea.KeyEsc {
			b.filterText = ""
			b.filterInput.SetValue("")
		}
		b.filterActive = false
		b.filterInput.Blur()
		b.applyFilter()
		b.clampCursor()
		return *b, nil
	}

	var cmd tea.Cmd
	b.filterInput, cmd = b.filterInput.Update(msg)
	b.filterText = b.filterInput.Value()
	b.applyFilter()
	b.clampCursor()
	return *b, cmd
}

func (b BrandList) View() string {
	innerWidth := b.width - 2
	innerHeight := b.height - 2
	if innerWidth < 0 {
		innerWidth = 0
	}
	if innerHeight < 0 {
		innerHeight = 0
	}

	title := fmt.Sprintf("[1] Brands (%d/%d)", b.SelectedCount(), len(b.brands))

	var keybinds []border.Keybind
	if b.focused {
		keybinds = []border.Keybind{
			{Key: "space", Label: " toggle"},
			{Key: "a", Label: "ll"},
			{Key: "c", Label: "lear"},
			{Key: "/", Label: "filter"},
		}
	}

	content := b.renderContent(innerWidth, innerHeight)
	return border.RenderPanel(title, content, keybinds, b.width, b.height, b.focused)
}

func (b BrandList) renderContent(width, height int) string {
	if len(b.visible) == 0 {
		if b.filterActive || b.filterText != "" {
			return b.renderFilterBar() + "\nNo matching brands."
		}
		return "No brands."
	}

	var sb strings.Builder

	availableRows := height
	if b.filterActive {
		sb.WriteString(b.renderFilterBar())
		sb.WriteString("\n")
		availableRows--
	}

	if b.offset > 0 {
		sb.WriteString(styles.TextDimStyle.Render("  ▲"))
		sb.WriteString("\n")
		availableRows--
	}

	end := b.offset + availableRows
	if end > len(b.visible) {
		end = len(b.visible)
	}
	// Reserve a row for the bottom scroll indicator if needed
	if end < len(b.visible) && availableRows > 1 {
		end = b.offset + availableRows - 1
		if end > len(b.visible) {
			end = len(b.visible)
		}
	}

	for i := b.offset; i < end; i++ {
		name := b.visible[i]
		mark := "[ ]"
		if b.selected[name] {
			mark = "[x]"
		}

		var line string
		if i == b.cursor {
			// Plain text for the cursor row so the background covers the line
			plain := text.Truncate(mark+" "+name, width)
			line = styles.SelectedRowStyle.Width(width).Render(plain)
		} else {
			styledMark := styles.TextDimStyle.Render(mark)
			if b.selected[name] {
				styledMark = styles.SelectedOptionStyle.Render(mark)
			}
			line = styledMark + " " + text.Truncate(name, width-4)
		}

		sb.WriteString(line)
		if i < end-1 {
			sb.WriteString("\n")
		}
	}

	if end < len(b.visible) {
		sb.WriteString("\n")
		sb.WriteString(styles.TextDimStyle.Render("  ▼"))
	}

	return sb.String()
}

func (b *BrandList) SetSize(w, h int) {
	b.width = w
	b.height = h
	b.filterInput.Width = w - 6
	b.clampCursor()
}

func (b *BrandList) SetFocused(focused bool) {
	b.focused = focused
}

// CursorBrand returns the brand name under the cursor, or "" when the
// view is empty.
func (b BrandList) CursorBrand() string {
	if len(b.visible) == 0 || b.cursor >= len(b.visible) {
		return ""
	}
	return b.visible[b.cursor]
}

// Selected returns the selected brand names in server order.
func (b BrandList) Selected() []string {
	var out []string
	for _, name := range b.brands {
		if b.selected[name] {
			out = append(out, name)
		}
	}
	return out
}

func (b BrandList) Total() int {
	return len(b.brands)
}

func (b BrandList) SelectedCount() int {
	n := 0
	for _, name := range b.brands {
		if b.selected[name] {
			n++
		}
	}
	return n
}

func (b *BrandList) applyFilter() {
	if b.filterText == "" {
		b.visible = b.brands
		return
	}
	query := strings.ToLower(b.filterText)
	visible := make([]string, 0, len(b.brands))
	for _, name := range b.brands {
		if strings.Contains(strings.ToLower(name), query) {
			visible = append(visible, name)
		}
	}
	b.visible = visible
}

func (b *BrandList) clampCursor() {
	if len(b.visible) == 0 {
		b.cursor = 0
		b.offset = 0
		return
	}
	if b.cursor >= len(b.visible) {
		b.cursor = len(b.visible) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
	b.scrollToCursor()
}

func (b *BrandList) scrollToCursor() {
	visible := b.visibleRows()
	if visible <= 0 {
		return
	}
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+visible {
		b.offset = b.cursor - visible + 1
	}
	maxOffset := len(b.visible) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if b.offset > maxOffset {
		b.offset = maxOffset
	}
	if b.offset < 0 {
		b.offset = 0
	}
}

func (b BrandList) visibleRows() int {
	rows := b.height - 2 // border top/bottom
	if b.filterActive {
		rows--
	}
	if b.offset > 0 {
		rows--
	}
	if b.offset+rows < len(b.visible) {
		rows--
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (b *BrandList) jumpToLetter(r rune) {
	prefix := string(unicode.ToLower(r))
	for i, name := range b.visible {
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			b.cursor = i
			b.scrollToCursor()
			return
		}
	}
}

func (b BrandList) renderFilterBar() string {
	return "/ " + b.filterInput.View()
}

// FilterActive reports whether the filter input is currently capturing keys.
func (b BrandList) FilterActive() bool {
	return b.filterActive
}
