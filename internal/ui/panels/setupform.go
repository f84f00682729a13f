package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AnthonyBarbaro/stashhub/internal/api"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/border"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/styles"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/text"
)

type storeRow struct {
	name textinput.Model
	abbr textinput.Model
}

func newStoreRow() storeRow {
	name := textinput.New()
	name.Placeholder = "Store name"
	name.CharLimit = 64

	abbr := textinput.New()
	abbr.Placeholder = "AB"
	abbr.CharLimit = 8

	return storeRow{name: name, abbr: abbr}
}

// SetupForm is the settings screen: backend credentials plus the
// store-name to abbreviation map, edited as a column of rows. Rows with
// either field blank after trimming are dropped from the saved map.
type SetupForm struct {
	username textinput.Model
	password textinput.Model
	rows     []storeRow
	focusIdx int // 0 username, 1 password, then two fields per row
	offset   int
	width    int
	height   int
	saveErr  string
}

func NewSetupForm() SetupForm {
	username := textinput.New()
	username.Placeholder = "portal username"
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "portal password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	f := SetupForm{
		username: username,
		password: password,
		rows:     []storeRow{newStoreRow()},
	}
	f.syncFocus()
	return f
}

func (f SetupForm) fieldCount() int {
	return 2 + 2*len(f.rows)
}

// rowAt maps a focus index to its row and column. Returns ok=false for
// the credential fields.
func (f SetupForm) rowAt(idx int) (row, col int, ok bool) {
	if idx < 2 {
		return 0, 0, false
	}
	return (idx - 2) / 2, (idx - 2) % 2, true
}

func (f SetupForm) Update(msg tea.Msg) (SetupForm, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	switch key.String() {
	case "esc":
		return f, func() tea.Msg { return GoHomeMsg{} }
	case "up", "shift+tab":
		if f.focusIdx > 0 {
			f.focusIdx--
		}
		f.syncFocus()
		return f, nil
	case "down", "tab", "enter":
		if f.focusIdx < f.fieldCount()-1 {
			f.focusIdx++
		}
		f.syncFocus()
		return f, nil
	case "ctrl+n":
		f.rows = append(f.rows, newStoreRow())
		f.focusIdx = 2 + 2*(len(f.rows)-1)
		f.applyInputWidths()
		f.syncFocus()
		return f, nil
	case "ctrl+d":
		if row, _, inRow := f.rowAt(f.focusIdx); inRow {
			f.rows = append(f.rows[:row], f.rows[row+1:]...)
			if f.focusIdx >= f.fieldCount() {
				f.focusIdx = f.fieldCount() - 1
			}
			f.syncFocus()
		}
		return f, nil
	case "ctrl+s":
		f.saveErr = ""
		setup := f.buildSetup()
		return f, func() tea.Msg { return SaveSetupMsg{Setup: setup} }
	}

	var cmd tea.Cmd
	switch f.focusIdx {
	case 0:
		f.username, cmd = f.username.Update(msg)
	case 1:
		f.password, cmd = f.password.Update(msg)
	default:
		row, col, _ := f.rowAt(f.focusIdx)
		if col == 0 {
			f.rows[row].name, cmd = f.rows[row].name.Update(msg)
		} else {
			f.rows[row].abbr, cmd = f.rows[row].abbr.Update(msg)
		}
	}
	return f, cmd
}

// buildSetup assembles the payload: trimmed credentials and only the
// rows whose both fields survive trimming.
func (f SetupForm) buildSetup() api.Setup {
	storeMap := make(map[string]string)
	for _, row := range f.rows {
		name := strings.TrimSpace(row.name.Value())
		abbr := strings.TrimSpace(row.abbr.Value())
		if name == "" || abbr == "" {
			continue
		}
		storeMap[name] = abbr
	}
	return api.Setup{
		Username: strings.TrimSpace(f.username.Value()),
		Password: strings.TrimSpace(f.password.Value()),
		StoreMap: storeMap,
	}
}

func (f SetupForm) View() string {
	innerWidth := f.width - 2
	innerHeight := f.height - 2
	if innerWidth < 0 {
		innerWidth = 0
	}
	if innerHeight < 0 {
		innerHeight = 0
	}

	var b strings.Builder
	b.WriteString(styles.TextSecondaryStyle.Render("Backend credentials"))
	b.WriteString("\n")
	b.WriteString(text.PadRight("Username", 10) + f.username.View())
	b.WriteString("\n")
	b.WriteString(text.PadRight("Password", 10) + f.password.View())
	b.WriteString("\n\n")
	b.WriteString(styles.TextSecondaryStyle.Render("Store map"))
	b.WriteString("  ")
	b.WriteString(styles.TextDimStyle.Render("rows missing either field are dropped on save"))
	b.WriteString("\n")

	fixedRows := 6 // credentials block + store map header
	errRows := 0
	if f.saveErr != "" {
		errRows = 2
	}
	available := innerHeight - fixedRows - errRows
	if available < 1 {
		available = 1
	}
	f.scrollToFocused(available)

	if f.offset > 0 {
		b.WriteString(styles.TextDimStyle.Render("  ▲"))
		b.WriteString("\n")
		available--
	}
	end := f.offset + available
	if end < len(f.rows) {
		end-- // reserve the ▼ row
	}
	if end > len(f.rows) {
		end = len(f.rows)
	}

	for i := f.offset; i < end; i++ {
		b.WriteString(f.rows[i].name.View())
		b.WriteString("  ")
		b.WriteString(f.rows[i].abbr.View())
		b.WriteString("\n")
	}
	if end < len(f.rows) {
		b.WriteString(styles.TextDimStyle.Render("  ▼"))
		b.WriteString("\n")
	}

	if f.saveErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(text.Truncate(f.saveErr, innerWidth)))
	}

	keybinds := []border.Keybind{
		{Key: "↑↓", Label: " move"},
		{Key: "^N", Label: " add row"},
		{Key: "^D", Label: " del row"},
		{Key: "^S", Label: " save"},
		{Key: "Esc", Label: " home"},
	}
	return border.RenderPanel("Setup", b.String(), keybinds, f.width, f.height, true)
}

// scrollToFocused keeps the focused row inside the visible window.
func (f *SetupForm) scrollToFocused(visible int) {
	row, _, inRow := f.rowAt(f.focusIdx)
	if !inRow {
		f.offset = 0
		return
	}
	if visible <= 0 {
		return
	}
	if row < f.offset {
		f.offset = row
	}
	if row >= f.offset+visible {
		f.offset = row - visible + 1
	}
	maxOffset := len(f.rows) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if f.offset > maxOffset {
		f.offset = maxOffset
	}
	if f.offset < 0 {
		f.offset = 0
	}
}

func (f *SetupForm) syncFocus() {
	f.username.Blur()
	f.password.Blur()
	for i := range f.rows {
		f.rows[i].name.Blur()
		f.rows[i].abbr.Blur()
	}
	switch f.focusIdx {
	case 0:
		f.username.Focus()
	case 1:
		f.password.Focus()
	default:
		row, col, ok := f.rowAt(f.focusIdx)
		if !ok || row >= len(f.rows) {
			return
		}
		if col == 0 {
			f.rows[row].name.Focus()
		} else {
			f.rows[row].abbr.Focus()
		}
	}
}

func (f *SetupForm) SetSize(w, h int) {
	f.width = w
	f.height = h
	f.applyInputWidths()
}

func (f *SetupForm) applyInputWidths() {
	inputW := (f.width - 2) * 2 / 5
	if inputW < 16 {
		inputW = 16
	}
	f.username.Width = inputW
	f.password.Width = inputW
	for i := range f.rows {
		f.rows[i].name.Width = inputW
		f.rows[i].abbr.Width = 8
	}
}

// SetError shows a save failure in place on the form.
func (f *SetupForm) SetError(msg string) {
	f.saveErr = msg
}

// SetCredentials replaces the credential field values.
func (f *SetupForm) SetCredentials(username, password string) {
	f.username.SetValue(username)
	f.password.SetValue(password)
}

// SetRows replaces the store rows with the given (name, abbreviation)
// pairs. An empty slice leaves a single blank row.
func (f *SetupForm) SetRows(pairs [][2]string) {
	f.rows = nil
	for _, p := range pairs {
		row := newStoreRow()
		row.name.SetValue(p[0])
		row.abbr.SetValue(p[1])
		f.rows = append(f.rows, row)
	}
	if len(f.rows) == 0 {
		f.rows = []storeRow{newStoreRow()}
	}
	if f.focusIdx >= f.fieldCount() {
		f.focusIdx = f.fieldCount() - 1
	}
	f.applyInputWidths()
	f.syncFocus()
}

// RowCount returns the number of editable store rows.
func (f SetupForm) RowCount() int { return len(f.rows) }

// FocusIndex returns the focused field index.
func (f SetupForm) FocusIndex() int { return f.focusIdx }
