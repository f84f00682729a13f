package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AnthonyBarbaro/stashhub/internal/ui/border"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/styles"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/text"
)

// RunForm is the report-run panel: a recipient list input plus a summary
// of the current brand selection. Submission itself is validated and
// executed by the app, which owns both this form and the brand list.
type RunForm struct {
	emailsInput   textinput.Model
	selectedCount int
	totalCount    int
	width         int
	height        int
	focused       bool
}

func NewRunForm() RunForm {
	ti := textinput.New()
	ti.Placeholder = "ops@example.com, manager@example.com"
	ti.CharLimit = 0

	return RunForm{emailsInput: ti}
}

func (f RunForm) Update(msg tea.Msg) (RunForm, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	if key.Type == tea.KeyEnter {
		// Trim here; emptiness is judged by the app together with the
		// brand selection so both failures surface the same way.
		emails := strings.TrimSpace(f.emailsInput.Value())
		return f, func() tea.Msg { return SubmitRunMsg{Emails: emails} }
	}

	var cmd tea.Cmd
	f.emailsInput, cmd = f.emailsInput.Update(msg)
	return f, cmd
}

func (f RunForm) View() string {
	innerWidth := f.width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}

	var b strings.Builder
	b.WriteString(styles.TextSecondaryStyle.Render("Recipients (comma separated)"))
	b.WriteString("\n")
	b.WriteString(f.emailsInput.View())
	b.WriteString("\n\n")

	summary := fmt.Sprintf("%d of %d brands selected", f.selectedCount, f.totalCount)
	if f.selectedCount == 0 {
		b.WriteString(styles.TextDimStyle.Render(summary))
	} else {
		b.WriteString(styles.TextPrimaryStyle.Render(summary))
	}
	b.WriteString("\n\n")

	for _, line := range text.WrapText("Runs the report pipeline for the selected brands and emails the results to each address.", innerWidth) {
		b.WriteString(styles.TextDimStyle.Render(line))
		b.WriteString("\n")
	}

	var keybinds []border.Keybind
	if f.focused {
		keybinds = []border.Keybind{
			{Key: "↵", Label: " run"},
			{Key: "Esc", Label: " back"},
		}
	}

	return border.RenderPanel("[2] Run", b.String(), keybinds, f.width, f.height, f.focused)
}

func (f *RunForm) SetSize(w, h int) {
	f.width = w
	f.height = h
	f.emailsInput.Width = w - 6
}

func (f *RunForm) SetFocused(focused bool) {
	f.focused = focused
	if focused {
		f.emailsInput.Focus()
	} else {
		f.emailsInput.Blur()
	}
}

// SetSelection updates the brand-selection summary shown in the panel.
func (f *RunForm) SetSelection(selected, total int) {
	f.selectedCount = selected
	f.totalCount = total
}

// Emails returns the current input value.
func (f RunForm) Emails() string { return f.emailsInput.Value() }

// SetEmails replaces the current input value.
func (f *RunForm) SetEmails(v string) { f.emailsInput.SetValue(v) }
