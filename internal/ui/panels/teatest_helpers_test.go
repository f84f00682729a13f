package panels

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// panelAdapter wraps panel types that use typed Update signatures into
// a proper tea.Model so they can be used with teatest.
type panelAdapter struct {
	view     func() string
	updateFn func(tea.Msg) tea.Cmd
}

func (a panelAdapter) Init() tea.Cmd                           { return nil }
func (a panelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return a, a.updateFn(msg) }
func (a panelAdapter) View() string                            { return a.view() }

// wrapBrandList creates a tea.Model adapter around a BrandList for teatest use.
func wrapBrandList(bl *BrandList) tea.Model {
	return panelAdapter{
		view: func() string { return bl.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newBL, cmd := bl.Update(msg)
			*bl = newBL
			return cmd
		},
	}
}

// wrapRunForm creates a tea.Model adapter around a RunForm for teatest use.
func wrapRunForm(f *RunForm) tea.Model {
	return panelAdapter{
		view: func() string { return f.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newF, cmd := f.Update(msg)
			*f = newF
			return cmd
		},
	}
}

// wrapSetupForm creates a tea.Model adapter around a SetupForm for teatest use.
func wrapSetupForm(f *SetupForm) tea.Model {
	return panelAdapter{
		view: func() string { return f.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newF, cmd := f.Update(msg)
			*f = newF
			return cmd
		},
	}
}

// wrapStatusBar creates a tea.Model adapter around a StatusBar for teatest use.
// StatusBar has no Update method, so the adapter uses a no-op.
func wrapStatusBar(sb *StatusBar) tea.Model {
	return panelAdapter{
		view:     func() string { return sb.View() },
		updateFn: func(tea.Msg) tea.Cmd { return nil },
	}
}

// wrapHelpOverlay creates a tea.Model adapter around a HelpOverlay for teatest use.
func wrapHelpOverlay(h *HelpOverlay) tea.Model {
	return panelAdapter{
		view: func() string { return h.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newH, cmd := h.Update(msg)
			*h = newH
			return cmd
		},
	}
}

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	teatest.WaitFor(
		tb,
		tm.Output(),
		func(bts []byte) bool { return contains(bts, substr) },
		teatest.WithDuration(waitDuration),
	)
}

func contains(bts []byte, s string) bool {
	return len(s) > 0 && len(bts) >= len(s) && bytesContains(bts, []byte(s))
}

func bytesContains(haystack, needle []byte) bool {
	for i := 0; i <= len(haystack)-len(needle); i++ {
		found := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				found = false
				break
			}
		}
		if found {
			return true
		}
	}
	return false
}
