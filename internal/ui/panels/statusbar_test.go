package panels

import (
	"strings"
	"testing"

	"github.com/AnthonyBarbaro/stashhub/internal/api"
)

func TestStatusBarAppName(t *testing.T) {
	sb := NewStatusBar("http://127.0.0.1:5000")
	sb.SetSize(120)

	view := sb.View()
	if !strings.Contains(view, "stashhub") {
		t.Error("expected 'stashhub' in status bar")
	}
	if !strings.Contains(view, "http://127.0.0.1:5000") {
		t.Error("expected backend URL in status bar")
	}
}

func TestStatusBarHelpHint(t *testing.T) {
	sb := NewStatusBar("http://127.0.0.1:5000")
	sb.SetSize(80)

	view := sb.View()
	if !strings.Contains(view, "?:help") {
		t.Error("expected '?:help' hint in status bar")
	}
}

func TestStatusBarStatusSegment(t *testing.T) {
	sb := NewStatusBar("http://127.0.0.1:5000")
	sb.SetSize(120)

	sb.SetStatus("⏳ Scraping Acme Dispensary …", api.KindProgress)
	if view := sb.View(); !strings.Contains(view, "Scraping Acme Dispensary") {
		t.Error("expected status text in status bar")
	}

	// Persistent until replaced or cleared
	if view := sb.View(); !strings.Contains(view, "Scraping Acme Dispensary") {
		t.Error("expected status text to persist across renders")
	}

	sb.SetStatus("✅ All stores done", api.KindSuccess)
	view := sb.View()
	if strings.Contains(view, "Scraping") {
		t.Error("expected old status replaced")
	}
	if !strings.Contains(view, "All stores done") {
		t.Error("expected new status text")
	}

	sb.ClearStatus()
	if view := sb.View(); strings.Contains(view, "All stores done") {
		t.Error("expected status cleared")
	}
}

func TestStatusBarStatusTruncated(t *testing.T) {
	sb := NewStatusBar("http://127.0.0.1:5000")
	sb.SetSize(60)

	sb.SetStatus("❌ Unexpected error: "+strings.Repeat("x", 200), api.KindError)
	view := sb.View()
	if !strings.Contains(view, "…") {
		t.Error("expected long status to be truncated")
	}
}

func TestStatusBarJobSegment(t *testing.T) {
	sb := NewStatusBar("http://127.0.0.1:5000")
	sb.SetSize(120)

	if strings.Contains(sb.View(), "working") {
		t.Error("expected no working segment while idle")
	}

	sb.SetJobActive(true)
	if !sb.JobActive() {
		t.Error("expected JobActive true")
	}
	if !strings.Contains(sb.View(), "working") {
		t.Error("expected working segment while a job is active")
	}

	sb.SetJobActive(false)
	if strings.Contains(sb.View(), "working") {
		t.Error("expected working segment hidden when idle again")
	}
}

func TestStatusBarFlash(t *testing.T) {
	sb := NewStatusBar("http://127.0.0.1:5000")
	sb.SetSize(120)

	sb.SetFlashWithLevel("Copied status to clipboard", FlashSuccess)
	if !strings.Contains(sb.View(), "Copied status to clipboard") {
		t.Error("expected flash message in status bar")
	}

	sb.ClearFlash()
	if strings.Contains(sb.View(), "Copied status to clipboard") {
		t.Error("expected flash cleared")
	}
}
