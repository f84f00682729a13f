package panels

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/AnthonyBarbaro/stashhub/internal/api"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/styles"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/text"
)

const flashDurationVal = 5 * time.Second

var statusSpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

// StatusBar is the single-row bar at the bottom of the screen. It carries
// the app name and version, the live job state, the last backend status
// line, a transient flash region, and the backend URL.
type StatusBar struct {
	width      int
	backendURL string
	status     string
	statusKind api.Kind
	jobActive  bool
	jobStart   time.Time
	flash      string
	flashLevel FlashLevel
	flashUntil time.Time
	tickStep   int
}

func NewStatusBar(backendURL string) StatusBar {
	return StatusBar{backendURL: backendURL}
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")

	appName := "stashhub " + Version
	if s.jobActive {
		frame := statusSpinnerFrames[s.tickStep%len(statusSpinnerFrames)]
		spinner := lipgloss.NewStyle().Foreground(styles.StatusRunning).Render(frame)
		appName = spinner + " " + appName
	}
	left := " " + styles.TextSecondaryStyle.Render(appName)

	if s.jobActive {
		elapsed := text.FormatElapsed(time.Since(s.jobStart))
		jobStr := lipgloss.NewStyle().Foreground(styles.StatusRunning).
			Render("working " + elapsed)
		left += sep + jobStr
	}

	if s.status != "" {
		// The backend text carries its own ✅/❌/⏳ markers, so the segment
		// is colored by kind but gets no extra icon.
		maxStatus := s.width / 3
		if maxStatus < 16 {
			maxStatus = 16
		}
		statusStr := lipgloss.NewStyle().Foreground(styles.KindColor(s.statusKind)).
			Render(text.Truncate(s.status, maxStatus))
		left += sep + statusStr
	}

	if s.flash != "" && time.Now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusSuccess
		case FlashError:
			icon, color = "✗", styles.StatusError
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default: // FlashInfo
			icon, color = "●", styles.StatusRunning
		}
		flashStr := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + " " + s.flash)
		left += sep + flashStr
	}

	right := styles.TextDimStyle.Render(s.backendURL) + sep +
		styles.TextSecondaryStyle.Render("?:help") + " "

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	gap := s.width - leftWidth - rightWidth
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

// SetStatus replaces the persistent status segment. It stays visible
// until the next SetStatus or ClearStatus.
func (s *StatusBar) SetStatus(msg string, kind api.Kind) {
	s.status = msg
	s.statusKind = kind
}

func (s *StatusBar) ClearStatus() {
	s.status = ""
	s.statusKind = api.KindProgress
}

// Status returns the current persistent status text and its kind.
func (s *StatusBar) Status() (string, api.Kind) {
	return s.status, s.statusKind
}

// SetJobActive toggles the working indicator. Turning it on records the
// start time for the elapsed display.
func (s *StatusBar) SetJobActive(active bool) {
	if active && !s.jobActive {
		s.jobStart = time.Now()
	}
	s.jobActive = active
}

func (s *StatusBar) JobActive() bool {
	return s.jobActive
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}

// Tick advances the animation frame for the status bar spinner.
func (s *StatusBar) Tick() {
	s.tickStep++
}
