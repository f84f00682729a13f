package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/AnthonyBarbaro/stashhub/internal/api"
	"github.com/AnthonyBarbaro/stashhub/internal/config"
	"github.com/AnthonyBarbaro/stashhub/internal/job"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/border"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/clipboard"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/layout"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/panels"
	"github.com/AnthonyBarbaro/stashhub/internal/ui/styles"
)

type screen int

const (
	screenHome screen = iota
	screenSetup
)

type focusTarget int

const (
	focusBrands focusTarget = iota
	focusRun
	numFocusTargets
)

// Messages produced by the app's own commands.
type (
	brandsLoadedMsg struct {
		brands []string
		err    error
	}
	updateFilesDoneMsg struct {
		res api.Result
		err error
	}
	runStartedMsg struct {
		res api.Result
		err error
	}
	setupSavedMsg struct {
		res api.Result
		err error
	}
	jobEventMsg struct {
		ev job.Event
		ok bool
	}
)

// App is the top-level model and the single owner of client state: which
// screen is shown, which panel has focus, the brand data, and the one
// in-flight operation. Both triggers (update files and run) share the
// busy flag, so neither can start while the other is working.
type App struct {
	cfg     *config.Config
	client  *api.Client
	watcher *job.Watcher
	log     zerolog.Logger

	width  int
	height int
	layout layout.Layout
	ready  bool

	screen  screen
	focused focusTarget

	brandList   panels.BrandList
	runForm     panels.RunForm
	setupForm   panels.SetupForm
	statusBar   panels.StatusBar
	helpOverlay *panels.HelpOverlay
	spin        spinner.Model
	keys        KeyMap

	brandsLoaded bool
	brandsErr    string

	busy        bool
	busyMessage string
	events      <-chan job.Event
}

// NewApp wires the app from its dependencies. startOnSetup opens the
// setup screen first, mirroring the backend's setup redirect for an
// unconfigured install.
func NewApp(cfg *config.Config, client *api.Client, watcher *job.Watcher, log zerolog.Logger, startOnSetup bool) App {
	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.StatusRunning)),
	)

	scr := screenHome
	if startOnSetup {
		scr = screenSetup
	}

	bl := panels.NewBrandList()
	bl.SetFocused(true)

	return App{
		cfg:       cfg,
		client:    client,
		watcher:   watcher,
		log:       log,
		screen:    scr,
		brandList: bl,
		runForm:   panels.NewRunForm(),
		setupForm: panels.NewSetupForm(),
		statusBar: panels.NewStatusBar(cfg.Backend.URL),
		spin:      sp,
		keys:      DefaultKeyMap(),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.loadBrandsCmd())
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout = layout.Calculate(msg.Width, msg.Height)
		a.propagateSizes()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		a.statusBar.Tick()
		return a, cmd

	case brandsLoadedMsg:
		return a.handleBrandsLoaded(msg)

	case SubmitRunMsg:
		return a.handleSubmitRun(msg)

	case runStartedMsg:
		return a.handleSubmitAccepted(msg.res, msg.err)

	case updateFilesDoneMsg:
		return a.handleSubmitAccepted(msg.res, msg.err)

	case jobEventMsg:
		return a.handleJobEvent(msg)

	case panels.GTimerExpiredMsg:
		var cmd tea.Cmd
		a.brandList, cmd = a.brandList.Update(msg)
		return a, cmd

	case SaveSetupMsg:
		if a.busy {
			a.statusBar.SetFlashWithLevel("Another operation is already running", panels.FlashWarning)
			return a, clearFlashLater()
		}
		a.busy = true
		return a, a.saveSetupCmd(msg.Setup)

	case setupSavedMsg:
		return a.handleSetupSaved(msg)

	case GoHomeMsg:
		a.screen = screenHome
		a.focused = focusBrands
		a.updateFocusState()
		return a, nil

	case YankMsg:
		if err := clipboard.Write(msg.Text); err != nil {
			a.log.Debug().Err(err).Msg("clipboard write failed")
		}
		a.statusBar.SetFlashWithLevel("Copied status to clipboard", panels.FlashSuccess)
		return a, clearFlashLater()

	case CloseModalMsg:
		a.helpOverlay = nil
		return a, nil

	case ClearFlashMsg:
		a.statusBar.ClearFlash()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		a.watcher.Stop()
		return a, tea.Quit
	}

	if a.helpOverlay != nil {
		var cmd tea.Cmd
		*a.helpOverlay, cmd = a.helpOverlay.Update(msg)
		return a, cmd
	}

	if a.screen == screenSetup {
		var cmd tea.Cmd
		a.setupForm, cmd = a.setupForm.Update(msg)
		return a, cmd
	}

	// While an operation is in flight both triggers and panel input
	// stay disabled; only quit, help, and yank remain live.
	if a.busy {
		switch {
		case key.Matches(msg, a.keys.Quit):
			a.watcher.Stop()
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.helpOverlay = panels.NewHelpOverlay()
			return a, nil
		case key.Matches(msg, a.keys.Yank):
			return a, a.yankStatusCmd()
		}
		return a, nil
	}

	// Keys always reach an active filter or the focused text input
	// before any global binding fires.
	if a.focused == focusBrands && a.brandList.FilterActive() {
		return a.routeKey(msg)
	}
	if a.focused == focusRun {
		switch msg.String() {
		case "tab":
			a.cycleFocus()
			return a, nil
		case "esc":
			a.focused = focusBrands
			a.updateFocusState()
			return a, nil
		}
		return a.routeKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.watcher.Stop()
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.helpOverlay = panels.NewHelpOverlay()
		return a, nil
	case key.Matches(msg, a.keys.FocusNext):
		a.cycleFocus()
		return a, nil
	case key.Matches(msg, a.keys.UpdateFiles):
		return a.handleUpdateFiles()
	case key.Matches(msg, a.keys.Setup):
		a.screen = screenSetup
		return a, nil
	case key.Matches(msg, a.keys.Yank):
		return a, a.yankStatusCmd()
	}

	return a.routeKey(msg)
}

func (a App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.focused {
	case focusBrands:
		var cmd tea.Cmd
		a.brandList, cmd = a.brandList.Update(msg)
		a.syncSelection()
		return a, cmd
	case focusRun:
		var cmd tea.Cmd
		a.runForm, cmd = a.runForm.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) handleBrandsLoaded(msg brandsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.brandsLoaded = false
		if errors.Is(msg.err, api.ErrNoBrands) {
			a.brandsErr = "No brands found"
		} else {
			a.brandsErr = "Network error contacting backend"
		}
		a.log.Warn().Err(msg.err).Msg("brand load failed")
		a.statusBar.SetStatus(a.brandsErr, api.KindError)
		return a, nil
	}

	a.brandsLoaded = true
	a.brandsErr = ""
	a.brandList.SetBrands(msg.brands)
	a.syncSelection()
	a.log.Debug().Int("count", len(msg.brands)).Msg("brands loaded")
	return a, nil
}

func (a App) handleSubmitRun(msg SubmitRunMsg) (tea.Model, tea.Cmd) {
	if a.busy {
		a.statusBar.SetFlashWithLevel("Another operation is already running", panels.FlashWarning)
		return a, clearFlashLater()
	}

	brands := a.brandList.Selected()
	if msg.Emails == "" {
		a.statusBar.SetStatus("Enter at least one recipient email", api.KindError)
		return a, nil
	}
	if len(brands) == 0 {
		a.statusBar.SetStatus("Select at least one brand", api.KindError)
		return a, nil
	}

	a.beginJob(a.cfg.UI.ReportMessage)
	return a, a.startRunCmd(msg.Emails, brands)
}

func (a App) handleUpdateFiles() (tea.Model, tea.Cmd) {
	if a.busy {
		a.statusBar.SetFlashWithLevel("Another operation is already running", panels.FlashWarning)
		return a, clearFlashLater()
	}
	a.beginJob(a.cfg.UI.ScrapeMessage)
	return a, a.updateFilesCmd()
}

// handleSubmitAccepted covers the response to both triggers: on success
// the poll loop starts, otherwise the app drops straight back to idle
// with the reason on the status line.
func (a App) handleSubmitAccepted(res api.Result, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		a.failJob(submitErrorText(err))
		a.log.Warn().Err(err).Msg("submit failed")
		return a, nil
	}
	if !res.OK {
		reason := res.Msg
		if reason == "" {
			reason = "Request failed"
		}
		a.failJob(reason)
		return a, nil
	}

	ch := a.watcher.Start(context.Background())
	if ch == nil {
		// Cannot happen while the busy flag holds, but never leave the
		// UI stuck if it does.
		a.failJob("Another operation is already running")
		return a, nil
	}
	a.events = ch
	if res.Msg != "" {
		a.statusBar.SetStatus(res.Msg, api.KindProgress)
	}
	return a, listenForEvents(ch)
}

func (a App) handleJobEvent(msg jobEventMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		// Watch channel closed after a terminal event or a Stop.
		return a, nil
	}

	ev := msg.ev
	if ev.Err != nil {
		if errors.Is(ev.Err, job.ErrTimeout) {
			a.failJob("Timed out waiting for the backend to finish")
		} else {
			a.failJob("Network error while polling status")
		}
		a.log.Warn().Err(ev.Err).Msg("poll ended")
		return a, nil
	}

	a.statusBar.SetStatus(ev.Text, ev.Kind)
	if !ev.Terminal {
		return a, listenForEvents(a.events)
	}

	success := ev.Kind == api.KindSuccess
	a.finishJob()
	if success {
		// A finished scrape or run can change the catalog; refresh it.
		return a, a.loadBrandsCmd()
	}
	return a, nil
}

func (a App) handleSetupSaved(msg setupSavedMsg) (tea.Model, tea.Cmd) {
	a.busy = false

	if msg.err != nil {
		a.setupForm.SetError(submitErrorText(msg.err))
		a.log.Warn().Err(msg.err).Msg("setup save failed")
		return a, nil
	}
	if !msg.res.OK {
		reason := msg.res.Msg
		if reason == "" {
			reason = "Save failed"
		}
		a.setupForm.SetError(reason)
		return a, nil
	}

	a.screen = screenHome
	a.focused = focusBrands
	a.updateFocusState()
	if msg.res.Msg != "" {
		a.statusBar.SetFlashWithLevel(msg.res.Msg, panels.FlashSuccess)
	}
	return a, tea.Batch(a.loadBrandsCmd(), clearFlashLater())
}

func (a App) View() string {
	if !a.ready {
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, "Loading...")
	}

	if a.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%d×%d)\nMinimum: %d×%d",
			a.width, a.height, layout.MinWidth, layout.MinHeight)
		return lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, msg)
	}

	var body string
	switch {
	case a.screen == screenSetup:
		body = a.setupForm.View()
	case !a.brandsLoaded:
		var msg string
		if a.brandsErr != "" {
			msg = styles.ErrorStyle.Render(a.brandsErr)
		} else {
			msg = styles.TextDimStyle.Render("Loading brands…")
		}
		body = lipgloss.Place(a.width, a.height-1,
			lipgloss.Center, lipgloss.Center, msg)
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			a.brandList.View(), a.runForm.View())
	}

	if a.busy && a.busyMessage != "" {
		// The busy box replaces the panels but leaves the status bar
		// visible so poll updates stay readable.
		body = lipgloss.Place(a.width, a.height-1,
			lipgloss.Center, lipgloss.Center, a.busyBox(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}

	fullLayout := lipgloss.JoinVertical(lipgloss.Left, body, a.statusBar.View())

	if a.helpOverlay != nil {
		modalView := a.helpOverlay.View()
		fullLayout = lipgloss.Place(a.width, a.height,
			lipgloss.Center, lipgloss.Center, modalView,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(styles.TextDim),
		)
	}

	return fullLayout
}

func (a App) busyBox() string {
	line := " " + a.spin.View() + " " + a.busyMessage
	width := lipgloss.Width(line) + 4
	if width < 40 {
		width = 40
	}
	if width > a.width-4 {
		width = a.width - 4
	}
	return border.RenderPanel("", line, nil, width, 3, true)
}

func (a *App) beginJob(message string) {
	a.busy = true
	a.busyMessage = message
	a.statusBar.ClearStatus()
	a.statusBar.SetJobActive(true)
}

func (a *App) finishJob() {
	a.busy = false
	a.busyMessage = ""
	a.events = nil
	a.statusBar.SetJobActive(false)
}

func (a *App) failJob(reason string) {
	a.finishJob()
	a.statusBar.SetStatus(reason, api.KindError)
}

func (a *App) cycleFocus() {
	a.focused = (a.focused + 1) % numFocusTargets
	a.updateFocusState()
}

func (a *App) updateFocusState() {
	a.brandList.SetFocused(a.focused == focusBrands)
	a.runForm.SetFocused(a.focused == focusRun)
}

func (a *App) syncSelection() {
	a.runForm.SetSelection(a.brandList.SelectedCount(), a.brandList.Total())
}

func (a *App) propagateSizes() {
	l := a.layout
	a.brandList.SetSize(l.BrandListWidth, l.BrandListHeight)
	a.runForm.SetSize(l.RunFormWidth, l.RunFormHeight)
	a.setupForm.SetSize(l.SetupWidth, l.SetupHeight)
	a.statusBar.SetSize(l.StatusBarWidth)
}

func (a App) yankStatusCmd() tea.Cmd {
	text, _ := a.statusBar.Status()
	if text == "" {
		return nil
	}
	return func() tea.Msg { return YankMsg{Text: text} }
}

func (a App) loadBrandsCmd() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		brands, err := client.Brands(context.Background())
		return brandsLoadedMsg{brands: brands, err: err}
	}
}

func (a App) updateFilesCmd() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		res, err := client.UpdateFiles(context.Background())
		return updateFilesDoneMsg{res: res, err: err}
	}
}

func (a App) startRunCmd(emails string, brands []string) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		res, err := client.Run(context.Background(), emails, brands)
		return runStartedMsg{res: res, err: err}
	}
}

func (a App) saveSetupCmd(setup api.Setup) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		res, err := client.SaveSetup(context.Background(), setup)
		return setupSavedMsg{res: res, err: err}
	}
}

func listenForEvents(ch <-chan job.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		return jobEventMsg{ev: ev, ok: ok}
	}
}

func clearFlashLater() tea.Cmd {
	return tea.Tick(panels.FlashDuration(), func(time.Time) tea.Msg {
		return ClearFlashMsg{}
	})
}

// submitErrorText maps client errors to what the status line should say.
func submitErrorText(err error) string {
	var malformed *api.MalformedError
	if errors.As(err, &malformed) {
		return "Backend returned an unexpected response"
	}
	var status *api.StatusError
	if errors.As(err, &status) {
		return fmt.Sprintf("Backend error (HTTP %d)", status.Code)
	}
	return "Network error contacting backend"
}
