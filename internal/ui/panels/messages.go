package panels

import "github.com/AnthonyBarbaro/stashhub/internal/api"

// SubmitRunMsg asks the app to start a report run for the brands
// currently selected in the brand list.
type SubmitRunMsg struct {
	Emails string
}

// SaveSetupMsg asks the app to persist credentials and the store map
// edited in the setup form.
type SaveSetupMsg struct {
	Setup api.Setup
}

// GoHomeMsg asks the app to leave the setup screen without saving.
type GoHomeMsg struct{}

// YankMsg asks the app to copy text to the system clipboard.
type YankMsg struct {
	Text string
}

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg struct{}

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg struct{}
