package ui

import "github.com/AnthonyBarbaro/stashhub/internal/ui/panels"

// Type aliases to panels message types — single source of truth.
type (
	SubmitRunMsg  = panels.SubmitRunMsg
	SaveSetupMsg  = panels.SaveSetupMsg
	GoHomeMsg     = panels.GoHomeMsg
	YankMsg       = panels.YankMsg
	CloseModalMsg = panels.CloseModalMsg
	ClearFlashMsg = panels.ClearFlashMsg
)
