package layout

// Layout holds the computed cell dimensions for all panels.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	// Home screen panels
	BrandListWidth  int
	BrandListHeight int
	RunFormWidth    int
	RunFormHeight   int

	// Setup screen panel
	SetupWidth  int
	SetupHeight int

	// Status bar
	StatusBarWidth int
}

const (
	MinWidth  = 80
	MinHeight = 24

	LeftColWeight  = 0.40
	RightColWeight = 0.60
)

// Calculate computes panel dimensions from terminal size.
// Subtracts 1 row for the status bar before splitting.
// Returns Layout with TooSmall=true if under minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}

	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	usableHeight := termHeight - 1 // status bar

	brandListWidth := int(float64(termWidth) * LeftColWeight)
	runFormWidth := termWidth - brandListWidth

	l.BrandListWidth = brandListWidth
	l.BrandListHeight = usableHeight
	l.RunFormWidth = runFormWidth
	l.RunFormHeight = usableHeight

	l.SetupWidth = termWidth
	l.SetupHeight = usableHeight

	l.StatusBarWidth = termWidth

	return l
}
