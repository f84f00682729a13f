package api

import "strings"

// Status lines are classified by their leading marker, the backend's
// contract for signalling how a job ended.
const (
	successMarker = "✅"
	errorMarker   = "❌"
)

// Kind classifies one status line.
type Kind int

const (
	KindProgress Kind = iota
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "progress"
	}
}

// Classify reads the leading marker of a status line. Text without a marker
// is in-progress output.
func Classify(text string) Kind {
	switch {
	case strings.HasPrefix(text, successMarker):
		return KindSuccess
	case strings.HasPrefix(text, errorMarker):
		return KindError
	default:
		return KindProgress
	}
}

// Terminal reports whether a line of this kind ends the job.
func (k Kind) Terminal() bool {
	return k == KindSuccess || k == KindError
}
