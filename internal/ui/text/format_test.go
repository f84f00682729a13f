package text

import (
	"testing"
	"time"
)

func TestFormatElapsedSeconds(t *testing.T) {
	if got := FormatElapsed(30 * time.Second); got != "30s" {
		t.Errorf("FormatElapsed 30s: got %q", got)
	}
}

func TestFormatElapsedNegative(t *testing.T) {
	if got := FormatElapsed(-5 * time.Second); got != "0s" {
		t.Errorf("FormatElapsed negative: got %q", got)
	}
}

func TestFormatElapsedMinutes(t *testing.T) {
	if got := FormatElapsed(3 * time.Minute); got != "3m" {
		t.Errorf("FormatElapsed 3m: got %q", got)
	}
}

func TestFormatElapsedHoursMinutes(t *testing.T) {
	if got := FormatElapsed(72 * time.Minute); got != "1h12m" {
		t.Errorf("FormatElapsed 1h12m: got %q, want %q", got, "1h12m")
	}
}
