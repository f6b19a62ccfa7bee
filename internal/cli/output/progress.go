package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressBar renders a labelled bar for a bounded quantity, such as the
// remaining lifetime of a session.
type ProgressBar struct {
	title string
	width int

	// Unit formats the current and total values. Defaults to plain integers.
	Unit func(int64) string
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(title string) *ProgressBar {
	return &ProgressBar{
		title: title,
		width: 30,
		Unit:  func(n int64) string { return fmt.Sprintf("%d", n) },
	}
}

// NewDurationBar creates a bar whose values are durations in milliseconds,
// printed rounded to the second.
func NewDurationBar(title string) *ProgressBar {
	bar := NewProgressBar(title)
	bar.Unit = func(ms int64) string {
		return (time.Duration(ms) * time.Millisecond).Round(time.Second).String()
	}
	return bar
}

// Render writes the bar for current out of total, followed by a newline.
func (p *ProgressBar) Render(w io.Writer, current, total int64) error {
	_, err := fmt.Fprintln(w, p.String(current, total))
	return err
}

// String returns the bar for current out of total.
func (p *ProgressBar) String(current, total int64) string {
	if total <= 0 {
		return fmt.Sprintf("%s %s", p.title, p.Unit(current))
	}

	current = max(0, min(current, total))
	percent := float64(current) / float64(total)

	filled := int(float64(p.width) * percent)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	return fmt.Sprintf("%s [%s] %3.0f%% (%s/%s)",
		p.title,
		bar,
		percent*100,
		p.Unit(current),
		p.Unit(total),
	)
}
