package output

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/KaloyanYosifov/holy-kern-base/libhkb"
)

// Adaptive palette for human-readable output.
var (
	ColorPass = lipgloss.AdaptiveColor{
		Light: "#86b300",
		Dark:  "#c2d94c",
	}
	ColorFail = lipgloss.AdaptiveColor{
		Light: "#f07171",
		Dark:  "#f07178",
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	}
	ColorAccent = lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	}
)

var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
)

const (
	IconPass = "✓"
	IconFail = "✗"
	Arrow    = "→"
)

// RemindLayout is how reminder instants are shown to people.
const RemindLayout = "Mon 2006-01-02 15:04 MST"

// RenderSpec writes one line describing spec and the instant it denotes at now.
func RenderSpec(w io.Writer, spec libhkb.TimeSpec, now time.Time) error {
	_, err := fmt.Fprintf(w, "%s %s %s %s\n",
		PassStyle.Render(IconPass),
		describe(spec),
		MutedStyle.Render(Arrow),
		AccentStyle.Render(spec.Apply(now).Format(RemindLayout)),
	)
	return err
}

// RenderError writes a resolution failure.
func RenderError(w io.Writer, err error) error {
	_, werr := fmt.Fprintf(w, "%s %s\n", FailStyle.Render(IconFail), err)
	return werr
}

// RenderBatch writes one line per result followed by a summary.
func RenderBatch(w io.Writer, results []libhkb.BatchResult, now time.Time) error {
	failed := 0
	for _, r := range results {
		var err error
		if r.Err != nil {
			failed++
			err = RenderError(w, r.Err)
		} else {
			err = RenderSpec(w, r.Spec, now)
		}
		if err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d resolved, %d failed", len(results)-failed, failed)
	_, err := fmt.Fprintln(w, MutedStyle.Render(summary))
	return err
}

// RenderAction writes the outcome of an action command.
func RenderAction(w io.Writer, resp *ActionResponse) error {
	icon := PassStyle.Render(IconPass)
	if !resp.Success {
		icon = FailStyle.Render(IconFail)
	}
	_, err := fmt.Fprintf(w, "%s %s\n", icon, resp.Message)
	return err
}

func describe(spec libhkb.TimeSpec) string {
	if s, ok := spec.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", spec)
}
