package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lexkit-labs/lexkit/internal/scaffold"
	"github.com/lexkit-labs/lexkit/internal/verify"
)

// Status tags, fixed width so paths line up.
const (
	tagOK   = "[ OK ]"
	tagSkip = "[SKIP]"
	tagOver = "[OVER]"
	tagFail = "[FAIL]"
	tagMiss = "[MISS]"
	tagDrft = "[DRFT]"
)

var tagStyles = map[string]lipgloss.Style{
	tagOK:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	tagSkip: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	tagOver: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	tagFail: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	tagMiss: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	tagDrft: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
}

// output writes tagged progress lines.
type output struct {
	w     io.Writer
	color bool
	p     *message.Printer
}

func newOutput(w io.Writer, color bool) *output {
	return &output{w: w, color: color, p: message.NewPrinter(language.English)}
}

func (o *output) tag(t string) string {
	if !o.color {
		return t
	}
	return tagStyles[t].Render(t)
}

// line writes "  <tag> <text>".
func (o *output) line(tag, format string, args ...any) {
	fmt.Fprintf(o.w, "  %s %s\n", o.tag(tag), fmt.Sprintf(format, args...))
}

func (o *output) printf(format string, args ...any) {
	o.p.Fprintf(o.w, format, args...)
}

func actionTag(a scaffold.Action) string {
	switch a {
	case scaffold.ActionCreated:
		return tagOK
	case scaffold.ActionPresent:
		return tagSkip
	case scaffold.ActionOverwritten:
		return tagOver
	default:
		return tagFail
	}
}

func statusTag(s verify.Status) string {
	switch s {
	case verify.StatusOK:
		return tagOK
	case verify.StatusMissing:
		return tagMiss
	case verify.StatusDrift:
		return tagDrft
	default:
		return tagFail
	}
}
