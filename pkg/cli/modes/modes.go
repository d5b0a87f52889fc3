// Package modes implements modes of the line editor, such as the
// completion menu and history walking. Modes are widgets pushed onto the
// addon stack of an App.
package modes

import (
	"strings"

	"src.lined.dev/pkg/ui"
)

// Returns the text for a modeline.
func modeLine(content string, space bool) ui.Text {
	t := ui.T(content, ui.Bold, ui.FgWhite, ui.BgMagenta)
	if space {
		t = ui.Concat(t, ui.T(" "))
	}
	return t
}

func modePrompt(content string, space bool) func() ui.Text {
	p := modeLine(content, space)
	return func() ui.Text { return p }
}

// FilterSpec specifies the configuration for the filter in modes that
// support filtering.
type FilterSpec struct {
	// Called with the filter text to get the filter predicate. If nil, the
	// predicate performs prefix matching.
	Maker func(string) func(string) bool
	// Highlighter for the filter. If nil, the filter is not highlighted.
	Highlighter func(string) (ui.Text, []ui.Text)
}

func (f FilterSpec) makePredicate(p string) func(string) bool {
	maker := f.Maker
	if maker == nil {
		maker = func(p string) func(string) bool {
			return func(s string) bool { return strings.HasPrefix(s, p) }
		}
	}
	return maker(p)
}
