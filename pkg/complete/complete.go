// Package complete implements the completion protocol and a set of
// completion strategies.
//
// A completer inspects the current line and cursor position and produces an
// ordered list of candidates for the word under the cursor. Completers never
// mutate the line; they may consult external read-only state such as the
// filesystem.
package complete

import "strings"

// Candidate is a completion candidate for the word under the cursor.
type Candidate struct {
	// Value is the text that replaces the current word when the candidate
	// is accepted.
	Value string
	// Display is the form shown in the completion menu. An empty Display
	// means Value is shown.
	Display string
	// Partial marks a candidate that does not finish the current word, so
	// accepting it should invite further completion instead of closing the
	// menu for good.
	Partial bool
}

// DisplayText returns the text to show for the candidate in a menu.
func (c Candidate) DisplayText() string {
	if c.Display != "" {
		return c.Display
	}
	return c.Value
}

// Completer is the interface of completion strategies.
type Completer interface {
	// Complete returns candidates for the word under the cursor. The dot
	// argument is a byte offset into line. The returned slice may be nil or
	// empty if nothing completes here.
	Complete(line string, dot int) []Candidate
}

// None is a Completer that always returns no candidates. Used as the last
// element of an ArgumentCompleter it marks the position where completion
// stops being defined.
var None Completer = noneCompleter{}

type noneCompleter struct{}

func (noneCompleter) Complete(string, int) []Candidate { return nil }

// CurrentWord returns the whitespace-delimited word that ends at dot, along
// with the byte offset where it starts. The word is what candidates are
// matched against and what accepting a candidate replaces.
func CurrentWord(line string, dot int) (word string, start int) {
	if dot > len(line) {
		dot = len(line)
	}
	start = dot
	for start > 0 && !isSpace(line[start-1]) {
		start--
	}
	return line[start:dot], start
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

// hasPrefix is strings.HasPrefix with optional case folding.
func hasPrefix(s, prefix string, foldCase bool) bool {
	if foldCase {
		return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
	}
	return strings.HasPrefix(s, prefix)
}
