package ui

import (
	"strings"
)

// Styling specifies how to change a Style. It can also be applied to a
// Segment or Text.
type Styling interface{ transform(*Style) }

// StyleText returns a new Text with the given Styling's applied. It does not
// modify the given Text.
func StyleText(t Text, ts ...Styling) Text {
	newt := make(Text, len(t))
	for i, seg := range t {
		newt[i] = StyleSegment(seg, ts...)
	}
	return newt
}

// StyleSegment returns a new Segment with the given Styling's applied. It
// does not modify the given Segment.
func StyleSegment(seg *Segment, ts ...Styling) *Segment {
	return &Segment{Text: seg.Text, Style: ApplyStyling(seg.Style, ts...)}
}

// ApplyStyling returns a new Style with the given Styling's applied.
func ApplyStyling(s Style, ts ...Styling) Style {
	for _, t := range ts {
		if t != nil {
			t.transform(&s)
		}
	}
	return s
}

// Stylings joins several transformers into one.
func Stylings(ts ...Styling) Styling { return jointStyling(ts) }

// Common stylings.
var (
	Reset Styling = reset{}

	FgDefault Styling = fg{nil}

	FgBlack   Styling = fg{Black}
	FgRed     Styling = fg{Red}
	FgGreen   Styling = fg{Green}
	FgYellow  Styling = fg{Yellow}
	FgBlue    Styling = fg{Blue}
	FgMagenta Styling = fg{Magenta}
	FgCyan    Styling = fg{Cyan}
	FgWhite   Styling = fg{White}

	FgBrightBlack   Styling = fg{BrightBlack}
	FgBrightRed     Styling = fg{BrightRed}
	FgBrightGreen   Styling = fg{BrightGreen}
	FgBrightYellow  Styling = fg{BrightYellow}
	FgBrightBlue    Styling = fg{BrightBlue}
	FgBrightMagenta Styling = fg{BrightMagenta}
	FgBrightCyan    Styling = fg{BrightCyan}
	FgBrightWhite   Styling = fg{BrightWhite}

	BgDefault Styling = bg{nil}

	BgBlack   Styling = bg{Black}
	BgRed     Styling = bg{Red}
	BgGreen   Styling = bg{Green}
	BgYellow  Styling = bg{Yellow}
	BgBlue    Styling = bg{Blue}
	BgMagenta Styling = bg{Magenta}
	BgCyan    Styling = bg{Cyan}
	BgWhite   Styling = bg{White}

	Bold       Styling = boolOn(accessBold)
	Dim        Styling = boolOn(accessDim)
	Italic     Styling = boolOn(accessItalic)
	Underlined Styling = boolOn(accessUnderlined)
	Blink      Styling = boolOn(accessBlink)
	Inverse    Styling = boolOn(accessInverse)

	NoBold       Styling = boolOff(accessBold)
	NoDim        Styling = boolOff(accessDim)
	NoItalic     Styling = boolOff(accessItalic)
	NoUnderlined Styling = boolOff(accessUnderlined)
	NoBlink      Styling = boolOff(accessBlink)
	NoInverse    Styling = boolOff(accessInverse)
)

// Fg returns a Styling that sets the foreground color.
func Fg(c Color) Styling { return fg{c} }

// Bg returns a Styling that sets the background color.
func Bg(c Color) Styling { return bg{c} }

type reset struct{}
type fg struct{ c Color }
type bg struct{ c Color }
type boolOn func(*Style) *bool
type boolOff func(*Style) *bool
type jointStyling []Styling

func (reset) transform(s *Style)        { *s = Style{} }
func (t fg) transform(s *Style)         { s.Fg = t.c }
func (t bg) transform(s *Style)         { s.Bg = t.c }
func (t boolOn) transform(s *Style)     { *t(s) = true }
func (t boolOff) transform(s *Style)    { *t(s) = false }
func (t jointStyling) transform(s *Style) {
	for _, t := range t {
		t.transform(s)
	}
}

func accessBold(s *Style) *bool       { return &s.Bold }
func accessDim(s *Style) *bool        { return &s.Dim }
func accessItalic(s *Style) *bool     { return &s.Italic }
func accessUnderlined(s *Style) *bool { return &s.Underlined }
func accessBlink(s *Style) *bool      { return &s.Blink }
func accessInverse(s *Style) *bool    { return &s.Inverse }

// ParseStyling parses a text representation of Styling, which are kebab-case
// counterparts of the names of the builtin Styling's. For example,
// ParseStyling("fg-red") is Fg(Red) and ParseStyling("no-inverse") is
// NoInverse. Multiple stylings can be joined by spaces. If the given string is
// invalid, ParseStyling returns nil.
func ParseStyling(s string) Styling {
	if !strings.ContainsRune(s, ' ') {
		return parseOneStyling(s)
	}
	var joint jointStyling
	for _, subs := range strings.Split(s, " ") {
		parsed := parseOneStyling(subs)
		if parsed == nil {
			return nil
		}
		joint = append(joint, parsed)
	}
	return joint
}

var boolFields = map[string]func(*Style) *bool{
	"bold":       accessBold,
	"dim":        accessDim,
	"italic":     accessItalic,
	"underlined": accessUnderlined,
	"blink":      accessBlink,
	"inverse":    accessInverse,
}

func parseOneStyling(name string) Styling {
	switch {
	case name == "default" || name == "fg-default":
		return FgDefault
	case strings.HasPrefix(name, "fg-"):
		if color := parseColor(name[len("fg-"):]); color != nil {
			return fg{color}
		}
	case name == "bg-default":
		return BgDefault
	case strings.HasPrefix(name, "bg-"):
		if color := parseColor(name[len("bg-"):]); color != nil {
			return bg{color}
		}
	case strings.HasPrefix(name, "no-"):
		if f, ok := boolFields[name[len("no-"):]]; ok {
			return boolOff(f)
		}
	case strings.HasPrefix(name, "toggle-"):
		// Not supported; fall through.
	default:
		if f, ok := boolFields[name]; ok {
			return boolOn(f)
		}
		if color := parseColor(name); color != nil {
			return fg{color}
		}
	}
	return nil
}
