package ui

import (
	"fmt"
	"strings"
)

// Color represents a color.
type Color interface {
	fgSGR() string
	bgSGR() string
	String() string
}

// Builtin ANSI colors.
var (
	Black   Color = ansiColor(0)
	Red     Color = ansiColor(1)
	Green   Color = ansiColor(2)
	Yellow  Color = ansiColor(3)
	Blue    Color = ansiColor(4)
	Magenta Color = ansiColor(5)
	Cyan    Color = ansiColor(6)
	White   Color = ansiColor(7)

	BrightBlack   Color = ansiBrightColor(0)
	BrightRed     Color = ansiBrightColor(1)
	BrightGreen   Color = ansiBrightColor(2)
	BrightYellow  Color = ansiBrightColor(3)
	BrightBlue    Color = ansiBrightColor(4)
	BrightMagenta Color = ansiBrightColor(5)
	BrightCyan    Color = ansiBrightColor(6)
	BrightWhite   Color = ansiBrightColor(7)
)

var colorNames = []string{
	"black", "red", "green", "yellow",
	"blue", "magenta", "cyan", "white",
}

var colorByName = map[string]Color{
	"black":   Black,
	"red":     Red,
	"green":   Green,
	"yellow":  Yellow,
	"blue":    Blue,
	"magenta": Magenta,
	"cyan":    Cyan,
	"white":   White,

	"bright-black":   BrightBlack,
	"bright-red":     BrightRed,
	"bright-green":   BrightGreen,
	"bright-yellow":  BrightYellow,
	"bright-blue":    BrightBlue,
	"bright-magenta": BrightMagenta,
	"bright-cyan":    BrightCyan,
	"bright-white":   BrightWhite,
}

// ansiColor represents a standard ANSI color.
type ansiColor uint8

func (c ansiColor) fgSGR() string  { return fmt.Sprint(30 + int(c)) }
func (c ansiColor) bgSGR() string  { return fmt.Sprint(40 + int(c)) }
func (c ansiColor) String() string { return colorNames[c] }

// ansiBrightColor represents a bright ANSI color.
type ansiBrightColor uint8

func (c ansiBrightColor) fgSGR() string  { return fmt.Sprint(90 + int(c)) }
func (c ansiBrightColor) bgSGR() string  { return fmt.Sprint(100 + int(c)) }
func (c ansiBrightColor) String() string { return "bright-" + colorNames[c] }

// XTerm256Color represents a color in the xterm 256-color palette.
type XTerm256Color uint8

func (c XTerm256Color) fgSGR() string  { return "38;5;" + fmt.Sprint(uint8(c)) }
func (c XTerm256Color) bgSGR() string  { return "48;5;" + fmt.Sprint(uint8(c)) }
func (c XTerm256Color) String() string { return "color" + fmt.Sprint(uint8(c)) }

// TrueColor represents a 24-bit RGB color.
type TrueColor struct {
	R, G, B uint8
}

func (c TrueColor) fgSGR() string { return "38;2;" + c.rgbSGR() }
func (c TrueColor) bgSGR() string { return "48;2;" + c.rgbSGR() }

func (c TrueColor) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c TrueColor) rgbSGR() string {
	return fmt.Sprintf("%d;%d;%d", c.R, c.G, c.B)
}

func parseColor(name string) Color {
	if color, ok := colorByName[name]; ok {
		return color
	}
	if strings.HasPrefix(name, "color") {
		var n uint8
		if _, err := fmt.Sscanf(name, "color%d", &n); err == nil {
			return XTerm256Color(n)
		}
	} else if strings.HasPrefix(name, "#") && len(name) == 7 {
		var r, g, b uint8
		if _, err := fmt.Sscanf(name, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return TrueColor{r, g, b}
		}
	}
	return nil
}
