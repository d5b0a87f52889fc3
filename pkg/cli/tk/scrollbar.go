package tk

import (
	"src.lined.dev/pkg/term"
	"src.lined.dev/pkg/ui"
)

// vScrollbarContainer is a Renderer consisting of content and a vertical
// scrollbar on the right.
type vScrollbarContainer struct {
	content   Renderer
	scrollbar vScrollbar
}

func (v vScrollbarContainer) Render(width, height int) *term.Buffer {
	buf := v.content.Render(width-1, height)
	buf.ExtendRight(v.scrollbar.Render(1, height), 1)
	return buf
}

// vScrollbar is a Renderer for a vertical scrollbar.
type vScrollbar struct {
	total int
	low   int
	high  int
}

var (
	vscrollbarThumb  = ui.T(" ", ui.FgMagenta, ui.Inverse)
	vscrollbarTrough = ui.T("│", ui.FgMagenta)
)

func (v vScrollbar) Render(width, height int) *term.Buffer {
	posLow, posHigh := findScrollInterval(v.total, v.low, v.high, height)
	bb := term.NewBufferBuilder(1)
	for i := 0; i < height; i++ {
		if i > 0 {
			bb.Newline()
		}
		if posLow <= i && i < posHigh {
			bb.WriteStyled(vscrollbarThumb)
		} else {
			bb.WriteStyled(vscrollbarTrough)
		}
	}
	return bb.Buffer()
}

// hScrollbar is a Renderer for a horizontal scrollbar.
type hScrollbar struct {
	total int
	low   int
	high  int
}

var (
	hscrollbarThumb  = ui.T(" ", ui.FgMagenta, ui.Inverse)
	hscrollbarTrough = ui.T("━", ui.FgMagenta)
)

func (h hScrollbar) Render(width, height int) *term.Buffer {
	posLow, posHigh := findScrollInterval(h.total, h.low, h.high, width)
	bb := term.NewBufferBuilder(width)
	for i := 0; i < width; i++ {
		if posLow <= i && i < posHigh {
			bb.WriteStyled(hscrollbarThumb)
		} else {
			bb.WriteStyled(hscrollbarTrough)
		}
	}
	return bb.Buffer()
}

func findScrollInterval(n, low, high, height int) (int, int) {
	f := func(i int) int {
		return int(float64(i)/float64(n)*float64(height) + 0.5)
	}
	scrollLow, scrollHigh := f(low), f(high)
	if scrollLow == scrollHigh {
		if scrollHigh == height {
			scrollLow--
		} else {
			scrollHigh++
		}
	}
	return scrollLow, scrollHigh
}
