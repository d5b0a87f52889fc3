package tk

import (
	"src.lined.dev/pkg/term"
	"src.lined.dev/pkg/ui"
)

// View model, calculated from State and used for rendering.
type view struct {
	prompt     ui.Text
	rprompt    ui.Text
	contPrompt func(line int) ui.Text
	code       ui.Text
	dot        int
	tips       []ui.Text
}

var stylingForPending = ui.Underlined

func getView(w *codeArea) *view {
	s := w.CopyState()
	code, pFrom, pTo := patchPending(s.Buffer, s.Pending)
	styledCode, tips := w.Highlighter(code.Content)
	if s.HideTips {
		tips = nil
	}
	if pFrom < pTo {
		// Apply stylingForPending to [pFrom, pTo)
		parts := styledCode.Partition(pFrom, pTo)
		pending := ui.StyleText(parts[1], stylingForPending)
		styledCode = ui.Concat(parts[0], pending, parts[2])
	}

	var rprompt ui.Text
	if !s.HideRPrompt {
		rprompt = w.RPrompt()
	}

	return &view{w.Prompt(), rprompt, w.ContPrompt, styledCode, code.Dot, tips}
}

func patchPending(c CodeBuffer, p PendingCode) (CodeBuffer, int, int) {
	if p.From > p.To || p.From < 0 || p.To > len(c.Content) {
		// Invalid Pending.
		return c, 0, 0
	}
	if p.From == p.To && p.Content == "" {
		return c, 0, 0
	}
	newContent := c.Content[:p.From] + p.Content + c.Content[p.To:]
	newDot := 0
	switch {
	case c.Dot < p.From:
		// Dot is before the replaced region. Keep it.
		newDot = c.Dot
	case c.Dot >= p.From && c.Dot < p.To:
		// Dot is within the replaced region. Place the dot at the end.
		newDot = p.From + len(p.Content)
	case c.Dot >= p.To:
		// Dot is after the replaced region. Maintain the relative position
		// of the dot.
		newDot = c.Dot - (p.To - p.From) + len(p.Content)
	}
	return CodeBuffer{Content: newContent, Dot: newDot}, p.From, p.From + len(p.Content)
}

func renderView(v *view, bb *term.BufferBuilder) {
	bb.EagerWrap = true

	bb.WriteStyled(v.prompt)
	if len(bb.Lines) == 1 && bb.Col*2 < bb.Width {
		bb.Indent = bb.Col
	}

	parts := v.code.Partition(v.dot)
	line := 0
	writeCode(bb, parts[0], v.contPrompt, &line)
	bb.SetDotHere()
	writeCode(bb, parts[1], v.contPrompt, &line)

	bb.EagerWrap = false
	bb.Indent = 0

	// Handle rprompts with newlines.
	if rpromptWidth := v.rprompt.Wcswidth(); rpromptWidth > 0 {
		padding := bb.Width - bb.Col - rpromptWidth
		if padding >= 1 {
			bb.WriteSpaces(padding)
			bb.WriteStyled(v.rprompt)
		}
	}

	for _, tip := range v.tips {
		bb.Newline()
		bb.WriteStyled(tip)
	}
}

// writeCode writes styled code, prefixing each continuation line with the
// continuation prompt if one is configured. The line counter is shared
// between the two halves of the code around the dot.
func writeCode(bb *term.BufferBuilder, t ui.Text, contPrompt func(int) ui.Text, line *int) {
	if contPrompt == nil {
		bb.WriteStyled(t)
		return
	}
	for i, chunk := range t.SplitByRune('\n') {
		if i > 0 {
			savedIndent := bb.Indent
			bb.Indent = 0
			bb.Newline()
			*line++
			bb.WriteStyled(contPrompt(*line))
			bb.Indent = savedIndent
		}
		bb.WriteStyled(chunk)
	}
}

func truncateToHeight(b *term.Buffer, maxHeight int) {
	switch {
	case len(b.Lines) <= maxHeight:
		// We can show all lines; do nothing.
	case b.Dot.Line < maxHeight:
		// We can show all lines before the cursor, and as many lines after
		// the cursor as we can, adding up to maxHeight.
		b.TrimToLines(0, maxHeight)
	default:
		// We can show maxHeight lines before and including the cursor line.
		b.TrimToLines(b.Dot.Line-maxHeight+1, b.Dot.Line+1)
	}
}
