package term

import (
	"strings"
	"testing"

	"src.lined.dev/pkg/ui"
)

func TestWriter(t *testing.T) {
	sb := &strings.Builder{}
	testOutput := func(want string) {
		t.Helper()
		if sb.String() != want {
			t.Errorf("got %q, want %q", sb.String(), want)
		}
		sb.Reset()
	}

	w := NewWriter(sb)
	w.UpdateBuffer(
		ui.T("note 1"),
		NewBufferBuilder(10).WriteString("line 1").SetDotHere().Buffer(),
		false)
	testOutput(
		hideCursor + "\r" +
			"\033[?7hnote 1\033[m\n\033[?7l" +
			"line 1" + "\r\033[6C" + showCursor)

	// Writing an identical buffer with no notes results in no update at all,
	// except for hiding and showing the cursor.
	w.UpdateBuffer(
		nil,
		NewBufferBuilder(10).WriteString("line 1").SetDotHere().Buffer(),
		false)
	testOutput(hideCursor + "\r" + "\r\033[6C" + showCursor)
}
