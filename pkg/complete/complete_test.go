package complete

import (
	"testing"

	"src.lined.dev/pkg/tt"
)

func TestCurrentWord(t *testing.T) {
	tt.Test(t, tt.Fn("CurrentWord", CurrentWord), tt.Table{
		tt.Args("", 0).Rets("", 0),
		tt.Args("echo", 4).Rets("echo", 0),
		tt.Args("echo", 2).Rets("ec", 0),
		tt.Args("echo foo", 8).Rets("foo", 5),
		tt.Args("echo ", 5).Rets("", 5),
		tt.Args("a\tb", 3).Rets("b", 2),
		// Dot beyond the line clamps.
		tt.Args("ab", 10).Rets("ab", 0),
	})
}

func TestStringsCompleter(t *testing.T) {
	c := NewStringsCompleter("add", "remove", "ADDR")
	tt.Test(t, tt.Fn("Complete", c.Complete), tt.Table{
		// Order is construction order, not sorted.
		tt.Args("", 0).Rets([]Candidate{
			{Value: "add"}, {Value: "remove"}, {Value: "ADDR"}}),
		tt.Args("ad", 2).Rets([]Candidate{{Value: "add"}}),
		tt.Args("x", 1).Rets([]Candidate(nil)),
		// Only the word under the cursor matters.
		tt.Args("cmd ad", 6).Rets([]Candidate{{Value: "add"}}),
	})

	ci := StringsCompleter{Values: []string{"add", "ADDR"}, FoldCase: true}
	tt.Test(t, tt.Fn("Complete", ci.Complete), tt.Table{
		tt.Args("AD", 2).Rets([]Candidate{{Value: "add"}, {Value: "ADDR"}}),
	})
}

func TestAggregateCompleter(t *testing.T) {
	c := NewAggregateCompleter(
		NewStringsCompleter("help", "exit"),
		NewStringsCompleter("help", "open"))
	// Duplicate "help" appears once, in first-source order.
	tt.Test(t, tt.Fn("Complete", c.Complete), tt.Table{
		tt.Args("", 0).Rets([]Candidate{
			{Value: "help"}, {Value: "exit"}, {Value: "open"}}),
		tt.Args("he", 2).Rets([]Candidate{{Value: "help"}}),
	})
}

func TestArgumentCompleter(t *testing.T) {
	c := NewArgumentCompleter(
		NewStringsCompleter("add", "remove"),
		NewStringsCompleter("file1", "file2"),
		None)
	tt.Test(t, tt.Fn("Complete", c.Complete), tt.Table{
		// Cursor in token 0.
		tt.Args("", 0).Rets([]Candidate{{Value: "add"}, {Value: "remove"}}),
		tt.Args("ad", 2).Rets([]Candidate{{Value: "add"}}),
		// Cursor in token 1.
		tt.Args("add file", 8).Rets([]Candidate{
			{Value: "file1"}, {Value: "file2"}}),
		tt.Args("add ", 4).Rets([]Candidate{
			{Value: "file1"}, {Value: "file2"}}),
		// Cursor in token 2: the None marker means completion is not
		// defined here.
		tt.Args("add file1 ", 10).Rets([]Candidate(nil)),
		tt.Args("add file1 x", 11).Rets([]Candidate(nil)),
	})
}

func TestArgumentCompleter_LastCompleterRepeats(t *testing.T) {
	c := NewArgumentCompleter(
		NewStringsCompleter("cp"),
		NewStringsCompleter("a", "b"))
	tt.Test(t, tt.Fn("Complete", c.Complete), tt.Table{
		tt.Args("cp a ", 5).Rets([]Candidate{{Value: "a"}, {Value: "b"}}),
		tt.Args("cp a b ", 7).Rets([]Candidate{{Value: "a"}, {Value: "b"}}),
	})
}

func TestArgumentCompleter_Strict(t *testing.T) {
	c := ArgumentCompleter{
		Args: []Completer{
			NewStringsCompleter("add", "remove"),
			NewStringsCompleter("file1", "file2"),
		},
		Strict: true,
	}
	tt.Test(t, tt.Fn("Complete", c.Complete), tt.Table{
		// Earlier word is a valid completion.
		tt.Args("add fi", 6).Rets([]Candidate{
			{Value: "file1"}, {Value: "file2"}}),
		// Earlier word is not.
		tt.Args("bogus fi", 8).Rets([]Candidate(nil)),
	})
}

func TestNone(t *testing.T) {
	if cands := None.Complete("anything", 8); cands != nil {
		t.Errorf("None.Complete -> %v, want nil", cands)
	}
}
