package complete

// StringsCompleter completes from a fixed candidate set, in the order the
// values were given.
type StringsCompleter struct {
	Values []string
	// FoldCase makes prefix matching case-insensitive.
	FoldCase bool
}

// NewStringsCompleter returns a case-sensitive StringsCompleter over the
// given values.
func NewStringsCompleter(values ...string) StringsCompleter {
	return StringsCompleter{Values: values}
}

func (c StringsCompleter) Complete(line string, dot int) []Candidate {
	word, _ := CurrentWord(line, dot)
	var cands []Candidate
	for _, v := range c.Values {
		if hasPrefix(v, word, c.FoldCase) {
			cands = append(cands, Candidate{Value: v})
		}
	}
	return cands
}
