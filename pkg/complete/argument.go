package complete

// ArgumentCompleter delegates to a positional list of completers keyed by
// the index of the token under the cursor. If the cursor's token index is
// beyond the list, the last completer repeats, so a trailing None marks the
// point where completion stops.
type ArgumentCompleter struct {
	Args []Completer
	// Strict requires every token before the cursor to be a valid
	// completion of its positional completer; otherwise no candidates are
	// produced.
	Strict bool
}

// NewArgumentCompleter returns a non-strict ArgumentCompleter.
func NewArgumentCompleter(args ...Completer) ArgumentCompleter {
	return ArgumentCompleter{Args: args}
}

func (c ArgumentCompleter) Complete(line string, dot int) []Candidate {
	if len(c.Args) == 0 {
		return nil
	}
	if dot > len(line) {
		dot = len(line)
	}
	words, index := tokenize(line, dot)
	if c.Strict && !c.validPrefixWords(words, index) {
		return nil
	}
	arg := c.completerAt(index)
	word, _ := CurrentWord(line, dot)
	return arg.Complete(word, len(word))
}

// completerAt resolves the completer for the given token index, repeating
// the last completer for indices beyond the list.
func (c ArgumentCompleter) completerAt(index int) Completer {
	if index < len(c.Args) {
		return c.Args[index]
	}
	return c.Args[len(c.Args)-1]
}

// validPrefixWords reports whether every completed word before index is an
// exact candidate of its positional completer.
func (c ArgumentCompleter) validPrefixWords(words []string, index int) bool {
	for i := 0; i < index && i < len(words); i++ {
		word := words[i]
		ok := false
		for _, cand := range c.completerAt(i).Complete(word, len(word)) {
			if cand.Value == word {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// tokenize splits line into whitespace-delimited tokens and returns them
// along with the index of the token containing dot. A dot on whitespace
// after the last token counts as the start of a new, empty token.
func tokenize(line string, dot int) (words []string, index int) {
	index = -1
	i := 0
	for i < len(line) {
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i == len(line) {
			break
		}
		start := i
		for i < len(line) && !isSpace(line[i]) {
			i++
		}
		if index < 0 && dot >= start && dot <= i {
			index = len(words)
		}
		words = append(words, line[start:i])
	}
	if index < 0 {
		index = len(words)
	}
	return words, index
}
