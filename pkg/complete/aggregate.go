package complete

// AggregateCompleter concatenates the candidates of several completers,
// preserving each child's internal order. Candidates with a Value already
// produced by an earlier child are dropped.
type AggregateCompleter struct {
	Completers []Completer
}

// NewAggregateCompleter returns an AggregateCompleter over the given
// completers.
func NewAggregateCompleter(completers ...Completer) AggregateCompleter {
	return AggregateCompleter{completers}
}

func (c AggregateCompleter) Complete(line string, dot int) []Candidate {
	var cands []Candidate
	seen := make(map[string]bool)
	for _, child := range c.Completers {
		for _, cand := range child.Complete(line, dot) {
			if seen[cand.Value] {
				continue
			}
			seen[cand.Value] = true
			cands = append(cands, cand)
		}
	}
	return cands
}
