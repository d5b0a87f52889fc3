package histutil

import (
	"errors"
	"strconv"
	"strings"

	"src.lined.dev/pkg/store"
)

// ErrNoSuchEvent is returned by Expand when an event designator does not
// resolve to any history entry.
var ErrNoSuchEvent = errors.New("no such history event")

// Expand performs csh-style history expansion on line against the given
// store, supporting the event designators "!!" (last command), "!$" (last
// word of last command), "!n" (command with sequence number n) and
// "!prefix" (most recent command starting with prefix). It reports whether
// any expansion took place. Designators inside single quotes, and "!"
// followed by a blank, "=" or "(", are left alone.
func Expand(line string, s Store) (string, bool, error) {
	if !strings.ContainsRune(line, '!') {
		return line, false, nil
	}
	cmds, err := s.AllCmds()
	if err != nil {
		return line, false, err
	}
	var sb strings.Builder
	expanded := false
	var quote rune
	rs := []rune(line)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			sb.WriteRune(r)
		case r == '\'':
			// Double quotes do not inhibit expansion in csh, but single
			// quotes do.
			quote = r
			sb.WriteRune(r)
		case r == '\\' && i+1 < len(rs) && rs[i+1] == '!':
			sb.WriteRune('!')
			i++
		case r == '!' && i+1 < len(rs) && !inhibitsExpansion(rs[i+1]):
			text, n, err := expandEvent(rs[i+1:], cmds)
			if err != nil {
				return line, false, err
			}
			sb.WriteString(text)
			i += n
			expanded = true
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String(), expanded, nil
}

func inhibitsExpansion(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '=', '(':
		return true
	}
	return false
}

// expandEvent expands the event designator at the head of rs (the text
// after "!"), returning the replacement text and how many runes of rs were
// consumed.
func expandEvent(rs []rune, cmds []store.Cmd) (string, int, error) {
	if len(cmds) == 0 {
		return "", 0, ErrNoSuchEvent
	}
	last := cmds[len(cmds)-1]
	switch rs[0] {
	case '!':
		return last.Text, 1, nil
	case '$':
		return lastWord(last.Text), 1, nil
	}
	if isDigit(rs[0]) {
		i := 1
		for i < len(rs) && isDigit(rs[i]) {
			i++
		}
		n, _ := strconv.Atoi(string(rs[:i]))
		for _, cmd := range cmds {
			if cmd.Seq == n {
				return cmd.Text, i, nil
			}
		}
		return "", 0, ErrNoSuchEvent
	}
	// !prefix: the designator extends to the next word boundary.
	i := 0
	for i < len(rs) && !isWordBreak(rs[i]) {
		i++
	}
	if i == 0 {
		return "", 0, ErrNoSuchEvent
	}
	prefix := string(rs[:i])
	for j := len(cmds) - 1; j >= 0; j-- {
		if strings.HasPrefix(cmds[j].Text, prefix) {
			return cmds[j].Text, i, nil
		}
	}
	return "", 0, ErrNoSuchEvent
}

func lastWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isWordBreak(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\'', '"', '!', ':', ';', '&', '|', '<', '>', '(', ')':
		return true
	}
	return false
}
