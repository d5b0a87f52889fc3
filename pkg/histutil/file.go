package histutil

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Entry is a history entry as stored in a history file.
type Entry struct {
	Text string
	Time time.Time
}

// FileError wraps errors from loading or saving a history file.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s history file %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// LoadFile reads history entries from the named file, one entry per line.
// Each line optionally starts with an "epochmillis:" timestamp prefix.
// A missing file loads as an empty history rather than an error.
func LoadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &FileError{"load", path, err}
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(nil, 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		entries = append(entries, parseEntry(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, &FileError{"load", path, err}
	}
	return entries, nil
}

// SaveFile writes history entries to the named file, replacing its previous
// content. Entries written by SaveFile load back exactly, including entries
// whose text contains newlines.
func SaveFile(path string, entries []Entry) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return &FileError{"save", path, err}
	}
	w := bufio.NewWriter(f)
	for _, e := range entries {
		w.WriteString(formatEntry(e))
		w.WriteByte('\n')
	}
	err = w.Flush()
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return &FileError{"save", path, err}
	}
	return nil
}

// appendFile appends a single entry to the named file, creating it if needed.
func appendFile(path string, e Entry) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return &FileError{"save", path, err}
	}
	_, err = f.WriteString(formatEntry(e) + "\n")
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return &FileError{"save", path, err}
	}
	return nil
}

func parseEntry(line string) Entry {
	if i := strings.IndexByte(line, ':'); i > 0 {
		if millis, err := strconv.ParseInt(line[:i], 10, 64); err == nil {
			return Entry{unescapeText(line[i+1:]), time.UnixMilli(millis)}
		}
	}
	return Entry{Text: unescapeText(line)}
}

func formatEntry(e Entry) string {
	t := e.Time
	if t.IsZero() {
		t = time.Now()
	}
	return strconv.FormatInt(t.UnixMilli(), 10) + ":" + escapeText(e.Text)
}

// escapeText escapes backslashes and line terminators so that each entry
// occupies exactly one line of the file.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func unescapeText(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(s[i])
			}
		} else {
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

var textEscaper = strings.NewReplacer("\\", "\\\\", "\n", "\\n", "\r", "\\r")
