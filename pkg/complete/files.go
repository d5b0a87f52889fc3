package complete

import (
	"os"
	"path/filepath"

	"src.lined.dev/pkg/logutil"
)

var logger = logutil.GetLogger("[complete] ")

// FilesCompleter completes names of entries directly under a root
// directory. Directory entries get a trailing path separator appended to
// invite completing inside them. Candidates are ordered lexicographically.
type FilesCompleter struct {
	// Root is the directory whose entries are listed. An empty Root lists
	// the working directory.
	Root string
	// Pattern is an optional glob pattern (in filepath.Match syntax) that
	// entry names must match.
	Pattern string
	// OnlyDirs restricts candidates to directories.
	OnlyDirs bool
}

// NewFilesCompleter returns a FilesCompleter over all entries under root.
func NewFilesCompleter(root string) FilesCompleter {
	return FilesCompleter{Root: root}
}

// NewDirsCompleter returns a FilesCompleter that only completes directories
// under root.
func NewDirsCompleter(root string) FilesCompleter {
	return FilesCompleter{Root: root, OnlyDirs: true}
}

func (c FilesCompleter) Complete(line string, dot int) []Candidate {
	root := c.Root
	if root == "" {
		root = "."
	}
	// Listing failures degrade to no candidates; a broken completer must
	// not break the session.
	entries, err := os.ReadDir(root)
	if err != nil {
		logger.Println("list", root, "error:", err)
		return nil
	}
	word, _ := CurrentWord(line, dot)
	var cands []Candidate
	for _, entry := range entries {
		name := entry.Name()
		if !hasPrefix(name, word, false) {
			continue
		}
		if c.Pattern != "" {
			matched, err := filepath.Match(c.Pattern, name)
			if err != nil || !matched {
				continue
			}
		}
		isDir := entry.IsDir()
		if !isDir && entry.Type()&os.ModeSymlink != 0 {
			// Follow symlinks so that links to directories also invite
			// further completion.
			if info, err := os.Stat(filepath.Join(root, name)); err == nil {
				isDir = info.IsDir()
			}
		}
		if c.OnlyDirs && !isDir {
			continue
		}
		if isDir {
			cands = append(cands,
				Candidate{Value: name + string(filepath.Separator)})
		} else {
			cands = append(cands, Candidate{Value: name})
		}
	}
	return cands
}
