package seedcompile

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileLoader is the FileAccess-shaped interface spec.md §5 reserves to the
// placement driver: the compiler never touches a filesystem directly, it
// only asks the loader for a named snippet's source text.
type FileLoader interface {
	ReadSnippet(name string) (string, error)
}

// MapLoader is a FileLoader backed by an in-memory map, useful for tests and
// for callers that have already gathered snippet sources some other way.
type MapLoader map[string]string

func (m MapLoader) ReadSnippet(name string) (string, error) {
	src, ok := m[name]
	if !ok {
		return "", &SnippetNotFoundError{Name: name}
	}
	return src, nil
}

// SnippetNotFoundError reports a !include/!use naming a snippet the loader
// doesn't have.
type SnippetNotFoundError struct {
	Name string
}

func (e *SnippetNotFoundError) Error() string {
	return "seedcompile: snippet not found: " + e.Name
}

// DirLoader is a FileLoader backed by a directory of name+".wotws" files on
// disk, the on-disk counterpart cmd/seedgen hands the compiler so that the
// compiler itself (per spec.md §5) never calls os.ReadFile directly.
type DirLoader struct {
	Root string
}

// ReadSnippet reads Root/name.wotws.
func (d DirLoader) ReadSnippet(name string) (string, error) {
	path := filepath.Join(d.Root, name+".wotws")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &SnippetNotFoundError{Name: name}
		}
		return "", fmt.Errorf("seedcompile: read %s: %w", path, err)
	}
	return string(data), nil
}
