package airyc

import (
	"fmt"
	"os"
	"path/filepath"
)

// ImportLoader resolves an import path relative to the importing
// file and supplies its raw bytes. Two implementations exist: one
// backed by the filesystem for the CLI driver, one backed by an
// in-memory map for tests that want to describe a module graph
// without touching disk (§4.3 "Imports are resolved relative to the
// importing file").
type ImportLoader interface {
	GetPath(importPath, parentPath string) (string, error)
	GetContent(path string) ([]byte, error)
}

type RelativeImportLoader struct{}

func NewRelativeImportLoader() *RelativeImportLoader {
	return &RelativeImportLoader{}
}

func (l *RelativeImportLoader) GetPath(importPath, parentPath string) (string, error) {
	return getRelativePath(importPath, parentPath)
}

func (l *RelativeImportLoader) GetContent(path string) ([]byte, error) {
	return os.ReadFile(path)
}

type InMemoryImportLoader struct{ files map[string][]byte }

func NewInMemoryImportLoader() *InMemoryImportLoader {
	return &InMemoryImportLoader{files: map[string][]byte{}}
}

func (l *InMemoryImportLoader) Add(path string, content []byte) {
	l.files[path] = content
}

func (l *InMemoryImportLoader) GetPath(importPath, parentPath string) (string, error) {
	return getRelativePath(importPath, parentPath)
}

func (l *InMemoryImportLoader) GetContent(path string) ([]byte, error) {
	b, ok := l.files[path]
	if !ok {
		return nil, fmt.Errorf("import not found: %s", path)
	}
	return b, nil
}

func getRelativePath(importPath, parentPath string) (string, error) {
	if importPath == parentPath {
		return importPath, nil
	}
	if len(importPath) < 4 || importPath[:2] != "./" {
		return "", fmt.Errorf("import path isn't relative to its importer: %s", importPath)
	}
	return filepath.Join(filepath.Dir(parentPath), importPath[2:]), nil
}
