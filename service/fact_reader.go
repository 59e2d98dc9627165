package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/mockscn/domain"
)

// FactReaderImpl implements the domain.MockFactReader interface
type FactReaderImpl struct{}

// NewFactReader creates a new fact reader service
func NewFactReader() *FactReaderImpl {
	return &FactReaderImpl{}
}

// factDocument is the object form of a fact file: {"mocks": [...]}
type factDocument struct {
	Mocks []domain.MockEntity `json:"mocks" yaml:"mocks"`
}

// CollectFactFiles finds all fact documents in the given paths.
// Explicitly named files are only checked against exclude patterns.
func (f *FactReaderImpl) CollectFactFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if info.IsDir() {
			dirFiles, err := f.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			for _, file := range dirFiles {
				add(file)
			}
			continue
		}

		if f.IsFactFile(path) && !matchesAny(path, excludePatterns) {
			add(path)
		}
	}

	return files, nil
}

// IsFactFile checks whether the file has a supported document extension
func (f *FactReaderImpl) IsFactFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// ReadFactFile decodes the mock entities of one fact document. Entities
// without a file path inherit the path of the document itself.
func (f *FactReaderImpl) ReadFactFile(path string) ([]domain.MockEntity, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}

	var entities []domain.MockEntity
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		entities, err = decodeJSONFacts(content)
	case ".yaml", ".yml":
		entities, err = decodeYAMLFacts(content)
	default:
		return nil, domain.NewUnsupportedFormatError(filepath.Ext(path))
	}
	if err != nil {
		return nil, domain.NewParseError(path, err)
	}

	for i := range entities {
		if entities[i].FilePath == "" {
			entities[i].FilePath = path
		}
	}
	return entities, nil
}

func decodeJSONFacts(content []byte) ([]domain.MockEntity, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var entities []domain.MockEntity
		if err := json.Unmarshal(trimmed, &entities); err != nil {
			return nil, err
		}
		return entities, nil
	}

	var doc factDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.Mocks, nil
}

func decodeYAMLFacts(content []byte) ([]domain.MockEntity, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var entities []domain.MockEntity
		if err := node.Decode(&entities); err != nil {
			return nil, err
		}
		return entities, nil
	case yaml.MappingNode:
		var doc factDocument
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Mocks, nil
	default:
		return nil, fmt.Errorf("expected a list of mocks or a mapping with a mocks key at line %d", node.Line)
	}
}

// collectFromDirectory collects fact documents from a directory
func (f *FactReaderImpl) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, the rest of the tree is still walked
			return nil
		}

		if d.IsDir() {
			if path == dirPath {
				return nil
			}
			if !recursive || f.shouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") || !f.IsFactFile(path) {
			return nil
		}

		rel, relErr := filepath.Rel(dirPath, path)
		if relErr != nil {
			rel = path
		}
		if f.shouldIncludeFile(rel, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(dirPath, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return files, nil
}

// shouldIncludeFile checks a path relative to the walked root against the patterns
func (f *FactReaderImpl) shouldIncludeFile(path string, includePatterns, excludePatterns []string) bool {
	if matchesAny(path, excludePatterns) {
		return false
	}
	if len(includePatterns) == 0 {
		return true
	}
	return matchesAny(path, includePatterns)
}

// matchesAny matches both the slash-separated path and its base name
func matchesAny(path string, patterns []string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if matched, _ := doublestar.Match(pattern, slashed); matched {
			return true
		}
		if matched, _ := doublestar.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// shouldSkipDirectory checks if a directory should be skipped entirely
func (f *FactReaderImpl) shouldSkipDirectory(dirName string) bool {
	if strings.HasPrefix(dirName, ".") {
		return true
	}
	switch dirName {
	case "node_modules", "build", "target":
		return true
	default:
		return false
	}
}

// ValidatePaths validates that all provided paths exist and are accessible
func (f *FactReaderImpl) ValidatePaths(paths []string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return domain.NewFileNotFoundError(path, err)
			}
			return domain.NewInvalidInputError(fmt.Sprintf("cannot access path: %s", path), err)
		}
	}
	return nil
}
