package format

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed languages.yml
var embeddedLanguageDefinitions []byte

// LanguageDefinition names a language and the file extensions and names that select it.
type LanguageDefinition struct {
	Name       string   `yaml:"name"`
	Extensions []string `yaml:"extensions"`
	Filenames  []string `yaml:"filenames"`
}

// LanguageTable maps file extensions and exact file names to language names.
type LanguageTable struct {
	extensionMap map[string]string
	filenameMap  map[string]string
}

// DefaultLanguageTable parses the built-in language definitions.
func DefaultLanguageTable() (*LanguageTable, error) {
	return ParseLanguageTable(embeddedLanguageDefinitions)
}

// ParseLanguageTable builds a LanguageTable from a YAML list of LanguageDefinition entries.
func ParseLanguageTable(document []byte) (*LanguageTable, error) {
	var definitions []LanguageDefinition
	if decodeError := yaml.Unmarshal(document, &definitions); decodeError != nil {
		return nil, fmt.Errorf("parse language definitions: %w", decodeError)
	}

	table := &LanguageTable{
		extensionMap: make(map[string]string),
		filenameMap:  make(map[string]string),
	}
	for _, definition := range definitions {
		if definition.Name == "" {
			return nil, fmt.Errorf("language definition without a name")
		}
		for _, extension := range definition.Extensions {
			normalized := normalizeExtension(extension)
			if _, claimed := table.extensionMap[normalized]; !claimed {
				table.extensionMap[normalized] = definition.Name
			}
		}
		for _, filename := range definition.Filenames {
			if _, claimed := table.filenameMap[filename]; !claimed {
				table.filenameMap[filename] = definition.Name
			}
		}
	}
	return table, nil
}

// LanguageForFile returns the language name for filePath, or "" when unknown.
// Exact file names take precedence over extensions.
func (table *LanguageTable) LanguageForFile(filePath string) string {
	if table == nil {
		return ""
	}
	baseName := filepath.Base(filePath)
	if language, ok := table.filenameMap[baseName]; ok {
		return language
	}
	extension := strings.ToLower(filepath.Ext(baseName))
	if extension == "" {
		return ""
	}
	return table.extensionMap[extension]
}

func normalizeExtension(extension string) string {
	lowered := strings.ToLower(strings.TrimSpace(extension))
	if lowered != "" && !strings.HasPrefix(lowered, ".") {
		lowered = "." + lowered
	}
	return lowered
}
