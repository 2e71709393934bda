package config

import (
	"fmt"
	"path/filepath"

	"tablereport/internal/suggest"
)

// resolveExternalPath returns path as-is if absolute, otherwise joins it with projectRoot.
func resolveExternalPath(projectRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(projectRoot, path)
}

// SuggestionTable builds the effective suggestion table: the built-in entries,
// then every suggestion file in order, then the inline overrides. A code may
// only be defined once across the files and the inline block.
func (c Config) SuggestionTable(projectRoot string) (suggest.Table, error) {
	// Track where each code was defined for duplicate detection.
	sources := make(map[string]string, len(c.Suggestions.Errors))
	for code := range c.Suggestions.Errors {
		sources[code] = "inline config"
	}

	overrides := make(map[string]string)
	for _, relPath := range c.Suggestions.Files {
		entries, err := suggest.LoadFile(resolveExternalPath(projectRoot, relPath))
		if err != nil {
			return suggest.Table{}, fmt.Errorf("load suggestion file %q: %w", relPath, err)
		}

		for code, body := range entries {
			if existing, ok := sources[code]; ok {
				return suggest.Table{}, fmt.Errorf("suggestion %q defined in both %s and %q", code, existing, relPath)
			}
			sources[code] = fmt.Sprintf("%q", relPath)
			overrides[code] = body
		}
	}
	for code, body := range c.Suggestions.Errors {
		overrides[code] = body
	}

	return suggest.Default().Merge(c.Suggestions.Header, overrides), nil
}
