package config

import (
	"fmt"
	"os"
	"sort"

	"tablereport/internal/suggest"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

// ValidateStrict runs all strict validations against the config and returns
// structured results.
func (c Config) ValidateStrict(projectRoot string) []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateSuggestionFiles(projectRoot)...)
	results = append(results, c.validateDisplay()...)
	results = append(results, c.validateWatch()...)
	results = append(results, c.validateOverrides()...)
	return results
}

func (c Config) validateSuggestionFiles(projectRoot string) []ValidationResult {
	var results []ValidationResult
	for _, path := range c.Suggestions.Files {
		if _, err := os.Stat(resolveExternalPath(projectRoot, path)); err != nil {
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("suggestion file %q not found", path),
			})
		}
	}
	return results
}

func (c Config) validateDisplay() []ValidationResult {
	var results []ValidationResult
	if c.Display.MaxRows < 0 {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("display.max_rows must be >= 0, got %d", c.Display.MaxRows),
		})
	}
	if c.Display.MaxMessages < 0 {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("display.max_messages must be >= 0, got %d", c.Display.MaxMessages),
		})
	}
	return results
}

func (c Config) validateWatch() []ValidationResult {
	if c.Watch.DebounceMS >= 0 {
		return nil
	}
	return []ValidationResult{{
		Level:   "error",
		Message: fmt.Sprintf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS),
	}}
}

// validateOverrides warns about inline entries for codes the built-in table
// does not know, which usually means a typo in the code.
func (c Config) validateOverrides() []ValidationResult {
	if len(c.Suggestions.Errors) == 0 {
		return nil
	}

	builtin := suggest.Default()
	var unknown []string
	for code := range c.Suggestions.Errors {
		if _, ok := builtin.Body(code); !ok {
			unknown = append(unknown, code)
		}
	}
	sort.Strings(unknown)

	var results []ValidationResult
	for _, code := range unknown {
		results = append(results, ValidationResult{
			Level:   "warning",
			Message: fmt.Sprintf("suggestion for %q does not match a built-in error code", code),
		})
	}
	return results
}
