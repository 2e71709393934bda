package tui

import (
	"io"
	"os"
	"runtime"
	"strings"
)

// OutputMode describes how a report should be presented.
type OutputMode int

const (
	// ModeTUI opens the interactive group browser.
	ModeTUI OutputMode = iota
	// ModePlain writes the rendered report once.
	ModePlain
	// ModeJSON writes structured JSON output.
	ModeJSON
)

// DetectMode determines the appropriate output mode for the given writer.
// The browser is only used on a real, capable terminal.
func DetectMode(out io.Writer, plain, jsonOutput bool) OutputMode {
	if jsonOutput {
		return ModeJSON
	}
	if plain {
		return ModePlain
	}
	file, ok := out.(*os.File)
	if !ok {
		return ModePlain
	}
	info, err := file.Stat()
	if err != nil {
		return ModePlain
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		return ModePlain
	}
	if runtime.GOOS != "windows" {
		term := os.Getenv("TERM")
		if term == "" || strings.EqualFold(term, "dumb") {
			return ModePlain
		}
	}
	return ModeTUI
}
