package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

type suggestionEntry struct {
	Code       string `json:"code"`
	Suggestion string `json:"suggestion"`
}

func newSuggestionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggestions [CODE...]",
		Short: "List the fix suggestions known for each error code",
		Long: `Print the suggestion table after merging the built-in entries with the
project's configuration. Pass one or more error codes to print only those.`,
		RunE: runSuggestions,
	}
}

func runSuggestions(cmd *cobra.Command, args []string) error {
	proj, err := loadProject()
	if err != nil {
		return err
	}
	defer proj.Close()

	table := proj.Suggestions
	codes := args
	if len(codes) == 0 {
		codes = table.Codes()
	}

	entries := make([]suggestionEntry, 0, len(codes))
	var unknown []string
	for _, code := range codes {
		body, ok := table.Body(code)
		if !ok {
			unknown = append(unknown, code)
			continue
		}
		entries = append(entries, suggestionEntry{Code: code, Suggestion: body})
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		payload := struct {
			Header      string            `json:"header"`
			Suggestions []suggestionEntry `json:"suggestions"`
			Unknown     []string          `json:"unknown,omitempty"`
		}{
			Header:      table.Header,
			Suggestions: entries,
			Unknown:     unknown,
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		bold := lipgloss.NewStyle().Bold(true)
		faint := lipgloss.NewStyle().Faint(true)

		fmt.Fprintln(out, faint.Render(table.Header))
		fmt.Fprintln(out)
		for _, e := range entries {
			fmt.Fprintln(out, bold.Render(e.Code))
			for _, line := range strings.Split(e.Suggestion, "\n") {
				fmt.Fprintln(out, "  "+line)
			}
			fmt.Fprintln(out)
		}
	}

	if len(unknown) > 0 {
		return fmt.Errorf("no suggestion for: %s", strings.Join(unknown, ", "))
	}
	return nil
}
