package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tablereport/internal/config"
	"tablereport/internal/paths"
)

var checkStrict bool

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the project configuration and suggestion files",
		RunE:  runCheck,
	}

	cmd.Flags().BoolVar(&checkStrict, "strict", false, "treat warnings as failures")

	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return err
	}

	exists, err := paths.DirExists(pp.Root)
	if err != nil {
		return fmt.Errorf("stat project dir: %w", err)
	}
	if !exists {
		return fmt.Errorf("project directory does not exist: %s", pp.Root)
	}

	hasConfig, err := paths.FileExists(pp.ConfigFile)
	if err != nil {
		return fmt.Errorf("stat config: %w", err)
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return err
	}

	logger, closer, err := openLogger(pp)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	logger.Printf("tablereport check: project=%s config=%v", pp.Root, hasConfig)

	validations := cfg.ValidateStrict(pp.Root)

	codes := 0
	if !hasErrors(validations) {
		table, err := cfg.SuggestionTable(pp.Root)
		if err != nil {
			validations = append(validations, config.ValidationResult{Level: "error", Message: err.Error()})
		} else {
			codes = len(table.Errors)
		}
	}

	for _, v := range validations {
		logger.Printf("%s: %s", v.Level, v.Message)
	}

	payload := struct {
		Project     string                    `json:"project"`
		Config      string                    `json:"config,omitempty"`
		Suggestions int                       `json:"suggestions"`
		Validations []config.ValidationResult `json:"validations,omitempty"`
	}{
		Project:     pp.Root,
		Suggestions: codes,
		Validations: validations,
	}
	if hasConfig {
		payload.Config = pp.ConfigFile
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(out, string(data))
	} else {
		bold := lipgloss.NewStyle().Bold(true)
		green := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		red := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
		faint := lipgloss.NewStyle().Faint(true)

		fmt.Fprintln(out, bold.Render("Project:")+" "+pp.Root)
		if hasConfig {
			fmt.Fprintln(out, faint.Render("  config "+pp.ConfigFile))
		} else {
			fmt.Fprintln(out, faint.Render("  no tablereport.yaml; using defaults"))
		}
		fmt.Fprintln(out)

		if len(validations) == 0 {
			fmt.Fprintln(out, green.Render("✓")+" "+bold.Render("configuration"))
		}
		for _, v := range validations {
			if v.Level == "error" {
				fmt.Fprintln(out, red.Render("✗")+" "+v.Message)
			} else {
				fmt.Fprintln(out, yellow.Render("!")+" "+v.Message)
			}
		}
		fmt.Fprintln(out, faint.Render(fmt.Sprintf("  %d error codes have suggestions", codes)))
	}

	var errs []string
	for _, v := range validations {
		if v.Level == "error" || (checkStrict && v.Level == "warning") {
			errs = append(errs, v.Message)
		}
	}
	if len(errs) > 0 {
		return errors.New("config validation failed: " + strings.Join(errs, "; "))
	}
	return nil
}

func hasErrors(validations []config.ValidationResult) bool {
	for _, v := range validations {
		if v.Level == "error" {
			return true
		}
	}
	return false
}
