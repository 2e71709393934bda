package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tablereport/internal/config"
	"tablereport/internal/logx"
	"tablereport/internal/paths"
)

const suggestionsTemplateYAML = `# Project specific fix suggestions, keyed by error code.
# List this file under suggestions.files in tablereport.yaml to use it.
# type-error: |
#   Dates in this dataset must be written as YYYY-MM-DD.
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a tablereport.yaml and metadata directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInit,
	}
}

func resolveInitDir(projectFlag string, args []string) string {
	if projectFlag != "" {
		return projectFlag
	}
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

func runInit(cmd *cobra.Command, args []string) error {
	pp, err := paths.Resolve(resolveInitDir(projectDir, args))
	if err != nil {
		return err
	}

	if err := pp.EnsureRoot(); err != nil {
		return err
	}
	if err := pp.EnsureMetaDirs(); err != nil {
		return err
	}

	logger, closer, err := logx.New(pp)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Printf("tablereport init: project=%s", pp.Root)

	created := make([]string, 0, 2)

	if err := ensureConfig(pp, &created, logger); err != nil {
		return err
	}
	if err := ensureSuggestionsTemplate(pp, &created, logger); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(created) == 0 {
		fmt.Fprintf(out, "Project already initialized at %s\n", pp.Root)
		return nil
	}

	fmt.Fprintf(out, "Initialized project at %s\n", pp.Root)
	for _, entry := range created {
		fmt.Fprintf(out, "  created %s\n", entry)
	}
	return nil
}

func ensureConfig(pp paths.ProjectPaths, created *[]string, logger Logger) error {
	exists, err := paths.FileExists(pp.ConfigFile)
	if err != nil {
		return fmt.Errorf("check config: %w", err)
	}
	if exists {
		logger.Printf("config exists: %s", pp.ConfigFile)
		return nil
	}

	cfg := config.Default()
	cfg.ApplyDefaults()
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(pp.ConfigFile, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	logger.Printf("created config: %s", pp.ConfigFile)
	*created = append(*created, filepath.Base(pp.ConfigFile))
	return nil
}

func ensureSuggestionsTemplate(pp paths.ProjectPaths, created *[]string, logger Logger) error {
	path := filepath.Join(pp.Root, "suggestions.yaml")
	exists, err := paths.FileExists(path)
	if err != nil {
		return fmt.Errorf("check suggestions file: %w", err)
	}
	if exists {
		logger.Printf("suggestions file exists: %s", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(suggestionsTemplateYAML), 0o644); err != nil {
		return fmt.Errorf("write suggestions file: %w", err)
	}
	logger.Printf("created suggestions file: %s", path)
	*created = append(*created, "suggestions.yaml")
	return nil
}

// Logger keeps the subset of log.Logger used locally, enabling easy testing.
type Logger interface {
	Printf(format string, v ...any)
}
