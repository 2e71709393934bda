package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"tablereport/internal/config"
	"tablereport/internal/logx"
	"tablereport/internal/paths"
)

var configShowResolved bool

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the tablereport.yaml configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration in YAML",
		RunE:  runConfigShow,
	}
	show.Flags().BoolVar(&configShowResolved, "resolved", false, "Inline the merged suggestion table (built-ins, files and overrides)")

	cmd.AddCommand(show)
	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Open tablereport.yaml in $VISUAL or $EDITOR, creating it first if needed",
		RunE:  runConfigEdit,
	})
	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return err
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return err
	}

	if configShowResolved {
		table, err := cfg.SuggestionTable(pp.Root)
		if err != nil {
			return err
		}
		cfg.Suggestions = config.SuggestionsConfig{Header: table.Header, Errors: table.Errors}
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	out := string(data)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return err
	}
	if err := pp.EnsureRoot(); err != nil {
		return err
	}

	var created []string
	if err := ensureConfig(pp, &created, logx.Discard()); err != nil {
		return err
	}
	for _, name := range created {
		fmt.Fprintf(cmd.ErrOrStderr(), "created %s with defaults\n", name)
	}

	execCmd := editorCommand(ctx, preferredEditor(), pp.ConfigFile)
	execCmd.Stdout = cmd.OutOrStdout()
	execCmd.Stderr = cmd.ErrOrStderr()
	execCmd.Stdin = cmd.InOrStdin()
	execCmd.Dir = pp.Root

	if err := execCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}

func preferredEditor() string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// editorCommand runs editor through the shell so values such as
// "code --wait" or quoted paths behave as they do in a terminal.
func editorCommand(ctx context.Context, editor, file string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		fields := strings.Fields(editor)
		return exec.CommandContext(ctx, fields[0], append(fields[1:], file)...)
	}
	return exec.CommandContext(ctx, "sh", "-c", editor+` "$1"`, "tablereport-editor", file)
}
