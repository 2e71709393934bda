package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"tablereport/internal/paths"
)

var (
	cleanDryRun    bool
	cleanOlderThan time.Duration
)

func newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove log files from the project metadata directory",
		RunE:  runClean,
	}

	cmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "List what would be removed without deleting")
	cmd.Flags().DurationVar(&cleanOlderThan, "older-than", 0, "Only remove logs older than this (e.g. 72h)")

	return cmd
}

type cleanResult struct {
	Removed    int   `json:"removed"`
	FreedBytes int64 `json:"freed_bytes"`
	Skipped    int   `json:"skipped"`
	DryRun     bool  `json:"dry_run"`
}

func runClean(cmd *cobra.Command, _ []string) error {
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

	files, err := listLogs(pp.LogsDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result := cleanResult{DryRun: cleanDryRun}
	cutoff := time.Now().Add(-cleanOlderThan)

	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			result.Skipped++
			continue
		}
		if cleanOlderThan > 0 && info.ModTime().After(cutoff) {
			continue
		}
		removeFileEntry(path, info.Size(), out, &result)
	}

	return writeCleanResult(out, result)
}

func listLogs(dir string) ([]string, error) {
	exists, err := paths.DirExists(dir)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

func removeFileEntry(path string, size int64, out io.Writer, result *cleanResult) {
	if cleanDryRun {
		if !outputJSON {
			fmt.Fprintf(out, "would remove %s (%s)\n", path, formatSize(size))
		}
		result.Removed++
		result.FreedBytes += size
		return
	}

	if err := os.Remove(path); err != nil {
		if !outputJSON {
			fmt.Fprintf(out, "error removing %s: %v\n", path, err)
		}
		result.Skipped++
		return
	}

	result.Removed++
	result.FreedBytes += size
	if !outputJSON {
		fmt.Fprintf(out, "removed %s (%s)\n", path, formatSize(size))
	}
}

func writeCleanResult(out io.Writer, result cleanResult) error {
	if outputJSON {
		return json.NewEncoder(out).Encode(result)
	}

	action := "complete"
	if cleanDryRun {
		action = "(dry run)"
	}
	fmt.Fprintf(out, "\nClean %s: %d removed, %s freed, %d skipped\n",
		action, result.Removed, formatSize(result.FreedBytes), result.Skipped)
	return nil
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
