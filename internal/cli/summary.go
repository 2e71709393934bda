package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tablereport/pkg/report"
)

var (
	summaryTasks  []string
	summaryFormat string
)

type taskSummary struct {
	Task      int                `json:"task"`
	Label     string             `json:"label"`
	Valid     bool               `json:"valid"`
	Errors    int                `json:"errors"`
	Codes     []report.CodeCount `json:"codes"`
	Malformed int                `json:"malformed,omitempty"`
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary REPORT",
		Short: "Print per-task error counts grouped by code",
		Args:  cobra.ExactArgs(1),
		RunE:  runSummary,
	}

	cmd.Flags().StringSliceVar(&summaryTasks, "task", nil, "Task numbers or ranges to summarize (e.g. 1,3-4)")
	cmd.Flags().StringVar(&summaryFormat, "format", "json", "Format of a report read from stdin (json or yaml)")
	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	proj, err := loadProject()
	if err != nil {
		return err
	}
	defer proj.Close()

	r, err := readReport(cmd, proj.Paths, args[0], summaryFormat)
	if err != nil {
		return err
	}

	// Suggestions are irrelevant to counts.
	results, err := filterTasksByIndexArgs(report.AggregateReport(r, nil), summaryTasks)
	if err != nil {
		return err
	}
	logMalformed(proj.Logger, results)

	summaries := make([]taskSummary, 0, len(results))
	for _, res := range results {
		summaries = append(summaries, taskSummary{
			Task:      res.Number,
			Label:     res.Task.Label(),
			Valid:     res.Task.Valid,
			Errors:    res.Task.Stats.Errors,
			Codes:     res.Groups.Counts(),
			Malformed: len(res.Malformed),
		})
	}

	out := cmd.OutOrStdout()
	if outputJSON {
		payload := struct {
			Valid bool          `json:"valid"`
			Tasks []taskSummary `json:"tasks"`
		}{
			Valid: r.Valid,
			Tasks: summaries,
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	writeSummaryTable(cmd, summaries)
	return nil
}

func writeSummaryTable(cmd *cobra.Command, summaries []taskSummary) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "TASK\tLABEL\tSTATUS\tCODE\tCOUNT")
	for _, s := range summaries {
		status := "valid"
		if !s.Valid {
			status = "invalid"
		}
		if len(s.Codes) == 0 {
			fmt.Fprintf(w, "%d\t%s\t%s\t-\t0\n", s.Task, s.Label, status)
			continue
		}
		for i, c := range s.Codes {
			if i == 0 {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", s.Task, s.Label, status, c.Code, c.Count)
				continue
			}
			fmt.Fprintf(w, "\t\t\t%s\t%d\n", c.Code, c.Count)
		}
	}
	w.Flush()

	for _, s := range summaries {
		if s.Malformed > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: task %d: skipped %d malformed errors\n", s.Task, s.Malformed)
		}
	}
}
