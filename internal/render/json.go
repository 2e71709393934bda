package render

import (
	"encoding/json"
	"fmt"
	"io"

	"tablereport/pkg/report"
)

// TaskPayload is the JSON shape of one rendered task.
type TaskPayload struct {
	Task      int                     `json:"task"`
	Tasks     int                     `json:"tasks"`
	Label     string                  `json:"label"`
	Valid     bool                    `json:"valid"`
	Errors    int                     `json:"errors"`
	Groups    *report.Groups          `json:"groups"`
	Malformed []report.MalformedError `json:"malformed,omitempty"`
}

// Payload builds the JSON payloads for results.
func Payload(results []report.TaskResult, total int) []TaskPayload {
	out := make([]TaskPayload, 0, len(results))
	for _, res := range results {
		groups := res.Groups
		if groups == nil {
			groups = report.NewGroups()
		}
		out = append(out, TaskPayload{
			Task:      res.Number,
			Tasks:     total,
			Label:     res.Task.Label(),
			Valid:     res.Task.Valid,
			Errors:    res.Task.Stats.Errors,
			Groups:    groups,
			Malformed: res.Malformed.Issues(),
		})
	}
	return out
}

// WriteJSON encodes results as an indented JSON array.
func WriteJSON(w io.Writer, results []report.TaskResult, total int) error {
	data, err := json.MarshalIndent(Payload(results, total), "", "  ")
	if err != nil {
		return fmt.Errorf("encode report json: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("write report json: %w", err)
	}
	return nil
}
