package report

import (
	"errors"
	"fmt"
)

// Error codes that rewrite the reconstructed row values.
const (
	CodeBlankRow    = "blank-row"
	CodeMissingCell = "missing-cell"
)

// Suggester supplies advisory text for an error code. Unknown codes yield "".
type Suggester interface {
	Suggestion(code string) string
}

// Aggregate folds the raw errors of task into groups keyed by error code, in
// the order codes are first seen. The task is not modified.
//
// Raw errors whose positions contradict their code are skipped. When any are
// skipped the returned error is of type MalformedErrors and the groups still
// hold everything that could be folded, so callers can keep rendering.
func Aggregate(task Task, s Suggester) (*Groups, error) {
	header := task.Header()
	groups := NewGroups()

	var errs MalformedErrors
	for i, raw := range task.Errors {
		if msg := checkPositions(raw); msg != "" {
			errs = append(errs, MalformedError{Index: i + 1, Code: raw.Code, Row: raw.RowPosition, Message: msg})
			continue
		}

		key := 0
		if raw.RowPosition > 0 {
			key = raw.RowPosition
		}

		fill := raw.Cells
		if fill == nil {
			fill = raw.Labels
		}

		// Validate missing-cell against the row as it would look before touching
		// anything, so a skipped error leaves no trace in the groups. Short rows
		// may be addressed up to the header width.
		if raw.Code == CodeMissingCell {
			width := len(fill)
			if g, ok := groups.Get(raw.Code); ok {
				if data, ok := g.Data[key]; ok {
					width = len(data.Values)
				}
			}
			width = max(width, len(header))
			if raw.FieldPosition > width {
				errs = append(errs, MalformedError{
					Index:   i + 1,
					Code:    raw.Code,
					Row:     raw.RowPosition,
					Message: fmt.Sprintf("field position %d outside row of %d cells", raw.FieldPosition, width),
				})
				continue
			}
		}

		group := groups.getOrInsert(raw.Code, func() *Group {
			return newGroup(raw, header, s)
		})
		data := group.row(key, fill)

		switch raw.Code {
		case CodeBlankRow:
			data.Values = make([]string, len(header))
		case CodeMissingCell:
			for len(data.Values) < raw.FieldPosition {
				data.Values = append(data.Values, "")
			}
			data.Values[raw.FieldPosition-1] = ""
		}

		if raw.FieldPosition > 0 {
			data.Errors.Add(raw.FieldPosition)
		} else {
			for pos := 1; pos <= len(data.Values); pos++ {
				data.Errors.Add(pos)
			}
		}

		group.Count++
		group.Messages = append(group.Messages, raw.Message)
	}

	if len(errs) > 0 {
		return groups, errs
	}
	return groups, nil
}

func newGroup(raw RawError, header []string, s Suggester) *Group {
	suggestion := ""
	if s != nil {
		suggestion = s.Suggestion(raw.Code)
	}
	return &Group{
		Code:        raw.Code,
		Name:        raw.Name,
		Tags:        append([]string(nil), raw.Tags...),
		Description: raw.Description,
		Suggestion:  suggestion,
		Header:      append([]string{}, header...),
		Messages:    []string{},
		Data:        make(map[int]*RowData),
	}
}

func checkPositions(raw RawError) string {
	switch {
	case raw.RowPosition < 0:
		return fmt.Sprintf("negative row position %d", raw.RowPosition)
	case raw.FieldPosition < 0:
		return fmt.Sprintf("negative field position %d", raw.FieldPosition)
	case raw.Code == CodeMissingCell && raw.FieldPosition == 0:
		return "missing-cell without a field position"
	}
	return ""
}

// TaskResult pairs a task with its groups.
type TaskResult struct {
	Number    int
	Task      Task
	Groups    *Groups
	Malformed MalformedErrors
}

// AggregateReport aggregates every task of r in order. Malformed raw errors
// are attached to each result instead of failing the report.
func AggregateReport(r Report, s Suggester) []TaskResult {
	results := make([]TaskResult, 0, len(r.Tasks))
	for i, task := range r.Tasks {
		groups, err := Aggregate(task, s)
		res := TaskResult{Number: i + 1, Task: task, Groups: groups}
		var malformed MalformedErrors
		if errors.As(err, &malformed) {
			res.Malformed = malformed
		}
		results = append(results, res)
	}
	return results
}

// CodeCount is the number of raw errors sharing one code.
type CodeCount struct {
	Code  string `json:"code"`
	Name  string `json:"name,omitempty"`
	Count int    `json:"count"`
}

// Counts returns per-code counts in first-occurrence order.
func (gs *Groups) Counts() []CodeCount {
	list := gs.List()
	out := make([]CodeCount, len(list))
	for i, g := range list {
		out[i] = CodeCount{Code: g.Code, Name: g.Name, Count: g.Count}
	}
	return out
}
