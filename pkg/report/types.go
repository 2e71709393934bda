package report

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Report is the top-level document emitted by a tabular validator. It holds one
// task per checked file.
type Report struct {
	Valid  bool        `json:"valid"`
	Stats  ReportStats `json:"stats"`
	Errors []RawError  `json:"errors,omitempty"`
	Tasks  []Task      `json:"tasks"`
}

// ReportStats carries the report-wide counters.
type ReportStats struct {
	Errors int `json:"errors"`
	Tasks  int `json:"tasks"`
}

// Task is one validated tabular resource and its outcome.
type Task struct {
	Name     string     `json:"name,omitempty"`
	Place    string     `json:"place,omitempty"`
	Valid    bool       `json:"valid"`
	Stats    TaskStats  `json:"stats"`
	Resource Resource   `json:"resource"`
	Errors   []RawError `json:"errors"`
}

// TaskStats carries the per-task counters. Errors is informational and shown
// verbatim; it is not recomputed from Task.Errors.
type TaskStats struct {
	Errors int `json:"errors"`
}

// Resource describes the checked tabular file.
type Resource struct {
	Name   string `json:"name,omitempty"`
	Path   string `json:"path,omitempty"`
	Schema Schema `json:"schema"`
}

// Schema lists the columns of the resource in order.
type Schema struct {
	Fields []Field `json:"fields"`
}

// Field is a single schema column.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Header returns the ordered field names of the task's schema.
func (t Task) Header() []string {
	header := make([]string, len(t.Resource.Schema.Fields))
	for i, field := range t.Resource.Schema.Fields {
		header[i] = field.Name
	}
	return header
}

// Label returns a short human name for the task.
func (t Task) Label() string {
	switch {
	case t.Name != "":
		return t.Name
	case t.Resource.Name != "":
		return t.Resource.Name
	case t.Place != "":
		return t.Place
	case t.Resource.Path != "":
		return t.Resource.Path
	}
	return "task"
}

// RawError is a single problem detected by the validator. Positions are
// 1-based; zero means absent.
type RawError struct {
	Code          string   `json:"code"`
	Name          string   `json:"name,omitempty"`
	Description   string   `json:"description,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	Message       string   `json:"message"`
	Note          string   `json:"note,omitempty"`
	RowPosition   int      `json:"rowPosition,omitempty"`
	FieldPosition int      `json:"fieldPosition,omitempty"`
	FieldName     string   `json:"fieldName,omitempty"`
	Cells         []string `json:"cells,omitempty"`
	Labels        []string `json:"labels,omitempty"`
}

// rawErrorDoc accepts both report dialects: older reports key errors by
// "code"/"name", newer ones by "type"/"title". Cells may hold any scalar.
type rawErrorDoc struct {
	Code          string            `json:"code"`
	Type          string            `json:"type"`
	Name          string            `json:"name"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Tags          []string          `json:"tags"`
	Message       string            `json:"message"`
	Note          string            `json:"note"`
	RowPosition   int               `json:"rowPosition"`
	FieldPosition int               `json:"fieldPosition"`
	FieldName     string            `json:"fieldName"`
	Cells         []json.RawMessage `json:"cells"`
	Labels        []json.RawMessage `json:"labels"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *RawError) UnmarshalJSON(data []byte) error {
	var doc rawErrorDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	cells, err := scalarStrings(doc.Cells)
	if err != nil {
		return fmt.Errorf("cells: %w", err)
	}
	labels, err := scalarStrings(doc.Labels)
	if err != nil {
		return fmt.Errorf("labels: %w", err)
	}

	*e = RawError{
		Code:          firstNonEmpty(doc.Code, doc.Type),
		Name:          firstNonEmpty(doc.Name, doc.Title),
		Description:   doc.Description,
		Tags:          doc.Tags,
		Message:       doc.Message,
		Note:          doc.Note,
		RowPosition:   doc.RowPosition,
		FieldPosition: doc.FieldPosition,
		FieldName:     doc.FieldName,
		Cells:         cells,
		Labels:        labels,
	}
	return nil
}

func scalarStrings(raw []json.RawMessage) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	out := make([]string, len(raw))
	for i, item := range raw {
		var v any
		if err := json.Unmarshal(item, &v); err != nil {
			return nil, err
		}
		switch value := v.(type) {
		case nil:
			out[i] = ""
		case string:
			out[i] = value
		case bool:
			out[i] = strconv.FormatBool(value)
		case float64:
			out[i] = strconv.FormatFloat(value, 'f', -1, 64)
		default:
			return nil, fmt.Errorf("position %d: unsupported value %s", i+1, string(item))
		}
	}
	return out, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
