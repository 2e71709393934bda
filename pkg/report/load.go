package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a report document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the document format from a file extension. Anything
// that is not YAML is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Load reads and decodes the report stored at path.
func Load(path string) (Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return Report{}, fmt.Errorf("open report: %w", err)
	}
	defer file.Close()

	r, err := Decode(file, FormatForPath(path))
	if err != nil {
		return Report{}, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return r, nil
}

// Decode reads a report document from r. A document holding a single task
// (errors plus resource, no tasks list) is wrapped into a one-task report.
func Decode(r io.Reader, format Format) (Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("read report: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Report{}, errors.New("report is empty")
	}

	if format == FormatYAML {
		data, err = yamlToJSON(data)
		if err != nil {
			return Report{}, err
		}
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return Report{}, fmt.Errorf("parse report: %w", err)
	}

	_, hasTasks := probe["tasks"]
	_, hasResource := probe["resource"]
	if !hasTasks && hasResource {
		var task Task
		if err := json.Unmarshal(data, &task); err != nil {
			return Report{}, fmt.Errorf("parse task: %w", err)
		}
		return Report{
			Valid: task.Valid,
			Stats: ReportStats{Errors: task.Stats.Errors, Tasks: 1},
			Tasks: []Task{task},
		}, nil
	}
	if !hasTasks {
		return Report{}, errors.New("report has no tasks")
	}

	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return Report{}, fmt.Errorf("parse report: %w", err)
	}
	if rep.Stats.Tasks == 0 {
		rep.Stats.Tasks = len(rep.Tasks)
	}
	return rep, nil
}

// yamlToJSON re-encodes a YAML document as JSON so both formats share one
// decoding path.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml report: %w", err)
	}
	out, err := json.Marshal(normalizeYAML(doc))
	if err != nil {
		return nil, fmt.Errorf("convert yaml report: %w", err)
	}
	return out, nil
}

func normalizeYAML(v any) any {
	switch value := v.(type) {
	case map[string]any:
		for k, item := range value {
			value[k] = normalizeYAML(item)
		}
		return value
	case map[any]any:
		out := make(map[string]any, len(value))
		for k, item := range value {
			out[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return out
	case []any:
		for i, item := range value {
			value[i] = normalizeYAML(item)
		}
		return value
	}
	return v
}
