package suggest

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultHeader introduces every suggestion body.
const DefaultHeader = "How could you fix this?"

// Table maps error codes to advisory text. A Table is built once at startup
// and only read afterwards.
type Table struct {
	Header string            `yaml:"header"`
	Errors map[string]string `yaml:"errors"`
}

var builtin = map[string]string{
	"blank-header":          "Add a name to every column in the first row of the file. Columns without a name cannot be matched to the schema.",
	"blank-label":           "Add a name to every column in the first row of the file. Columns without a name cannot be matched to the schema.",
	"duplicate-header":      "Rename the highlighted columns so every column name in the first row is unique.",
	"duplicate-label":       "Rename the highlighted columns so every column name in the first row is unique.",
	"incorrect-label":       "Make sure the column names in the first row match the field names declared in the schema, in the same order.",
	"missing-label":         "The file has fewer columns than the schema expects. Add the missing columns or remove the extra fields from the schema.",
	"extra-label":           "The file has more columns than the schema describes. Remove the extra columns or declare them in the schema.",
	"blank-row":             "Delete the empty rows. Rows without any value are usually left over from spreadsheet editing.",
	"duplicate-row":         "Remove the repeated rows, or add a column that tells them apart.",
	"extra-cell":            "The highlighted rows have more values than there are columns. Check for stray delimiters such as unquoted commas.",
	"missing-cell":          "The highlighted rows have fewer values than there are columns. Fill in the missing values or leave them explicitly empty.",
	"type-error":            "Check that the highlighted values match the type declared for their column, for example numbers in a numeric column and dates in ISO 8601 form.",
	"constraint-error":      "The highlighted values break a rule declared in the schema, such as a required value, a minimum or a pattern. Correct the values or relax the rule.",
	"unique-error":          "The highlighted column must hold unique values. Remove or change the repeated values.",
	"primary-key":           "Each row must have a unique, non-empty primary key. Remove duplicated keys or fill in the empty ones.",
	"foreign-key":           "The highlighted values refer to rows that do not exist in the referenced table. Add the missing rows or correct the references.",
	"encoding-error":        "Save the file with UTF-8 encoding and validate it again.",
	"source-error":          "The file could not be read as a table. Make sure it is a valid CSV or spreadsheet file and that it is not empty.",
	"scheme-error":          "The file location could not be opened. Check the path or URL of the file.",
	"format-error":          "The file format could not be detected. Check the file extension and its content.",
	"hash-count":            "The file content differs from what the data package declares. Update the declared hash and size or restore the original file.",
	"byte-count":            "The file size differs from what the data package declares. Update the declared size or restore the original file.",
	"field-count":           "The number of columns differs from what the schema expects. Align the file columns with the schema fields.",
	"row-count":             "The number of rows differs from what the data package declares. Update the declared row count or restore the missing rows.",
	"sequential-value":      "The highlighted column must hold consecutive values. Fill the gaps or remove the duplicated values.",
	"row-constraint":        "The highlighted rows break a rule that combines several columns. Correct the values so the rule holds.",
	"truncated-value":       "The highlighted values look cut off, possibly by a spreadsheet limit. Restore the complete values.",
	"forbidden-value":       "The highlighted values are on the list of values that are not allowed in this column.",
	"ascii-value":           "The highlighted values contain characters outside the ASCII range. Replace them or allow non-ASCII text.",
	"deviated-value":        "The highlighted values are far from the typical values in their column. Double-check them for typos.",
	"deviated-cell":         "The highlighted cells are much larger than the rest of their column. Double-check them for pasted content.",
	"schema-error":          "The schema itself is invalid. Fix the schema before validating the data again.",
	"general-error":         "Validation could not complete. Check the file and the validation settings.",
	"checksum-error":        "The file checksum does not match. Update the declared checksum or restore the original file.",
	"enumerable-constraint": "The highlighted values are not in the list of allowed values for their column.",
	"maximum-constraint":    "The highlighted values are above the maximum allowed for their column.",
	"minimum-constraint":    "The highlighted values are below the minimum allowed for their column.",
	"pattern-constraint":    "The highlighted values do not match the pattern declared for their column.",
	"required-constraint":   "The highlighted cells are empty but their column requires a value.",
	"unique-constraint":     "The highlighted column must hold unique values. Remove or change the repeated values.",
}

// Default returns the built-in table.
func Default() Table {
	errors := make(map[string]string, len(builtin))
	for code, body := range builtin {
		errors[code] = body
	}
	return Table{Header: DefaultHeader, Errors: errors}
}

// Suggestion returns the formatted suggestion for code, or "" when the code
// has no entry.
func (t Table) Suggestion(code string) string {
	body, ok := t.Errors[code]
	if !ok {
		return ""
	}
	return "\n" + t.Header + "\n\n" + body
}

// Body returns the raw text stored for code.
func (t Table) Body(code string) (string, bool) {
	body, ok := t.Errors[code]
	return body, ok
}

// Codes returns the known codes in lexical order.
func (t Table) Codes() []string {
	codes := make([]string, 0, len(t.Errors))
	for code := range t.Errors {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Merge returns a copy of t with header and entries overridden. An empty
// header keeps the current one and an empty body removes the code.
func (t Table) Merge(header string, entries map[string]string) Table {
	merged := Table{Header: t.Header, Errors: make(map[string]string, len(t.Errors)+len(entries))}
	if strings.TrimSpace(header) != "" {
		merged.Header = header
	}
	for code, body := range t.Errors {
		merged.Errors[code] = body
	}
	for code, body := range entries {
		if strings.TrimSpace(body) == "" {
			delete(merged.Errors, code)
			continue
		}
		merged.Errors[code] = strings.TrimSpace(body)
	}
	return merged
}

// LoadFile reads a YAML mapping of code to suggestion body.
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suggestions: %w", err)
	}
	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse suggestions %q: %w", path, err)
	}
	return entries, nil
}
