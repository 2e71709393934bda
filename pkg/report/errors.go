package report

import (
	"strconv"
	"strings"
)

// MalformedError describes a raw error that could not be folded into a group
// because its positions contradict its code.
type MalformedError struct {
	// Index is the 1-based position of the raw error within the task.
	Index   int    `json:"index"`
	Code    string `json:"code"`
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e MalformedError) Error() string {
	parts := []string{"error " + strconv.Itoa(e.Index)}
	if e.Code != "" {
		parts = append(parts, "("+e.Code+")")
	}
	parts = append(parts, formatRow(e.Row)+":", e.Message)
	return strings.Join(parts, " ")
}

// MalformedErrors aggregates every raw error skipped during aggregation.
type MalformedErrors []MalformedError

func (errs MalformedErrors) Error() string {
	if len(errs) == 0 {
		return "malformed errors"
	}
	messages := make([]string, len(errs))
	for i, err := range errs {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "; ")
}

// Issues returns a copy of the underlying malformed errors.
func (errs MalformedErrors) Issues() []MalformedError {
	return append([]MalformedError(nil), errs...)
}

func formatRow(row int) string {
	if row <= 0 {
		return "table"
	}
	return "row " + strconv.Itoa(row)
}
