package tui

import "tablereport/pkg/report"

// ReportLoadedMsg replaces the task shown by the browser, for example after
// the report file changed on disk.
type ReportLoadedMsg struct {
	Result report.TaskResult
}

// ErrorMsg signals a fatal error; the TUI should quit.
type ErrorMsg struct {
	Err error
}
