package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"tablereport/internal/config"
	"tablereport/internal/logx"
	"tablereport/internal/paths"
	"tablereport/internal/suggest"
	"tablereport/pkg/report"
)

// projectContext bundles what every report command needs from the project
// directory.
type projectContext struct {
	Paths       paths.ProjectPaths
	Config      config.Config
	Suggestions suggest.Table
	Logger      *log.Logger
	closer      io.Closer
}

func (p *projectContext) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

func loadProject() (*projectContext, error) {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return nil, err
	}

	exists, err := paths.DirExists(pp.Root)
	if err != nil {
		return nil, fmt.Errorf("stat project dir: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("project directory does not exist: %s", pp.Root)
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return nil, err
	}

	table, err := cfg.SuggestionTable(pp.Root)
	if err != nil {
		return nil, err
	}

	logger, closer, err := openLogger(pp)
	if err != nil {
		return nil, err
	}
	logger.Printf("project=%s config version=%d suggestions=%d", pp.Root, cfg.Version, len(table.Errors))

	return &projectContext{
		Paths:       pp,
		Config:      cfg,
		Suggestions: table,
		Logger:      logger,
		closer:      closer,
	}, nil
}

// openLogger writes to the project's log directory once the project has been
// set up with a config file or metadata directory. Other directories are
// left untouched.
func openLogger(pp paths.ProjectPaths) (*log.Logger, io.Closer, error) {
	hasConfig, err := paths.FileExists(pp.ConfigFile)
	if err != nil {
		return nil, nil, fmt.Errorf("stat config: %w", err)
	}
	hasMeta, err := paths.DirExists(pp.MetaDir)
	if err != nil {
		return nil, nil, fmt.Errorf("stat metadata dir: %w", err)
	}
	if !hasConfig && !hasMeta {
		return logx.Discard(), nil, nil
	}
	if err := pp.EnsureMetaDirs(); err != nil {
		return nil, nil, err
	}
	return logx.New(pp)
}

// readReport loads the report named by arg. "-" reads from the command's
// stdin using format.
func readReport(cmd *cobra.Command, pp paths.ProjectPaths, arg, format string) (report.Report, error) {
	path := pp.ResolveInput(arg)
	if path != "-" {
		return report.Load(path)
	}

	f, err := parseFormat(format)
	if err != nil {
		return report.Report{}, err
	}
	r, err := report.Decode(cmd.InOrStdin(), f)
	if err != nil {
		return report.Report{}, fmt.Errorf("load stdin: %w", err)
	}
	return r, nil
}

func parseFormat(value string) (report.Format, error) {
	switch value {
	case "", "json":
		return report.FormatJSON, nil
	case "yaml", "yml":
		return report.FormatYAML, nil
	}
	return "", fmt.Errorf("unknown report format %q (want json or yaml)", value)
}

func logMalformed(logger *log.Logger, results []report.TaskResult) int {
	total := 0
	for _, res := range results {
		for _, issue := range res.Malformed.Issues() {
			logger.Printf("task %d: skipped %v", res.Number, issue)
			total++
		}
	}
	return total
}
