package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tablereport/pkg/report"
)

// filterTasksByIndexArgs trims results to the tasks matching the provided
// CLI index arguments. When args is empty, the original results are returned.
func filterTasksByIndexArgs(results []report.TaskResult, args []string) ([]report.TaskResult, error) {
	if len(args) == 0 {
		return results, nil
	}

	indexes, err := parseIndexArgs(args)
	if err != nil {
		return nil, err
	}

	return filterTasksByIndex(results, indexes)
}

func parseIndexArgs(args []string) ([]int, error) {
	indexes := make([]int, 0)
	for _, raw := range args {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		if strings.Contains(token, "-") {
			parts := strings.SplitN(token, "-", 2)
			start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil {
				return nil, fmt.Errorf("invalid index %q: %w", parts[0], err)
			}
			end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, fmt.Errorf("invalid index %q: %w", parts[1], err)
			}
			if start <= 0 || end <= 0 {
				return nil, fmt.Errorf("index values must be greater than zero: %d-%d", start, end)
			}
			if end < start {
				return nil, fmt.Errorf("index range start greater than end: %d-%d", start, end)
			}
			for i := start; i <= end; i++ {
				indexes = append(indexes, i)
			}
			continue
		}
		val, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", token, err)
		}
		if val <= 0 {
			return nil, fmt.Errorf("index must be greater than zero: %d", val)
		}
		indexes = append(indexes, val)
	}
	return indexes, nil
}

func filterTasksByIndex(results []report.TaskResult, indexes []int) ([]report.TaskResult, error) {
	filter := make(map[int]struct{}, len(indexes))
	for _, idx := range indexes {
		filter[idx] = struct{}{}
	}
	if len(filter) == 0 {
		return nil, fmt.Errorf("no task indexes provided")
	}

	filtered := make([]report.TaskResult, 0, len(filter))
	for _, res := range results {
		if _, ok := filter[res.Number]; ok {
			filtered = append(filtered, res)
			delete(filter, res.Number)
		}
	}

	if len(filter) > 0 {
		missing := make([]int, 0, len(filter))
		for idx := range filter {
			missing = append(missing, idx)
		}
		sort.Ints(missing)
		return nil, fmt.Errorf("tasks not found in report: %v", missing)
	}
	return filtered, nil
}
