// Package output renders tabular command results.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/satococoa/envctl/internal/api"
	"github.com/satococoa/envctl/internal/errors"
)

// Table is a header row plus data rows of the same width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Select returns a table reduced to the named columns, in the given order.
// Column names match headers case-insensitively. An empty selection
// returns the table unchanged.
func (t Table) Select(columns []string) (Table, error) {
	if len(columns) == 0 {
		return t, nil
	}

	index := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		index[strings.ToLower(h)] = i
	}

	picked := make([]int, 0, len(columns))
	var unknown []string
	for _, c := range columns {
		i, ok := index[strings.ToLower(strings.TrimSpace(c))]
		if !ok {
			unknown = append(unknown, c)
			continue
		}
		picked = append(picked, i)
	}
	if len(unknown) > 0 {
		return Table{}, errors.InvalidColumns(unknown, t.Headers)
	}

	out := Table{Headers: make([]string, len(picked))}
	for j, i := range picked {
		out.Headers[j] = t.Headers[i]
	}
	for _, row := range t.Rows {
		selected := make([]string, len(picked))
		for j, i := range picked {
			if i < len(row) {
				selected[j] = row[i]
			}
		}
		out.Rows = append(out.Rows, selected)
	}
	return out, nil
}

// ActivityColumns are the headers of ActivityTable.
var ActivityColumns = []string{"ID", "Created", "Completed", "Duration", "Type", "State", "Result", "Progress", "Environments", "Description"}

// ActivityTable lays out activities one per row.
func ActivityTable(activities []api.Activity) Table {
	t := Table{Headers: ActivityColumns}
	for _, a := range activities {
		t.Rows = append(t.Rows, []string{
			a.ID,
			formatTime(a.CreatedAt),
			formatTime(a.CompletedAt),
			formatDuration(a.Duration()),
			a.Type,
			a.State,
			a.Result,
			fmt.Sprintf("%d%%", a.Progress),
			strings.Join(a.Environments, ", "),
			a.Description,
		})
	}
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.Round(time.Second).String()
}
