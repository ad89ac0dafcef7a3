package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/satococoa/envctl/internal/errors"
)

// Format selects how a Table is written.
type Format string

const (
	FormatTable Format = "table"
	FormatPlain Format = "plain"
	FormatCSV   Format = "csv"
	FormatTSV   Format = "tsv"
)

// Formats lists every supported format.
var Formats = []Format{FormatTable, FormatPlain, FormatCSV, FormatTSV}

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	supported := make([]string, len(Formats))
	for i, f := range Formats {
		supported[i] = string(f)
	}
	return "", errors.UnsupportedFormat(name, supported)
}

// DefaultFormat is a bordered table on terminals and plain columns otherwise.
func DefaultFormat(w io.Writer) Format {
	if f, ok := w.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		return FormatTable
	}
	return FormatPlain
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Render writes t to w in the given format.
func Render(w io.Writer, t Table, format Format) error {
	switch format {
	case FormatTable:
		return renderTable(w, t)
	case FormatPlain:
		return renderPlain(w, t)
	case FormatCSV:
		return renderCSV(w, t, ',')
	case FormatTSV:
		return renderCSV(w, t, '\t')
	default:
		_, err := ParseFormat(string(format))
		return err
	}
}

func renderTable(w io.Writer, t Table) error {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, tbl.String())
	return err
}

func renderPlain(w io.Writer, t Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(t.Headers, "\t")); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func renderCSV(w io.Writer, t Table, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	return nil
}
