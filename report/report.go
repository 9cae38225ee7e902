package report

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"automaton/model"
)

// Render writes the run summary to w: a rounded table when w is a
// terminal, plain key-value lines when the output is piped or captured.
func Render(w io.Writer, summary *model.RunSummary) {
	rows := summaryRows(summary)
	if shouldColorize(w) {
		fmt.Fprintln(w, renderTable(rows))
		return
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s: %s\n", row[0], row[1])
	}
}

func summaryRows(s *model.RunSummary) [][]string {
	mode := "live"
	if s.DryRun {
		mode = "dry run"
	}
	return [][]string{
		{"Run", s.RunID.String()},
		{"Mode", mode},
		{"Duration", s.Duration().Round(time.Millisecond).String()},
		{"Scanned", strconv.Itoa(s.Scanned)},
		{"Eligible", strconv.Itoa(s.Eligible)},
		{"Retitled", strconv.Itoa(s.TitleUpdated)},
		{"Moved", strconv.Itoa(s.Moved)},
		{"Unclassified", strconv.Itoa(s.Unclassified)},
		{"Skipped", fmt.Sprintf("%d (excluded %d, placeholder %d, in folder %d)",
			s.Skipped(), s.SkippedExcluded, s.SkippedPlaceholder, s.SkippedFolder)},
		{"Failed", strconv.Itoa(s.Failed)},
	}
}

func renderTable(rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	return tw.Render()
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
