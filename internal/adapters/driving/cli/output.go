package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/custodia-labs/starsync/internal/core/domain"
)

// defaultWidth is used when the terminal width is unknown.
const defaultWidth = 120

// styles are bound to one writer so colour is only emitted to terminals.
type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style
	border  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		success: r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		err:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")).Padding(0, 1),
		border:  r.NewStyle().Foreground(lipgloss.Color("#45475A")),
	}
}

// terminalWidth returns the width of w if it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

var recordHeaders = []string{"REPOSITORY", "STARS", "LANGUAGE", "SOURCE", "PUSHED", "DESCRIPTION"}

func recordRow(r *domain.StarRecord) []string {
	pushed := "-"
	if r.Pushed != nil {
		pushed = r.Pushed.Format(time.DateOnly)
	}
	language := domain.StringValue(r.Language)
	if language == "" {
		language = "-"
	}
	return []string{
		r.FullName,
		strconv.Itoa(r.Stars),
		language,
		string(r.Source),
		pushed,
		oneLine(domain.StringValue(r.Description)),
	}
}

// writeRecords prints a bordered table on terminals and tab-separated
// rows otherwise, so output stays pipe friendly.
func writeRecords(w io.Writer, records []domain.StarRecord) {
	rows := make([][]string, len(records))
	for i := range records {
		rows[i] = recordRow(&records[i])
	}

	width := terminalWidth(w)
	if width == 0 {
		for _, row := range rows {
			fmt.Fprintln(w, strings.Join(row, "\t"))
		}
		return
	}

	st := newStyles(w)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		Headers(recordHeaders...).
		Rows(rows...).
		Width(width).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(w, t.Render())
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
