package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func (a *App) printTitle(s string) {
	fmt.Fprintln(a.out, titleStyle.Render(s))
}

func (a *App) printOK(s string) {
	fmt.Fprintln(a.out, okStyle.Render(s))
}

func (a *App) printErr(s string) {
	fmt.Fprintln(a.out, errStyle.Render(s))
}

func (a *App) printMuted(s string) {
	fmt.Fprintln(a.out, mutedStyle.Render(s))
}

// printTable renders rows as an aligned table with a header line. Cells are
// joined per row; styling stays out so the tabwriter widths are not thrown
// off by escape codes.
func (a *App) printTable(header []string, rows [][]string) {
	tw := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// loadingMark labels a row that has an action in flight.
func loadingMark(loading bool) string {
	if loading {
		return loadingStyle.Render("*")
	}
	return ""
}
