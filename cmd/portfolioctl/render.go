package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"portfolio-backend/internal/admin"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/projects"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
	okStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func toastNotifier(w io.Writer) admin.Notifier {
	return admin.NotifierFunc(func(msg string) {
		style := okStyle
		if strings.Contains(msg, "failed: ") {
			style = failStyle
		}
		fmt.Fprintln(w, style.Render(msg))
	})
}

// projectRows lists the projects matching typ. The # column
// is the 1-based position in the full list, which is what `projects move`
// takes; order_index can skip numbers after a delete.
func projectRows(all []models.Project, typ string) [][]string {
	rows := [][]string{}
	for i, p := range all {
		if len(projects.FilterByType([]models.Project{p}, typ)) == 0 {
			continue
		}
		pdf := "-"
		if p.PDFURL != nil {
			pdf = *p.PDFURL
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			string(p.ID),
			p.Title,
			string(p.Type),
			strconv.Itoa(p.OrderIndex),
			pdf,
		})
	}
	return rows
}

func renderProjectTable(all []models.Project, typ string) string {
	rows := projectRows(all, typ)
	if len(rows) == 0 {
		return "No projects found."
	}
	return renderTable([]string{"#", "ID", "Title", "Type", "Order", "PDF"}, rows)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	return t.Render()
}
