package render

import (
	"fmt"
	"strings"

	"relviz-backend/service"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginTop(1)
	fragmentStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#AAAAAA"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
)

// Terminal renders the report as styled text for a terminal of the given width
func Terminal(report *service.Report, width int) string {
	if width < 60 {
		width = 60
	}

	sections := make([]string, 0, len(report.Blocks)+1)
	for _, b := range report.Blocks {
		sections = append(sections, terminalBlock(b, width))
	}

	sections = append(sections, footerStyle.Render(fmt.Sprintf(
		"Правоотношений: %d · прав: %d · обязанностей: %d · целей: %d · предметов: %d · субъектов: %d",
		report.Totals.Relations, report.Totals.Rights, report.Totals.Duties,
		report.Totals.Goals, report.Totals.Objects, report.Totals.Subjects,
	)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func terminalBlock(b service.Block, width int) string {
	inner := width - 4
	half := inner/2 - 1

	objects := lipgloss.NewStyle().Width(half).Render(
		headingStyle.Render("Предметы") + "\n" + bullets(b.Objects))

	subjectLines := make([]string, 0, len(b.Subjects))
	for _, s := range b.Subjects {
		subjectLines = append(subjectLines, fmt.Sprintf("%s (%s)", s.Name, s.Type))
	}
	subjects := lipgloss.NewStyle().Width(half).Render(
		headingStyle.Render("Субъекты") + "\n" + bullets(subjectLines))

	rights := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Источник", "Субъект права", "Право", "Встречная обязанность", "Субъект обязательств")
	for _, r := range b.Rights {
		rights.Row(r.Source, r.Holder, r.Right, r.CounterDuty, r.Obligor)
	}

	duties := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Источник", "Субъект обязательств", "Обязанность", "Обеспечивает право", "Субъект права")
	for _, d := range b.Duties {
		duties.Row(d.Source, d.Obligor, d.Duty, d.SecuredRight, d.Holder)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("#%d Источник описания правоотношения: %s", b.Index, b.Source)),
		fragmentStyle.Width(inner).Render(b.Fragment),
		headingStyle.Render("Потребности-цели"),
		bullets(b.Goals),
		lipgloss.JoinHorizontal(lipgloss.Top, objects, "  ", subjects),
		headingStyle.Render("Права"),
		rights.String(),
		headingStyle.Render("Обязанности"),
		duties.String(),
	)

	return boxStyle.Width(width).Render(body)
}

func bullets(items []string) string {
	if len(items) == 0 {
		return "—"
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
