package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/schedule"
	"github.com/pbaille/timebox/internal/timeutil"
)

const (
	dash     = '─'
	moonMark = "☾"
	doneMark = "✓"
	openMark = "○"
)

var (
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(false)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("221"))
	todayStyle  = lipgloss.NewStyle().Reverse(true)

	categoryStyles = map[domain.Category]lipgloss.Style{
		domain.CategorySleep:    lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		domain.CategoryWork:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		domain.CategoryPersonal: lipgloss.NewStyle().Foreground(lipgloss.Color("213")),
		domain.CategoryHealth:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func line(length int) string {
	var sb strings.Builder
	for range length {
		sb.WriteRune(dash)
	}
	return sb.String()
}

func categoryTag(c domain.Category) string {
	return categoryStyles[c].Render("[" + string(c) + "]")
}

func renderTaskLine(t domain.Task, format string) string {
	mark := openMark
	if t.Completed {
		mark = doneMark
	}

	when := ""
	if start, end, ok := t.Schedule.Range(); ok {
		when = fmt.Sprintf("%s %s-%s ", timeutil.FormatDay(start), start.Format(format), end.Format(format))
	} else if day, ok := t.Schedule.AnchorDay(); ok {
		when = timeutil.FormatDay(day) + " "
	}

	return fmt.Sprintf("%s %s %s%s %s",
		faintStyle.Render(shortID(t.ID)), mark, when, titleStyle.Render(truncate(t.Title, 60)), categoryTag(t.Category))
}

func renderProgress(p schedule.Progress) string {
	return fmt.Sprintf("%d/%d done (%.0f%%)", p.Completed, p.Total, p.Ratio*100)
}

func renderTimeline(day time.Time, slots []schedule.Slot, dayTasks []domain.Task, p schedule.Progress, format string) string {
	var sb strings.Builder
	header := fmt.Sprintf("%s %s", day.Format("Monday"), timeutil.FormatDay(day))
	sb.WriteString(headerStyle.Render(header) + "  " + renderProgress(p) + "\n")
	sb.WriteString(faintStyle.Render(line(40)) + "\n")

	// untimed tasks anchored to the day go above the hours
	for _, t := range dayTasks {
		if !t.Schedule.IsTimed() {
			sb.WriteString("      " + renderTaskLine(t, format) + "\n")
		}
	}

	for _, slot := range slots {
		label := timeutil.At(day, slot.Hour, 0).Format(format)
		marker := " "
		if slot.SleepStart {
			marker = moonMark
		}

		if len(slot.Tasks) == 0 {
			row := fmt.Sprintf("%s %s", label, marker)
			if slot.Asleep {
				row = faintStyle.Render(row + " sleep")
			}
			sb.WriteString(row + "\n")
			continue
		}

		for i, t := range slot.Tasks {
			prefix := fmt.Sprintf("%s %s", label, marker)
			if i > 0 {
				prefix = strings.Repeat(" ", len([]rune(prefix)))
			}
			if slot.Asleep {
				prefix = faintStyle.Render(prefix)
			}
			sb.WriteString(prefix + " " + renderTaskLine(t, format) + "\n")
		}
	}
	return sb.String()
}

// renderMonth draws a Monday-first grid; each cell shows the number of
// tasks anchored to that day.
func renderMonth(month time.Time, tasks []domain.Task, today time.Time) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render(month.Format("January 2006")) + "\n")
	sb.WriteString(faintStyle.Render(" Mo   Tu   We   Th   Fr   Sa   Su") + "\n")

	for i, d := range timeutil.MonthGrid(month, time.Monday) {
		n := len(schedule.TasksForDay(tasks, d))
		cell := fmt.Sprintf("%2d", d.Day())
		if n > 0 {
			cell += fmt.Sprintf("·%d", n)
		} else {
			cell += "  "
		}

		switch {
		case timeutil.SameDay(d, today):
			cell = todayStyle.Render(cell)
		case d.Month() != month.Month():
			cell = faintStyle.Render(cell)
		}

		sb.WriteString(" " + cell)
		if i%7 == 6 {
			sb.WriteString("\n")
		} else {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}
