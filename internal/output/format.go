// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskdash/internal/service"
)

const (
	// DueLayout is how due dates are printed.
	DueLayout = "2006-01-02 15:04"

	// NoTasks is printed for an empty list.
	NoTasks = "no tasks found"
)

// FormatTask formats one task line.
// Format: "{N:>4}  {STATUS:<11}  {TITLE}[  (due {DUE})]\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %-11s  %s%s\n", num, statusLabel(task.Status), normalizeTitle(task.Title), dueSuffix(task.DueDate))
}

// FormatTasks formats a numbered list, or NoTasks when empty and not quiet.
func FormatTasks(w io.Writer, tasks []service.Task, quiet bool) {
	if len(tasks) == 0 {
		if !quiet {
			fmt.Fprintln(w, NoTasks)
		}
		return
	}
	for i, task := range tasks {
		FormatTask(w, i+1, task)
	}
}

// FormatTaskDetail prints every field of a task, one per line.
func FormatTaskDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "status:      %s\n", statusLabel(task.Status))
	if desc := strings.TrimSpace(task.Description); desc != "" {
		fmt.Fprintf(w, "description: %s\n", singleLine(desc))
	}
	if task.DueDate != nil {
		fmt.Fprintf(w, "due:         %s\n", task.DueDate.Local().Format(DueLayout))
	} else {
		fmt.Fprintln(w, "due:         N/A")
	}
}

func statusLabel(s service.Status) string {
	if s == "" {
		return string(service.StatusPending)
	}
	return string(s)
}

func dueSuffix(due *time.Time) string {
	if due == nil {
		return ""
	}
	return "  (due " + due.Local().Format(DueLayout) + ")"
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = singleLine(title)

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
