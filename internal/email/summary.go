// Package email renders weekly attendance summaries for delivery.
package email

import (
	"fmt"
	"strings"

	"rollcall/internal/domain"
	"rollcall/internal/port"
)

var summaryStatuses = []domain.DayStatus{domain.StatusOnTime, domain.StatusLate, domain.StatusAbsent}

// Subject returns the subject line for a weekly summary.
func Subject(s port.WeeklySummary) string {
	return fmt.Sprintf("Attendance for week %s", s.Week)
}

// TextBody renders s as a plain-text table of per-day counts.
func TextBody(s port.WeeklySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Week %s (starting %s)\n", s.Week, s.Week.Monday().Format("01/02/2006"))
	fmt.Fprintf(&b, "%d people, %d documents processed\n\n", s.People, s.Documents)

	b.WriteString("Day ")
	for _, st := range summaryStatuses {
		fmt.Fprintf(&b, "%5s", st)
	}
	b.WriteByte('\n')
	for _, d := range domain.Weekdays {
		fmt.Fprintf(&b, "%-4s", d)
		for _, st := range summaryStatuses {
			fmt.Fprintf(&b, "%5d", s.Counts[d][st])
		}
		b.WriteByte('\n')
	}

	if len(s.Failures) > 0 {
		b.WriteString("\nNot processed:\n")
		for _, f := range s.Failures {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}
	return b.String()
}

// HTMLBody renders s as a small HTML table.
func HTMLBody(s port.WeeklySummary) string {
	var rows strings.Builder
	for _, d := range domain.Weekdays {
		fmt.Fprintf(&rows, "<tr><td>%s</td>", d)
		for _, st := range summaryStatuses {
			fmt.Fprintf(&rows, `<td style="text-align: center;">%d</td>`, s.Counts[d][st])
		}
		rows.WriteString("</tr>\n")
	}

	var failures string
	if len(s.Failures) > 0 {
		var fb strings.Builder
		fb.WriteString("<p>Not processed:</p><ul>")
		for _, f := range s.Failures {
			fmt.Fprintf(&fb, "<li>%s</li>", htmlEscape(f))
		}
		fb.WriteString("</ul>")
		failures = fb.String()
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Attendance for week %s</h2>
  <p>%d people, %d documents processed.</p>
  <table style="border-collapse: collapse;">
    <tr><th>Day</th><th>Y</th><th>L</th><th>A</th></tr>
%s  </table>
  %s
</body>
</html>`, s.Week, s.People, s.Documents, rows.String(), failures)
}

var htmlReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func htmlEscape(s string) string { return htmlReplacer.Replace(s) }
