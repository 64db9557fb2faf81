package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
)

// WriteCalendar renders tasks as an iCalendar (RFC 5545) feed. All-day
// events for tasks without a time, 1-hour events otherwise.
func WriteCalendar(tasks []model.Task, now time.Time) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//Lifeboard//Calendar Feed//EN\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")

	stamp := now.UTC().Format("20060102T150405Z")
	for _, task := range tasks {
		b.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&b, "UID:task-%d@lifeboard\r\n", task.ID)
		fmt.Fprintf(&b, "DTSTAMP:%s\r\n", stamp)

		if task.Time == "" {
			fmt.Fprintf(&b, "DTSTART;VALUE=DATE:%s\r\n", task.Date.Format("20060102"))
			fmt.Fprintf(&b, "DTEND;VALUE=DATE:%s\r\n", task.Date.AddDate(0, 0, 1).Format("20060102"))
		} else {
			start := taskStart(task)
			fmt.Fprintf(&b, "DTSTART:%s\r\n", start.Format("20060102T150405Z"))
			fmt.Fprintf(&b, "DTEND:%s\r\n", start.Add(time.Hour).Format("20060102T150405Z"))
		}

		fmt.Fprintf(&b, "SUMMARY:%s\r\n", escapeText(task.Title))
		if task.Notes != "" {
			fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", escapeText(task.Notes))
		}
		if task.Completed {
			b.WriteString("STATUS:COMPLETED\r\n")
		}
		b.WriteString("END:VEVENT\r\n")
	}

	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func taskStart(task model.Task) time.Time {
	parsed, err := time.Parse("15:04", task.Time)
	if err != nil {
		return task.Date
	}
	return time.Date(
		task.Date.Year(), task.Date.Month(), task.Date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.UTC,
	)
}

// escapeText applies RFC 5545 text escaping.
func escapeText(s string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return replacer.Replace(s)
}
