package export

import (
	"strings"
	"testing"
	"time"

	"github.com/lifeboard/lifeboard-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
)

func TestWriteCalendarAllDayEvent(t *testing.T) {
	tasks := []model.Task{{
		ID:    7,
		Title: "Dentist",
		Date:  time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC),
	}}

	feed := WriteCalendar(tasks, time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC))

	assert.Contains(t, feed, "BEGIN:VCALENDAR\r\n")
	assert.Contains(t, feed, "UID:task-7@lifeboard\r\n")
	assert.Contains(t, feed, "DTSTAMP:20260601T120000Z\r\n")
	assert.Contains(t, feed, "DTSTART;VALUE=DATE:20260603\r\n")
	assert.Contains(t, feed, "DTEND;VALUE=DATE:20260604\r\n")
	assert.Contains(t, feed, "SUMMARY:Dentist\r\n")
	assert.NotContains(t, feed, "STATUS:COMPLETED")
	assert.True(t, strings.HasSuffix(feed, "END:VCALENDAR\r\n"))
}

func TestWriteCalendarTimedEvent(t *testing.T) {
	tasks := []model.Task{{
		ID:    3,
		Title: "Soccer practice",
		Date:  time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC),
		Time:  "16:30",
	}}

	feed := WriteCalendar(tasks, time.Now())

	assert.Contains(t, feed, "DTSTART:20260603T163000Z\r\n")
	assert.Contains(t, feed, "DTEND:20260603T173000Z\r\n")
	assert.NotContains(t, feed, "VALUE=DATE")
}

func TestWriteCalendarEscapesText(t *testing.T) {
	tasks := []model.Task{{
		ID:    1,
		Title: "Pack; also, buy tape",
		Notes: "aisle 4\nback wall",
		Date:  time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC),
	}}

	feed := WriteCalendar(tasks, time.Now())

	assert.Contains(t, feed, "SUMMARY:Pack\\; also\\, buy tape\r\n")
	assert.Contains(t, feed, "DESCRIPTION:aisle 4\\nback wall\r\n")
}

func TestWriteCalendarMarksCompleted(t *testing.T) {
	tasks := []model.Task{{
		ID:        2,
		Title:     "Mow lawn",
		Date:      time.Date(2026, time.June, 3, 0, 0, 0, 0, time.UTC),
		Completed: true,
	}}

	feed := WriteCalendar(tasks, time.Now())
	assert.Contains(t, feed, "STATUS:COMPLETED\r\n")
}
