package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yz4230/repowatch/internal/entity"
)

const (
	headerLayout = "2006-01-02 15:04:05 UTC"
	onLayout     = "02 Jan 2006 - 15:04 UTC"
	clockLayout  = "15:04:05"
	// localLayout is an ISO-8601 time without a zone, read as UTC.
	localLayout  = "2006-01-02T15:04:05.999999999"
)

var (
	heavyRule = strings.Repeat("=", 60)
	lightRule = strings.Repeat("-", 40)
)

// Format renders records as a console block. now stamps the header.
func Format(records []*entity.Record, now time.Time) string {
	if len(records) == 0 {
		return "No new data to display"
	}

	var b strings.Builder
	fmt.Fprintln(&b, heavyRule)
	fmt.Fprintf(&b, "Repository Data Update - %s\n", now.UTC().Format(headerLayout))
	fmt.Fprintln(&b, heavyRule)
	for _, r := range records {
		fmt.Fprintf(&b, "Author: %s\n", r.Author)
		fmt.Fprintf(&b, "Pushed to: %s\n", r.PushedTo)
		fmt.Fprintf(&b, "On: %s\n", FormatOn(r.On))
		fmt.Fprintf(&b, "Sample: %s\n", r.Sample)
		fmt.Fprintln(&b, lightRule)
	}
	fmt.Fprintf(&b, "Total records: %d\n", len(records))
	b.WriteString(heavyRule)
	return b.String()
}

// FormatOn renders an ISO-8601 event time for display. Values that do not
// parse are returned unchanged.
func FormatOn(on string) string {
	if !strings.Contains(on, "T") {
		return on
	}
	t, err := time.Parse(time.RFC3339, on)
	if err != nil {
		if t, err = time.Parse(localLayout, on); err != nil {
			return on
		}
	}
	return t.UTC().Format(onLayout)
}

// Heartbeat is printed when a poll finds nothing new.
func Heartbeat(now time.Time) string {
	return fmt.Sprintf("%s - Monitoring for changes...", now.UTC().Format(clockLayout))
}

func writeLine(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, s)
}
