// Package digest holds the pure pieces of digest assembly: truncating the
// ranked story list and formatting the subject line.
package digest

import (
	"fmt"
	"time"

	"github.com/kova98/hndigest/models"
)

const (
	subjectPrefix  = "Hacker News Daily Digest"
	longDateLayout = "Monday, January 2, 2006"
)

// Select returns the first min(n, len(stories)) stories in input order.
// The input is already ranked by the source; nothing is re-sorted.
func Select(stories []models.Story, n int) []models.Story {
	if n < 0 {
		n = 0
	}
	if n > len(stories) {
		n = len(stories)
	}
	return stories[:n]
}

// Subject returns the digest subject line for the given run time.
func Subject(t time.Time) string {
	return fmt.Sprintf("%s for %s", subjectPrefix, LongDate(t))
}

// LongDate formats t the way the digest header shows it.
func LongDate(t time.Time) string {
	return t.Format(longDateLayout)
}
