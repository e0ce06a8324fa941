// Package label renders and validates the human-readable snapshot labels
// shared between the privileged helper and its caller.
package label

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Labels look like "Tue 03/05  9:07 PM": the hour is space padded to two
// columns. time has no space-padded hour verb, so the clock is padded by hand.
const (
	dateLayout  = "Mon 01/02"
	clockLayout = "3:04"
)

var pattern = regexp.MustCompile(`^\pL{2,4}\.? \d{2}/\d{2} {1,2}([1-9]|1[0-2]):[0-5]\d (AM|PM)$`)

// Render formats t in local time.
func Render(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%s %5s %s", t.Format(dateLayout), t.Format(clockLayout), t.Format("PM"))
}

// Valid reports whether s matches the label grammar exactly.
func Valid(s string) bool {
	return pattern.MatchString(s)
}

var sanitizer = strings.NewReplacer(" ", "_", "/", "-", `\`, "-")

// Sanitize turns a label into a single safe path component.
// Runs of spaces collapse so " 9:07" and "9:07" do not diverge only by padding.
func Sanitize(s string) string {
	return sanitizer.Replace(strings.Join(strings.Fields(s), " "))
}
