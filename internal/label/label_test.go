package label

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 21, 7, 0, 0, time.Local)
	assert.Equal(t, "Tue 03/05  9:07 PM", Render(ts))

	ts = time.Date(2024, time.December, 30, 11, 45, 0, 0, time.Local)
	assert.Equal(t, "Mon 12/30 11:45 AM", Render(ts))
}

func TestRenderedLabelsAreValid(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 48; i++ {
		l := Render(start.Add(time.Duration(i) * 37 * time.Minute))
		assert.True(t, Valid(l), l)
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"Tue 03/05  9:07 PM", true},
		{"Tue 03/05 9:07 PM", true},
		{"Mon 12/30 11:45 AM", true},
		{"Tue 03/05 9:7 PM", false},
		{"Tue 03/05 09:07 PM", false},
		{"Tue 03/05  0:07 AM", false},
		{"Tue 03/05 13:07 PM", false},
		{"Tue 03/05 12:60 PM", false},
		{"Tue 03/05 12:59 AM", true},
		{"Tue 3/05 9:07 PM", false},
		{"Tue 03/05 9:07 pm", false},
		{"Tue 03/05 9:07 PM ", false},
		{"../../etc 03/05 9:07 PM", false},
		{"Tue 03/05 9:07 PM/../../x", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Valid(c.in), c.in)
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "Tue_03-05_9:07_PM", Sanitize("Tue 03/05  9:07 PM"))
	assert.Equal(t, Sanitize("Tue 03/05 9:07 PM"), Sanitize("Tue 03/05  9:07 PM"))
	assert.NotContains(t, Sanitize("a/b\\c d"), "/")
}
