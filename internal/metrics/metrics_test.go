package metrics

import "testing"

func TestEventLabel(t *testing.T) {
	tests := []struct {
		event string
		want  string
	}{
		{event: "push", want: "push"},
		{event: "pull_request", want: "pull_request"},
		{event: "", want: EventMissing},
		{event: "issues", want: EventOther},
		{event: "junk-1", want: EventOther},
		{event: "PUSH", want: EventOther},
	}
	for _, tt := range tests {
		if got := EventLabel(tt.event); got != tt.want {
			t.Errorf("EventLabel(%q) = %q; want %q", tt.event, got, tt.want)
		}
	}
}
