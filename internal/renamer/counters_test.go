package renamer

import "testing"

func TestCounters_Summary(t *testing.T) {
	tests := []struct {
		name     string
		counters Counters
		want     string
	}{
		{"nothing", Counters{}, "Total 0 items listed, 0 done."},
		{"done only", Counters{Listed: 5, Done: 3}, "Total 5 items listed, 3 done."},
		{"skips", Counters{Listed: 5, Fails: 2, Done: 3}, "Total 5 items listed, 2 skipped, 3 done."},
		{"errors", Counters{Listed: 1, Errors: 4}, "Total 1 items listed, 4 errors, 0 done."},
		{"everything", Counters{Listed: 9, Fails: 1, Errors: 2, Done: 7}, "Total 9 items listed, 1 skipped, 2 errors, 7 done."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.counters.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCounters_Record(t *testing.T) {
	var c Counters
	kinds := []OutcomeKind{
		OutcomeUnchanged,
		OutcomePretended,
		OutcomeCollision,
		OutcomeDeleteDenied,
		OutcomeMoveDenied,
		OutcomeMoveFailed,
		OutcomeInvalidName,
		OutcomeRenamed,
	}
	for _, k := range kinds {
		c.record(Outcome{Kind: k})
	}

	want := Counters{Listed: 8, Fails: 3, Errors: 2, Done: 1}
	if c != want {
		t.Errorf("counters = %+v, want %+v", c, want)
	}
}

func TestOutcomeKind_String(t *testing.T) {
	if got := OutcomeCollision.String(); got != "collision" {
		t.Errorf("String() = %q", got)
	}
	if got := OutcomeKind(99).String(); got != "unknown" {
		t.Errorf("String() = %q", got)
	}
}
