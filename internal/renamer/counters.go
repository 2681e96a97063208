package renamer

import (
	"fmt"
	"strings"
)

// Counters tallies what a run did with the entries it considered
type Counters struct {
	Listed int // entries that passed the filter
	Fails  int // skipped: collision without force, or the move failed
	Errors int // access failures while listing, deleting or moving
	Done   int // renamed
}

// Summary renders the one-line end-of-run report. Skips and errors are only
// mentioned when non-zero.
func (c Counters) Summary() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Total %d items listed", c.Listed)

	if c.Fails > 0 {
		fmt.Fprintf(&sb, ", %d skipped", c.Fails)
	}

	if c.Errors > 0 {
		fmt.Fprintf(&sb, ", %d errors", c.Errors)
	}

	fmt.Fprintf(&sb, ", %d done.", c.Done)

	return sb.String()
}

// record folds one entry outcome into the tally
func (c *Counters) record(o Outcome) {
	c.Listed++

	switch o.Kind {
	case OutcomeRenamed:
		c.Done++
	case OutcomeCollision, OutcomeMoveFailed, OutcomeInvalidName:
		c.Fails++
	case OutcomeDeleteDenied, OutcomeMoveDenied:
		c.Errors++
	}
}
