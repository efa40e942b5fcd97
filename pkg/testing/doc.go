// Package testing provides virtual-time doubles for testing timed
// components deterministically.
//
// # Quick Start
//
// Drive components with a FakeScheduler and advance time explicitly:
//
//	func TestTitle(t *testing.T) {
//	    sched := drifttest.NewFakeScheduler()
//	    tw, _ := animation.NewTypewriter("Hi", 150*time.Millisecond)
//	    tw.Activate(sched)
//	    tw.Arm()
//
//	    sched.Advance(150 * time.Millisecond)
//	    if got := tw.Text(); got != "H" {
//	        t.Errorf("got %q", got)
//	    }
//	}
//
// Advance fires every callback due within the window in due-time order,
// moving the clock to each due time first, so callbacks that read Now see
// the instant they were scheduled for.
//
// # Timelines
//
// Record samples a state function every step and returns a Timeline. Two
// replays of the same page must produce identical timelines; MatchesFile
// compares against a golden file, rewritten when REVEAL_UPDATE_SNAPSHOTS=1.
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import drifttest "github.com/go-drift/reveal/pkg/testing"
package testing
