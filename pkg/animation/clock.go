package animation

import "time"

// Clock provides time for schedulers. SystemClock uses wall-clock time.
// Tests inject a fake clock through the scheduler to control timing
// deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock uses system time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }
