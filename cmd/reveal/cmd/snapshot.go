package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-drift/reveal/cmd/reveal/internal/config"
	"github.com/go-drift/reveal/pkg/pages"
	drifttest "github.com/go-drift/reveal/pkg/testing"
)

func init() {
	RegisterCommand(&Command{
		Name:  "snapshot",
		Short: "Print page state at a point in time",
		Long: `Replay a page on a virtual clock and print its state as JSON.

No real time passes: timers fire in order up to the requested instant.

Flags:
  --at D      Print one snapshot at D (default 0s)
  --until D   Print a snapshot every --step up to and including D, one
              JSON object per line
  --step D    Interval for --until (default 100ms)

Examples:
  reveal snapshot about --at 1.2s
  reveal snapshot technologies --until 2s --step 200ms`,
		Usage: "reveal snapshot <page> [--at D | --until D [--step D]]",
		Run:   runSnapshot,
	})
}

// maxReplay bounds --at and --until. Every timer still fires on the way.
const maxReplay = 24 * time.Hour

type snapshotOptions struct {
	at    time.Duration
	until time.Duration
	step  time.Duration
}

func parseSnapshotArgs(args []string) ([]string, snapshotOptions, error) {
	opts := snapshotOptions{step: 100 * time.Millisecond}
	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		var matched bool
		for _, f := range []struct {
			name string
			dst  *time.Duration
		}{
			{"at", &opts.at},
			{"until", &opts.until},
			{"step", &opts.step},
		} {
			d, next, ok, err := takeDuration(args, i, f.name)
			if err != nil {
				return nil, opts, err
			}
			if ok {
				*f.dst = d
				i = next
				matched = true
				break
			}
		}
		if !matched {
			filtered = append(filtered, args[i])
		}
	}
	if opts.step <= 0 {
		return nil, opts, fmt.Errorf("--step must be positive")
	}
	if opts.at > maxReplay || opts.until > maxReplay {
		return nil, opts, fmt.Errorf("replay is limited to %v", maxReplay)
	}
	return filtered, opts, nil
}

// record is one line of snapshot output.
type record struct {
	Page    string `json:"page"`
	At      string `json:"at"`
	Pending int    `json:"pending"`
	State   any    `json:"state"`
}

func runSnapshot(env *Env, args []string) error {
	pageArgs, opts, err := parseSnapshotArgs(args)
	if err != nil {
		return err
	}
	if len(pageArgs) != 1 {
		return fmt.Errorf("page is required (%s)\n\nUsage: reveal snapshot <page> [--at D]", pageList())
	}

	cfg, err := env.resolve()
	if err != nil {
		return err
	}
	logger, err := env.logger(cfg, true)
	if err != nil {
		return err
	}
	defer logger.Close()

	r, err := startReplay(cfg, pageArgs[0])
	if err != nil {
		return err
	}
	defer r.close()

	enc := json.NewEncoder(env.Stdout)
	if opts.until == 0 {
		enc.SetIndent("", "  ")
		r.advanceTo(opts.at)
		return enc.Encode(r.record())
	}

	for at, ok := time.Duration(0), true; ok; at, ok = nextSample(at, opts.until, opts.step) {
		r.advanceTo(at)
		if err := enc.Encode(r.record()); err != nil {
			return err
		}
	}
	logger.Debug("replay finished", "page", r.page.Name(), "fired", r.sched.Fired())
	return nil
}

// nextSample returns the sample after at, or false once at+step would pass
// until. It never overflows.
func nextSample(at, until, step time.Duration) (time.Duration, bool) {
	if at > until-step {
		return 0, false
	}
	return at + step, true
}

// replay runs a mounted page on a virtual clock.
type replay struct {
	page    pages.Page
	sched   *drifttest.FakeScheduler
	elapsed time.Duration
}

func startReplay(cfg *config.Resolved, name string) (*replay, error) {
	page, err := pages.New(name, cfg.Content, cfg.Timings)
	if err != nil {
		return nil, err
	}
	sched := drifttest.NewFakeScheduler()
	if err := page.Mount(sched); err != nil {
		return nil, err
	}
	return &replay{page: page, sched: sched}, nil
}

func (r *replay) advanceTo(at time.Duration) {
	if at > r.elapsed {
		r.sched.Advance(at - r.elapsed)
		r.elapsed = at
	}
}

func (r *replay) record() record {
	return record{
		Page:    r.page.Name(),
		At:      r.elapsed.String(),
		Pending: r.page.Pending(),
		State:   r.page.Snapshot(),
	}
}

func (r *replay) close() {
	r.page.Unmount()
}

func pageList() string {
	return strings.Join(pages.Names(), " or ")
}
