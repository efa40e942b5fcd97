package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UpdateEnv names the environment variable that switches MatchesFile from
// comparing to rewriting golden files.
const UpdateEnv = "REVEAL_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Timeline is a recorded sequence of states sampled on a virtual clock.
type Timeline struct {
	Frames []TimelineFrame `json:"frames"`
}

// TimelineFrame is one sample.
type TimelineFrame struct {
	At    string          `json:"at"`
	State json.RawMessage `json:"state"`
}

// Record samples state at t=0 and then after every step up to and
// including until, advancing sched between samples.
func Record(sched *FakeScheduler, until, step time.Duration, state func() any) (*Timeline, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %v", step)
	}
	tl := &Timeline{}
	for at := time.Duration(0); at <= until; at += step {
		if at > 0 {
			sched.Advance(step)
		}
		raw, err := encode(state())
		if err != nil {
			return nil, fmt.Errorf("frame at %v: %w", at, err)
		}
		tl.Frames = append(tl.Frames, TimelineFrame{At: at.String(), State: bytes.TrimSpace(raw)})
		if at > until-step {
			break
		}
	}
	return tl, nil
}

// MatchesFile compares this timeline against a golden file. On mismatch it
// reports a diff and instructions for updating. When REVEAL_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (tl *Timeline) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateEnv) == "1" {
		if err := tl.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadTimeline(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := tl.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateEnv, t.Name())
	}
}

// UpdateFile writes this timeline to the given path, creating directories
// as needed.
func (tl *Timeline) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalTimeline(tl)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this timeline and other. Returns
// empty string if equal.
func (tl *Timeline) Diff(other *Timeline) string {
	a, _ := marshalTimeline(tl)
	b, _ := marshalTimeline(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

func loadTimeline(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tl Timeline
	if err := json.Unmarshal(data, &tl); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &tl, nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// marshalTimeline renders one frame per line so diffs point at the instant
// that changed.
func marshalTimeline(tl *Timeline) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\"frames\": [\n")
	for i, f := range tl.Frames {
		line, err := encode(f)
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(bytes.TrimSpace(line))
		if i < len(tl.Frames)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("]}\n")
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	maxLen := max(len(expectedLines), len(actualLines))
	for i := 0; i < maxLen; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e != a {
			if i < len(expectedLines) {
				fmt.Fprintf(&buf, "-%s\n", e)
			}
			if i < len(actualLines) {
				fmt.Fprintf(&buf, "+%s\n", a)
			}
		}
	}

	return buf.String()
}
