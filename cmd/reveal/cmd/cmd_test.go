package cmd

import (
	"bytes"
	"encoding/json"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newEnv(t *testing.T) (*Env, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	return &Env{Stdout: &stdout, Stderr: &bytes.Buffer{}, Dir: t.TempDir()}, &stdout
}

func TestExecute_HelpAndVersion(t *testing.T) {
	env, out := newEnv(t)
	if err := ExecuteArgs(env, nil); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"run", "snapshot", "frame", "content"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("help does not list %q", name)
		}
	}

	out.Reset()
	if err := ExecuteArgs(env, []string{"--version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Errorf("version output = %q", out.String())
	}

	out.Reset()
	if err := ExecuteArgs(env, []string{"snapshot", "--help"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "reveal snapshot <page>") {
		t.Errorf("command help = %q", out.String())
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	env, _ := newEnv(t)
	if err := ExecuteArgs(env, []string{"deploy"}); err == nil {
		t.Error("expected an error")
	}
}

func TestExecute_GlobalFlags(t *testing.T) {
	env, _ := newEnv(t)
	if err := ExecuteArgs(env, []string{"--config"}); err == nil {
		t.Error("--config without a value should fail")
	}

	env, _ = newEnv(t)
	err := ExecuteArgs(env, []string{"--verbose", "--config=" + filepath.Join(env.Dir, "missing.yaml"), "content"})
	if err == nil {
		t.Error("a missing explicit config should fail")
	}
	if !env.Verbose {
		t.Error("--verbose not applied")
	}
}

func TestSnapshot_At(t *testing.T) {
	env, out := newEnv(t)
	if err := ExecuteArgs(env, []string{"snapshot", "about", "--at", "1150ms"}); err != nil {
		t.Fatal(err)
	}

	var rec struct {
		Page    string `json:"page"`
		At      string `json:"at"`
		Pending int    `json:"pending"`
		State   struct {
			Visible bool `json:"visible"`
		} `json:"state"`
	}
	if err := json.Unmarshal(out.Bytes(), &rec); err != nil {
		t.Fatalf("%v: %s", err, out.String())
	}
	if rec.Page != "about" || rec.At != "1.15s" || !rec.State.Visible {
		t.Errorf("record = %+v", rec)
	}
	if !strings.Contains(out.String(), "Привет!") {
		t.Errorf("title not typed: %s", out.String())
	}
}

func TestSnapshot_Until(t *testing.T) {
	env, out := newEnv(t)
	if err := ExecuteArgs(env, []string{"snapshot", "technologies", "--until=1s", "--step=200ms"}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6", len(lines))
	}
	var last record
	if err := json.Unmarshal([]byte(lines[5]), &last); err != nil {
		t.Fatal(err)
	}
	if last.At != "1s" {
		t.Errorf("last at = %q", last.At)
	}
}

func TestSnapshot_Errors(t *testing.T) {
	tests := [][]string{
		{"snapshot"},
		{"snapshot", "contact"},
		{"snapshot", "about", "--at", "soon"},
		{"snapshot", "about", "--at", "-1s"},
		{"snapshot", "about", "--until", "1s", "--step", "0s"},
		{"snapshot", "about", "--until", "2562047h", "--step", "2562047h"},
		{"snapshot", "about", "--at", "25h"},
	}
	for _, args := range tests {
		env, _ := newEnv(t)
		if err := ExecuteArgs(env, args); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestSnapshot_UsesConfigTimings(t *testing.T) {
	env, out := newEnv(t)
	cfg := "timings:\n  entry: 1ms\n  title: 10ms\n"
	if err := os.WriteFile(filepath.Join(env.Dir, "reveal.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ExecuteArgs(env, []string{"snapshot", "about", "--at", "100ms"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Привет!") {
		t.Errorf("fast title should be complete: %s", out.String())
	}
}

func TestFrame(t *testing.T) {
	env, _ := newEnv(t)
	path := filepath.Join(env.Dir, "cards.png")
	if err := ExecuteArgs(env, []string{"frame", "technologies", "--at", "1s", "--out", path, "--size", "320x200"}); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 320 || cfg.Height != 200 {
		t.Errorf("size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestFrame_Stdout(t *testing.T) {
	env, out := newEnv(t)
	if err := ExecuteArgs(env, []string{"frame", "about", "--out=-"}); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(out); err != nil {
		t.Errorf("stdout is not a PNG: %v", err)
	}
}

func TestFrame_RejectsOversizedInput(t *testing.T) {
	for _, args := range [][]string{
		{"frame", "about", "--size", "3037000500x3037000500", "--out", "-"},
		{"frame", "about", "--size", "16385x10", "--out", "-"},
		{"frame", "about", "--at", "2562047h", "--out", "-"},
	} {
		env, out := newEnv(t)
		if err := ExecuteArgs(env, args); err == nil {
			t.Errorf("%v: expected an error", args)
		}
		if out.Len() != 0 {
			t.Errorf("%v: wrote %d bytes", args, out.Len())
		}
	}

	env, _ := newEnv(t)
	t.Setenv("REVEAL_FRAME_WIDTH", "3037000500")
	if err := ExecuteArgs(env, []string{"frame", "about", "--out", "-"}); err == nil {
		t.Error("expected an error for an oversized REVEAL_FRAME_WIDTH")
	}
}

func TestNextSample(t *testing.T) {
	var got []time.Duration
	for at, ok := time.Duration(0), true; ok; at, ok = nextSample(at, 250*time.Millisecond, 100*time.Millisecond) {
		got = append(got, at)
	}
	if len(got) != 3 || got[2] != 200*time.Millisecond {
		t.Errorf("samples = %v, want 0s 100ms 200ms", got)
	}

	huge := time.Duration(math.MaxInt64)
	if at, ok := nextSample(0, huge, huge); !ok || at != huge {
		t.Errorf("nextSample(0) = %v, %v", at, ok)
	}
	if _, ok := nextSample(huge, huge, huge); ok {
		t.Error("nextSample overflowed past until")
	}
}

func TestParseSize(t *testing.T) {
	if w, h, err := parseSize("1280X720"); err != nil || w != 1280 || h != 720 {
		t.Errorf("parseSize = %d, %d, %v", w, h, err)
	}
	for _, bad := range []string{"1280", "ax720", "0x10", "10x-1"} {
		if _, _, err := parseSize(bad); err == nil {
			t.Errorf("parseSize(%q) should fail", bad)
		}
	}
}

func TestContent(t *testing.T) {
	env, out := newEnv(t)
	if err := ExecuteArgs(env, []string{"content"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Технологии") || !strings.Contains(out.String(), "version: v1.0.0") {
		t.Errorf("content output = %s", out.String())
	}

	// The printed content is itself a valid content file.
	path := filepath.Join(env.Dir, "content.yaml")
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	env2, _ := newEnv(t)
	if err := ExecuteArgs(env2, []string{"content", "--file", path}); err != nil {
		t.Errorf("round trip: %v", err)
	}

	env3, _ := newEnv(t)
	if err := ExecuteArgs(env3, []string{"content", "extra"}); err == nil {
		t.Error("expected an error for an unexpected argument")
	}
}

func TestRun_RejectsUnknownPage(t *testing.T) {
	env, _ := newEnv(t)
	if err := ExecuteArgs(env, []string{"run", "contact"}); err == nil {
		t.Error("expected an error")
	}
}

func TestTakeDuration(t *testing.T) {
	d, next, ok, err := takeDuration([]string{"--at", "3s"}, 0, "at")
	if err != nil || !ok || next != 1 || d != 3*time.Second {
		t.Errorf("takeDuration = %v, %d, %v, %v", d, next, ok, err)
	}
	if _, _, ok, _ := takeDuration([]string{"--other"}, 0, "at"); ok {
		t.Error("matched the wrong flag")
	}
}
