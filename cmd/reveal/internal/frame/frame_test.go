package frame

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-drift/reveal/pkg/content"
	"github.com/go-drift/reveal/pkg/errors"
	"github.com/go-drift/reveal/pkg/pages"
	drifttest "github.com/go-drift/reveal/pkg/testing"
)

func newPainter(t *testing.T) *Painter {
	t.Helper()
	p, err := NewPainter(960, 540)
	if err != nil {
		t.Fatalf("NewPainter: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func snapshotAt(t *testing.T, name string, at time.Duration, input func(pages.Page)) any {
	t.Helper()
	page, err := pages.New(name, content.Default(), pages.DefaultTimings())
	if err != nil {
		t.Fatal(err)
	}
	sched := drifttest.NewFakeScheduler()
	if err := page.Mount(sched); err != nil {
		t.Fatal(err)
	}
	defer page.Unmount()
	sched.Advance(at)
	if input != nil {
		input(page)
	}
	return page.Snapshot()
}

func countColor(img *image.RGBA, c color.RGBA) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestPaint_AboutBeforeEntryIsBlank(t *testing.T) {
	p := newPainter(t)
	img, err := p.Paint(snapshotAt(t, pages.NameAbout, 50*time.Millisecond, nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := countColor(img, background); got != 960*540 {
		t.Errorf("%d background pixels, want the whole frame", got)
	}
}

func TestPaint_About(t *testing.T) {
	p := newPainter(t)
	img, err := p.Paint(snapshotAt(t, pages.NameAbout, 2*time.Second, nil))
	if err != nil {
		t.Fatal(err)
	}
	if countColor(img, bannerStart) == 0 {
		t.Error("banner gradient missing")
	}
	if countColor(img, statsFill) == 0 {
		t.Error("stats box missing")
	}
}

func TestPaint_AboutHighlightGrowsBanner(t *testing.T) {
	p := newPainter(t)
	plain, _ := p.Paint(snapshotAt(t, pages.NameAbout, time.Second, nil))
	hovered, _ := p.Paint(snapshotAt(t, pages.NameAbout, time.Second, func(page pages.Page) {
		page.Enter(0)
	}))

	if countColor(hovered, bannerStart) <= countColor(plain, bannerStart) {
		t.Error("highlighted banner should be larger")
	}
}

func TestPaint_TechnologiesStagger(t *testing.T) {
	p := newPainter(t)
	python := color.RGBA{0x37, 0x76, 0xab, 0xff}
	docker := color.RGBA{0x24, 0x96, 0xed, 0xff}

	early, err := p.Paint(snapshotAt(t, pages.NameTechnologies, 0, nil))
	if err != nil {
		t.Fatal(err)
	}
	if countColor(early, python) == 0 {
		t.Error("first card should be painted at t=0")
	}
	if countColor(early, docker) != 0 {
		t.Error("last card should not be painted at t=0")
	}

	late, _ := p.Paint(snapshotAt(t, pages.NameTechnologies, time.Second, nil))
	if countColor(late, docker) == 0 {
		t.Error("last card should be painted at t=1s")
	}
	if countColor(late, codeText) == 0 {
		t.Error("first code line should be painted at t=1s")
	}
}

func TestPaint_Unsupported(t *testing.T) {
	p := newPainter(t)
	_, err := p.Paint("not a snapshot")
	if errors.KindOf(err) != errors.KindRender {
		t.Errorf("got %v, want a render error", err)
	}
}

func TestNewPainter_BadSize(t *testing.T) {
	for _, size := range [][2]int{{0, 10}, {10, -1}, {MaxSide + 1, 10}, {10, 4 * MaxSide}} {
		if _, err := NewPainter(size[0], size[1]); errors.KindOf(err) != errors.KindConfig {
			t.Errorf("NewPainter(%d, %d) = %v, want a config error", size[0], size[1], err)
		}
	}
}

func TestEncodeAndWriteFile(t *testing.T) {
	p := newPainter(t)
	img, _ := p.Paint(snapshotAt(t, pages.NameTechnologies, 500*time.Millisecond, nil))

	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v", decoded.Bounds())
	}

	if err := WriteFile(filepath.Join(t.TempDir(), "frame.png"), img); err != nil {
		t.Error(err)
	}
	if err := WriteFile(filepath.Join(t.TempDir(), "missing", "frame.png"), img); errors.KindOf(err) != errors.KindRender {
		t.Errorf("unwritable path: got %v", err)
	}
}

func TestWrap(t *testing.T) {
	p := newPainter(t)
	text := "Мощный язык программирования для backend разработки"
	lines := p.wrap(p.small, text, 150)
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", lines)
	}
	if strings.Join(lines, " ") != text {
		t.Errorf("wrap lost words: %q", lines)
	}
	if got := p.printable(p.small, "🐍 Python"); got != " Python" {
		t.Errorf("printable = %q", got)
	}
}
