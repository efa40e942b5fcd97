package tui

import (
	"context"
	"log/slog"

	"github.com/go-drift/reveal/pkg/animation"
	"github.com/go-drift/reveal/pkg/content"
	"github.com/go-drift/reveal/pkg/errors"
	"github.com/go-drift/reveal/pkg/pages"
)

// Frame is one published page state.
type Frame struct {
	Page  string
	State any
}

// Driver owns the mounted page. The page lives on the loop goroutine;
// other goroutines reach it only through Show and Input, and read it only
// through Frames.
type Driver struct {
	loop    *animation.LoopScheduler
	content *content.Content
	timings pages.Timings
	logger  *slog.Logger

	// Loop goroutine only.
	page  pages.Page
	unsub func()

	frames chan Frame
}

// NewDriver returns a driver mounting pages on loop.
func NewDriver(loop *animation.LoopScheduler, c *content.Content, t pages.Timings, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		loop:    loop,
		content: c,
		timings: t,
		logger:  logger,
		frames:  make(chan Frame, 1),
	}
}

// Frames delivers the latest page state. Frames not yet received are
// replaced by newer ones.
func (d *Driver) Frames() <-chan Frame {
	return d.frames
}

// Show unmounts the current page and mounts a fresh page named name.
func (d *Driver) Show(name string) bool {
	return d.loop.Dispatch(func() { d.show(name) })
}

// Input runs fn against the mounted page on the loop goroutine.
func (d *Driver) Input(fn func(pages.Page)) bool {
	return d.loop.Dispatch(func() {
		if d.page != nil {
			fn(d.page)
		}
	})
}

// Close unmounts the current page and waits for it.
func (d *Driver) Close(ctx context.Context) error {
	return d.loop.Do(ctx, d.unmount)
}

func (d *Driver) show(name string) {
	d.unmount()

	page, err := pages.New(name, d.content, d.timings)
	if err != nil {
		d.fail("build page", name, err)
		return
	}
	// Set before Mount: components may publish synchronously.
	d.page = page
	d.unsub = page.OnChange(d.publish)
	if err := page.Mount(d.loop); err != nil {
		d.fail("mount page", name, err)
		d.unmount()
		return
	}
	d.logger.Debug("page mounted", "page", name, "pending", page.Pending())
	d.publish()
}

// fail routes structured errors to the installed error handler.
func (d *Driver) fail(msg, page string, err error) {
	if !errors.ReportErr(err) {
		d.logger.Error(msg, "page", page, "error", err)
	}
}

func (d *Driver) unmount() {
	if d.unsub != nil {
		d.unsub()
		d.unsub = nil
	}
	if d.page != nil {
		d.page.Unmount()
		d.logger.Debug("page unmounted", "page", d.page.Name())
		d.page = nil
	}
}

func (d *Driver) publish() {
	if d.page == nil {
		return
	}
	f := Frame{Page: d.page.Name(), State: d.page.Snapshot()}
	select {
	case <-d.frames:
	default:
	}
	select {
	case d.frames <- f:
	default:
	}
}
