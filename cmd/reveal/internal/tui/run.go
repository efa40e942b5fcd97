// Package tui shows pages in the terminal. Pages run on an
// animation.LoopScheduler; the bubbletea program only renders snapshots and
// forwards input back to the loop.
package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/reveal/pkg/animation"
	"github.com/go-drift/reveal/pkg/content"
	"github.com/go-drift/reveal/pkg/errors"
	"github.com/go-drift/reveal/pkg/pages"
)

const closeTimeout = time.Second

// Options configures Run.
type Options struct {
	Content *content.Content
	Timings pages.Timings
	Page    string
	Logger  *slog.Logger

	// ProgramOptions are appended to the default program options.
	ProgramOptions []tea.ProgramOption
}

// Run shows pages until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Content == nil {
		return errors.Configf("tui.Run", "no content")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := animation.NewLoopScheduler(nil)
	driver := NewDriver(loop, opts.Content, opts.Timings, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()

		popts := append([]tea.ProgramOption{
			tea.WithContext(gctx),
			tea.WithAltScreen(),
			tea.WithMouseAllMotion(),
		}, opts.ProgramOptions...)
		_, err := tea.NewProgram(NewModel(driver, opts.Page), popts...).Run()

		closeCtx, done := context.WithTimeout(context.Background(), closeTimeout)
		defer done()
		if cerr := driver.Close(closeCtx); cerr != nil && !errors.Is(cerr, errors.ErrStopped) {
			logger.Warn("close page", "error", cerr)
		}

		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})
	return g.Wait()
}
