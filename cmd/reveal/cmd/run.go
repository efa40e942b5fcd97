package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"slices"
	"syscall"

	"github.com/go-drift/reveal/cmd/reveal/internal/tui"
	"github.com/go-drift/reveal/pkg/pages"
)

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Show pages in the terminal",
		Long: `Show pages in the terminal with live timers.

Keys:
  tab        Switch to the next page (the old page is torn down)
  arrows     Move the highlight
  esc        Clear the mouse highlight
  q, ctrl+c  Quit

Moving the mouse over the fact banner or a technology card highlights it.

The terminal belongs to the screen while running, so logs go only to the
file or journal configured in reveal.yaml.`,
		Usage: "reveal run [page]",
		Run:   runRun,
	})
}

func runRun(env *Env, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("too many arguments\n\nUsage: reveal run [page]")
	}

	cfg, err := env.resolve()
	if err != nil {
		return err
	}

	page := cfg.Page
	if len(args) == 1 {
		page = args[0]
		if !slices.Contains(pages.Names(), page) {
			return fmt.Errorf("unknown page %q (use %s)", page, pageList())
		}
	}

	logger, err := env.logger(cfg, false)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "page", page, "version", Version)
	err = tui.Run(ctx, tui.Options{
		Content: cfg.Content,
		Timings: cfg.Timings,
		Page:    page,
		Logger:  logger.Logger,
	})
	if err != nil {
		logger.Error("terminal ui stopped", "error", err)
		return err
	}
	logger.Info("stopped")
	return nil
}
