package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/reveal/cmd/reveal/internal/frame"
)

func init() {
	RegisterCommand(&Command{
		Name:  "frame",
		Short: "Render a page to a PNG image",
		Long: `Replay a page on a virtual clock and paint it to a PNG image.

Flags:
  --at D         Instant to paint (default 0s)
  --out FILE     Output path (default <page>.png, "-" for stdout)
  --size WxH     Image size (default from reveal.yaml, 960x540)

Examples:
  reveal frame about --at 2s
  reveal frame technologies --at 400ms --out cards.png --size 1280x720`,
		Usage: "reveal frame <page> [--at D] [--out FILE] [--size WxH]",
		Run:   runFrame,
	})
}

type frameOptions struct {
	at            time.Duration
	out           string
	width, height int
}

func parseFrameArgs(args []string) ([]string, frameOptions, error) {
	var opts frameOptions
	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if d, next, ok, err := takeDuration(args, i, "at"); err != nil {
			return nil, opts, err
		} else if ok {
			opts.at, i = d, next
			continue
		}
		if v, next, ok, err := takeFlag(args, i, "out"); err != nil {
			return nil, opts, err
		} else if ok {
			opts.out, i = v, next
			continue
		}
		if v, next, ok, err := takeFlag(args, i, "size"); err != nil {
			return nil, opts, err
		} else if ok {
			w, h, err := parseSize(v)
			if err != nil {
				return nil, opts, err
			}
			opts.width, opts.height, i = w, h, next
			continue
		}
		filtered = append(filtered, args[i])
	}
	if opts.at > maxReplay {
		return nil, opts, fmt.Errorf("replay is limited to %v", maxReplay)
	}
	return filtered, opts, nil
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("--size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("--size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("--size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("--size %q: dimensions must be positive", s)
	}
	return w, h, nil
}

func runFrame(env *Env, args []string) error {
	pageArgs, opts, err := parseFrameArgs(args)
	if err != nil {
		return err
	}
	if len(pageArgs) != 1 {
		return fmt.Errorf("page is required (%s)\n\nUsage: reveal frame <page> [--at D]", pageList())
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

	width, height := cfg.FrameWidth, cfg.FrameHeight
	if opts.width > 0 {
		width, height = opts.width, opts.height
	}
	painter, err := frame.NewPainter(width, height)
	if err != nil {
		return err
	}
	defer painter.Close()

	r, err := startReplay(cfg, pageArgs[0])
	if err != nil {
		return err
	}
	defer r.close()
	r.advanceTo(opts.at)

	img, err := painter.Paint(r.page.Snapshot())
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = r.page.Name() + ".png"
	}
	if out == "-" {
		return frame.Encode(env.Stdout, img)
	}
	if err := frame.WriteFile(out, img); err != nil {
		return err
	}
	logger.Info("frame written", "page", r.page.Name(), "at", opts.at, "path", out, "size", fmt.Sprintf("%dx%d", width, height))
	return nil
}
