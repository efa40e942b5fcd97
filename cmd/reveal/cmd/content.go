package cmd

import (
	"fmt"

	"github.com/go-drift/reveal/pkg/content"
)

func init() {
	RegisterCommand(&Command{
		Name:  "content",
		Short: "Validate and print page content",
		Long: `Validate page content and print it as YAML.

Without --file, prints the content reveal.yaml selects (the built-in
content when none is configured). The output is a valid starting point
for a custom content file.

Flags:
  --file FILE   Validate FILE instead`,
		Usage: "reveal content [--file FILE]",
		Run:   runContent,
	})
}

func runContent(env *Env, args []string) error {
	var file string
	for i := 0; i < len(args); i++ {
		v, next, ok, err := takeFlag(args, i, "file")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("unexpected argument %q\n\nUsage: reveal content [--file FILE]", args[i])
		}
		file, i = v, next
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

	c, source := cfg.Content, cfg.ContentPath
	if file != "" {
		if c, err = content.Load(file); err != nil {
			return err
		}
		source = file
	}
	if source == "" {
		source = "built-in"
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if _, err := env.Stdout.Write(data); err != nil {
		return err
	}
	logger.Info("content valid",
		"source", source,
		"version", c.Version,
		"facts", len(c.About.Facts),
		"technologies", len(c.Technologies.Items),
		"code_lines", len(c.Technologies.Code),
	)
	return nil
}
