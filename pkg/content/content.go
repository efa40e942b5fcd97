// Package content holds the text the pages disclose: the about page title
// and fact list, and the technology cards with their code script.
//
// The built-in content is embedded from default.yaml. Alternative content
// files use the same layout and must declare a v1 semantic version.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/reveal/pkg/errors"
)

//go:embed default.yaml
var defaultYAML []byte

// Content is a complete content file.
type Content struct {
	Version      string       `yaml:"version" json:"version"`
	About        About        `yaml:"about" json:"about"`
	Technologies Technologies `yaml:"technologies" json:"technologies"`
}

// About is the content of the about page.
type About struct {
	Title  string   `yaml:"title" json:"title"`
	Banner string   `yaml:"banner,omitempty" json:"banner,omitempty"`
	Facts  []string `yaml:"facts" json:"facts"`
}

// Technologies is the content of the technologies page.
type Technologies struct {
	Heading string       `yaml:"heading,omitempty" json:"heading,omitempty"`
	Items   []Technology `yaml:"items" json:"items"`
	Code    []string     `yaml:"code" json:"code"`
}

// Technology is one card.
type Technology struct {
	Name        string `yaml:"name" json:"name"`
	Icon        string `yaml:"icon" json:"icon"`
	Description string `yaml:"description" json:"description"`
	// Color is a "#rrggbb" hex string.
	Color string `yaml:"color" json:"color"`
	// Level is a percentage, 0 to 100.
	Level int `yaml:"level" json:"level"`
}

// RGBA parses Color.
func (t Technology) RGBA() (color.RGBA, error) {
	return ParseHexColor(t.Color)
}

// Default returns a fresh copy of the embedded content.
func Default() *Content {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("content: embedded default.yaml is invalid: %v", err))
	}
	return c
}

// Load reads and validates a content file.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("content.Load", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates content. Unknown fields are rejected.
func Parse(data []byte) (*Content, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Content
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Config("content.Parse", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the version and that every list the pages animate is
// non-empty.
func (c *Content) Validate() error {
	const op = "content.Validate"

	if !semver.IsValid(c.Version) {
		return errors.Configf(op, "version %q is not a semantic version", c.Version)
	}
	if major := semver.Major(c.Version); major != "v1" {
		return errors.Configf(op, "unsupported content version %s (want v1)", major)
	}
	if len(c.About.Facts) == 0 {
		return errors.Config(op, fmt.Errorf("about.facts: %w", errors.ErrEmptyItems))
	}
	if len(c.Technologies.Items) == 0 {
		return errors.Config(op, fmt.Errorf("technologies.items: %w", errors.ErrEmptyItems))
	}
	if len(c.Technologies.Code) == 0 {
		return errors.Config(op, fmt.Errorf("technologies.code: %w", errors.ErrEmptyItems))
	}
	for i, t := range c.Technologies.Items {
		if strings.TrimSpace(t.Name) == "" {
			return errors.Configf(op, "technologies.items[%d]: name is required", i)
		}
		if t.Level < 0 || t.Level > 100 {
			return errors.Configf(op, "technologies.items[%d]: level %d out of range 0..100", i, t.Level)
		}
		if _, err := t.RGBA(); err != nil {
			return errors.Configf(op, "technologies.items[%d]: %v", i, err)
		}
	}
	return nil
}

// Marshal encodes c as YAML.
func (c *Content) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseHexColor parses "#rrggbb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q is not #rrggbb", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
