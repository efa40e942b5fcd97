// Package frame paints page snapshots to raster images with the Go fonts.
package frame

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/reveal/pkg/content"
	"github.com/go-drift/reveal/pkg/errors"
	"github.com/go-drift/reveal/pkg/pages"
)

const margin = 24

// MaxSide is the largest frame width or height NewPainter accepts.
const MaxSide = 16384

var (
	background   = color.RGBA{0xfa, 0xfa, 0xfa, 0xff}
	titleColor   = color.RGBA{0xff, 0x6b, 0x35, 0xff}
	bannerStart  = color.RGBA{0x66, 0x7e, 0xea, 0xff}
	bannerEnd    = color.RGBA{0x76, 0x4b, 0xa2, 0xff}
	statsFill    = color.RGBA{0xff, 0xec, 0xd2, 0xff}
	statsText    = color.RGBA{0x8b, 0x45, 0x13, 0xff}
	mutedText    = color.RGBA{0x66, 0x66, 0x66, 0xff}
	barTrack     = color.RGBA{0xe0, 0xe0, 0xe0, 0xff}
	codeFill     = color.RGBA{0x1e, 0x1e, 0x1e, 0xff}
	codeText     = color.RGBA{0x00, 0xff, 0x00, 0xff}
	shadowColor  = color.RGBA{0x00, 0x00, 0x00, 0x26}
	white        = color.RGBA{0xff, 0xff, 0xff, 0xff}
	cardFallback = color.RGBA{0x33, 0x33, 0x33, 0xff}
)

// Painter paints snapshots at a fixed size. A Painter is not safe for
// concurrent use.
type Painter struct {
	Width  int
	Height int

	title   font.Face
	heading font.Face
	body    font.Face
	small   font.Face
	mono    font.Face

	fonts map[font.Face]*opentype.Font
	buf   sfnt.Buffer
}

// NewPainter loads the Go fonts and returns a painter for width x height
// frames.
func NewPainter(width, height int) (*Painter, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Configf("frame.NewPainter", "frame size must be positive (got %dx%d)", width, height)
	}
	if width > MaxSide || height > MaxSide {
		return nil, errors.Configf("frame.NewPainter", "frame size %dx%d exceeds %d per side", width, height, MaxSide)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, renderError("frame.NewPainter", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, renderError("frame.NewPainter", err)
	}
	mono, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, renderError("frame.NewPainter", err)
	}

	p := &Painter{Width: width, Height: height, fonts: make(map[font.Face]*opentype.Font)}
	faces := []struct {
		dst  *font.Face
		font *opentype.Font
		size float64
	}{
		{&p.title, bold, 44},
		{&p.heading, bold, 18},
		{&p.body, regular, 15},
		{&p.small, regular, 12},
		{&p.mono, mono, 14},
	}
	for _, f := range faces {
		face, err := opentype.NewFace(f.font, &opentype.FaceOptions{
			Size:    f.size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			p.Close()
			return nil, renderError("frame.NewPainter", err)
		}
		*f.dst = face
		p.fonts[face] = f.font
	}
	return p, nil
}

// Close releases the font faces.
func (p *Painter) Close() error {
	for _, f := range []font.Face{p.title, p.heading, p.body, p.small, p.mono} {
		if f != nil {
			f.Close()
		}
	}
	return nil
}

// Paint renders an AboutSnapshot or TechnologiesSnapshot.
func (p *Painter) Paint(snapshot any) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	fill(img, img.Bounds(), background)

	switch s := snapshot.(type) {
	case pages.AboutSnapshot:
		p.paintAbout(img, s)
	case *pages.AboutSnapshot:
		p.paintAbout(img, *s)
	case pages.TechnologiesSnapshot:
		p.paintTechnologies(img, s)
	case *pages.TechnologiesSnapshot:
		p.paintTechnologies(img, *s)
	default:
		return nil, renderError("frame.Paint", fmt.Errorf("unsupported snapshot %T", snapshot))
	}
	return img, nil
}

func (p *Painter) paintAbout(img *image.RGBA, s pages.AboutSnapshot) {
	// The page fades in on entry; before that only the background shows.
	if !s.Visible {
		return
	}

	y := margin + p.lineHeight(p.title)
	title := s.Title.Text
	if s.Title.CaretOn {
		title += "|"
	}
	p.text(img, p.title, margin, y, titleColor, title)

	banner := image.Rect(margin, y+20, p.Width-margin, y+20+56)
	if s.FactHighlighted {
		banner = banner.Inset(-6)
		fill(img, banner.Add(image.Pt(0, 6)), shadowColor)
	}
	gradient(img, banner, bannerStart, bannerEnd)
	label := s.Fact.Item
	if s.Banner != "" {
		label = s.Banner + " " + label
	}
	p.centered(img, p.heading, banner, white, strings.TrimSpace(p.printable(p.heading, label)))

	stats := image.Rect(margin, banner.Max.Y+24, margin+320, banner.Max.Y+24+48)
	fill(img, stats, statsFill)
	p.centered(img, p.body, stats, statsText, "Вы на сайте уже: "+strconv.Itoa(s.ElapsedSeconds)+" сек")
}

func (p *Painter) paintTechnologies(img *image.RGBA, s pages.TechnologiesSnapshot) {
	top := margin
	if s.Heading != "" {
		head := image.Rect(0, top, p.Width, top+p.lineHeight(p.title))
		p.centered(img, p.title, head, bannerStart, s.Heading)
		top = head.Max.Y + 16
	}

	columns := s.Columns
	if columns < 1 {
		columns = 1
	}
	const gap, cardHeight = 16, 120
	cardWidth := (p.Width - 2*margin - (columns-1)*gap) / columns

	rows := 0
	for i, c := range s.Cards {
		row, col := i/columns, i%columns
		rows = row + 1
		if !c.Visible {
			continue
		}
		r := image.Rect(0, 0, cardWidth, cardHeight).Add(image.Pt(
			margin+col*(cardWidth+gap),
			top+row*(cardHeight+gap),
		))
		p.paintCard(img, r, c)
	}

	// Not image.Rect: it would swap the corners when the grid overflows.
	code := image.Rectangle{
		Min: image.Pt(margin, top+rows*(cardHeight+gap)),
		Max: image.Pt(p.Width-margin, p.Height-margin),
	}
	p.paintCode(img, code, s.Code.Text, s.Code.CursorVisible)
}

func (p *Painter) paintCard(img *image.RGBA, r image.Rectangle, c pages.CardSnapshot) {
	accent, err := content.ParseHexColor(c.Color)
	if err != nil {
		accent = cardFallback
	}
	border := 2
	if c.Highlighted {
		r = r.Add(image.Pt(0, -5))
		border = 4
		fill(img, r.Add(image.Pt(0, 8)), withAlpha(accent, 0x40))
	}
	fill(img, r, white)
	stroke(img, r, border, accent)

	inner := r.Inset(12)
	y := inner.Min.Y + p.lineHeight(p.heading)
	p.text(img, p.heading, inner.Min.X, y, accent, strings.TrimSpace(p.printable(p.heading, c.Icon+" "+c.Name)))

	for _, line := range p.wrap(p.small, c.Description, inner.Dx()) {
		y += p.lineHeight(p.small)
		if y > inner.Max.Y-24 {
			break
		}
		p.text(img, p.small, inner.Min.X, y, mutedText, line)
	}

	bar := image.Rect(inner.Min.X, inner.Max.Y-20, inner.Max.X, inner.Max.Y-12)
	fill(img, bar, barTrack)
	level := min(max(c.Level, 0), 100)
	filled := bar
	filled.Max.X = bar.Min.X + bar.Dx()*level/100
	fill(img, filled, accent)

	label := strconv.Itoa(c.Level) + "% освоено"
	w := font.MeasureString(p.small, p.printable(p.small, label)).Ceil()
	p.text(img, p.small, inner.Max.X-w, inner.Max.Y, accent, label)
}

func (p *Painter) paintCode(img *image.RGBA, r image.Rectangle, text string, cursor bool) {
	if r.Dy() <= 0 {
		return
	}
	fill(img, r, codeFill)
	for i, c := range []color.RGBA{{0xff, 0x5f, 0x56, 0xff}, {0xff, 0xbd, 0x2e, 0xff}, {0x27, 0xca, 0x3f, 0xff}} {
		dot := image.Rect(0, 0, 12, 12).Add(image.Pt(r.Max.X-15-(3-i)*20, r.Min.Y+10))
		fill(img, dot, c)
	}

	x := r.Min.X + 20
	y := r.Min.Y + 10 + p.lineHeight(p.small)
	p.text(img, p.small, x, y, mutedText, "models.py")

	lines := strings.Split(text, "\n")
	// Text ends with "\n", so the last element is the line being typed.
	for i, line := range lines {
		y += p.lineHeight(p.mono)
		if i == len(lines)-1 && cursor {
			line += "_"
		}
		p.text(img, p.mono, x, y, codeText, line)
	}
}

func (p *Painter) lineHeight(face font.Face) int {
	return face.Metrics().Height.Ceil()
}

// text draws s with its baseline at y. Runes the face cannot draw are
// dropped.
func (p *Painter) text(img *image.RGBA, face font.Face, x, y int, c color.Color, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(p.printable(face, s))
}

// centered draws s centered in r.
func (p *Painter) centered(img *image.RGBA, face font.Face, r image.Rectangle, c color.Color, s string) {
	s = p.printable(face, s)
	m := face.Metrics()
	w := font.MeasureString(face, s).Ceil()
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
	p.text(img, face, x, y, c, s)
}

func (p *Painter) printable(face font.Face, s string) string {
	f := p.fonts[face]
	if f == nil {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return r
		}
		// Glyph 0 is .notdef: the font has no drawing for r.
		if idx, err := f.GlyphIndex(&p.buf, r); err != nil || idx == 0 {
			return -1
		}
		return r
	}, s)
}

// wrap breaks s into lines no wider than maxWidth, preferring to break
// after whitespace.
func (p *Painter) wrap(face font.Face, s string, maxWidth int) []string {
	s = strings.TrimSpace(p.printable(face, s))
	measure := func(t string) int { return font.MeasureString(face, t).Ceil() }

	var lines []string
	start := 0
	for start < len(s) {
		lastBreak, lastFit := -1, -1
		for i := start; i < len(s); {
			r, size := utf8.DecodeRuneInString(s[i:])
			next := i + size
			if measure(s[start:next]) > maxWidth {
				break
			}
			lastFit = next
			if unicode.IsSpace(r) {
				lastBreak = next
			}
			i = next
		}
		if lastFit == -1 {
			_, size := utf8.DecodeRuneInString(s[start:])
			lastFit = start + size
		}
		cut := lastFit
		if lastFit < len(s) && lastBreak > start && lastBreak < lastFit {
			cut = lastBreak
		}
		lines = append(lines, strings.TrimRightFunc(s[start:cut], unicode.IsSpace))
		start = cut
		for start < len(s) {
			r, size := utf8.DecodeRuneInString(s[start:])
			if !unicode.IsSpace(r) {
				break
			}
			start += size
		}
	}
	return lines
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return renderError("frame.Encode", err)
	}
	return nil
}

// WriteFile writes img as a PNG file at path.
func WriteFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return renderError("frame.WriteFile", err)
	}
	if err := Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return renderError("frame.WriteFile", err)
	}
	return nil
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func stroke(img *image.RGBA, r image.Rectangle, width int, c color.Color) {
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// gradient fills r with a left-to-right linear gradient.
func gradient(img *image.RGBA, r image.Rectangle, from, to color.RGBA) {
	w := r.Dx()
	if w <= 0 {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		t := x - r.Min.X
		c := color.RGBA{
			R: lerp(from.R, to.R, t, w),
			G: lerp(from.G, to.G, t, w),
			B: lerp(from.B, to.B, t, w),
			A: 0xff,
		}
		fill(img, image.Rect(x, r.Min.Y, x+1, r.Max.Y), c)
	}
}

func lerp(a, b uint8, t, n int) uint8 {
	return uint8(int(a) + (int(b)-int(a))*t/n)
}

// withAlpha returns c with alpha a, premultiplied as image/color expects.
func withAlpha(c color.RGBA, a uint8) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(int(v) * int(a) / 0xff) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: a}
}

func renderError(op string, err error) *errors.Error {
	return &errors.Error{Op: op, Kind: errors.KindRender, Err: err}
}
