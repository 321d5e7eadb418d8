// Package render composes a deck sheet image from tallied card entries
// and a card-art library.
package render

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/arcusworks/deckherald/internal/card"
	"github.com/arcusworks/deckherald/internal/library"
)

const labelHeight = 16

// Options control the sheet geometry and where generated placeholder
// art is cached.
type Options struct {
	CardWidth  int
	CardHeight int
	Gutter     int
	CacheDir   string
}

// Renderer composes deck sheets against one library.
type Renderer struct {
	lib  *library.Library
	opts Options
}

func New(lib *library.Library, opts Options) *Renderer {
	if opts.CardWidth <= 0 {
		opts.CardWidth = 120
	}
	if opts.CardHeight <= 0 {
		opts.CardHeight = 168
	}
	if opts.Gutter <= 0 {
		opts.Gutter = 12
	}
	return &Renderer{lib: lib, opts: opts}
}

// layout picks grid dimensions and a background sheet from the number
// of distinct cards alone.
func layout(n int) (cols, rows int, sheet string) {
	switch {
	case n <= 4:
		return n, 1, "small"
	case n <= 10:
		return (n + 1) / 2, 2, "tall"
	default:
		return 5, (n + 4) / 5, "wide"
	}
}

// Compose renders the tallied entries onto a background sheet, one cell
// per distinct card with its art, identifier and copy count.
func (r *Renderer) Compose(entries []card.Entry) (image.Image, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("nothing to render")
	}

	cols, rows, sheetKey := layout(len(entries))
	cellHeight := r.opts.CardHeight + labelHeight
	width := cols*r.opts.CardWidth + (cols+1)*r.opts.Gutter
	height := rows*cellHeight + (rows+1)*r.opts.Gutter

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	r.drawBackground(canvas, sheetKey)

	for i, entry := range entries {
		col := i % cols
		row := i / cols
		x := r.opts.Gutter + col*(r.opts.CardWidth+r.opts.Gutter)
		y := r.opts.Gutter + row*(cellHeight+r.opts.Gutter)

		art := r.cardArt(entry.Card)
		scaled := resize.Resize(uint(r.opts.CardWidth), uint(r.opts.CardHeight), art, resize.Lanczos3)
		draw.Draw(canvas,
			image.Rect(x, y, x+r.opts.CardWidth, y+r.opts.CardHeight),
			scaled, scaled.Bounds().Min, draw.Over)

		label := fmt.Sprintf("%s x%d", entry.Card.ID, entry.Count)
		drawText(canvas, x+2, y+r.opts.CardHeight+basicfont.Face7x13.Ascent+2,
			label, color.White)
	}

	return canvas, nil
}

// drawBackground paints the chosen sheet, scaled to the canvas, or a
// flat felt color when the library has no sheet for the layout.
func (r *Renderer) drawBackground(canvas *image.RGBA, sheetKey string) {
	felt := color.RGBA{R: 0x1d, G: 0x4a, B: 0x33, A: 0xff}
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(felt), image.Point{}, draw.Src)

	sheet, err := r.lib.Sheet(r.sheetName(sheetKey))
	if err != nil {
		return
	}
	bounds := canvas.Bounds()
	scaled := resize.Resize(uint(bounds.Dx()), uint(bounds.Dy()), sheet, resize.Lanczos3)
	draw.Draw(canvas, bounds, scaled, scaled.Bounds().Min, draw.Src)
}

func (r *Renderer) sheetName(key string) string {
	sheets := r.lib.Manifest.Sheets
	switch key {
	case "small":
		return sheets.Small
	case "tall":
		return sheets.Tall
	default:
		return sheets.Wide
	}
}

// cardArt returns the library art for a card, falling back to a
// generated placeholder cached on disk under the cache directory.
func (r *Renderer) cardArt(c *card.Card) image.Image {
	if img, err := r.lib.CardImage(c); err == nil {
		return img
	}

	if r.opts.CacheDir != "" {
		cacheDir := filepath.Join(r.opts.CacheDir, "placeholder_cache")
		cachePath := filepath.Join(cacheDir, fmt.Sprintf("%x.png", md5.Sum([]byte(c.ID))))

		if file, err := os.Open(cachePath); err == nil {
			img, err := png.Decode(file)
			file.Close()
			if err == nil {
				return img
			}
		}

		img := r.placeholder(c)
		if err := os.MkdirAll(cacheDir, 0755); err == nil {
			if file, err := os.Create(cachePath); err == nil {
				_ = png.Encode(file, img)
				file.Close()
			}
		}
		return img
	}

	return r.placeholder(c)
}

// placeholder draws a tinted stand-in card. The tint derives from the
// identifier so the same card always gets the same color.
func (r *Renderer) placeholder(c *card.Card) image.Image {
	sum := md5.Sum([]byte(c.ID))
	hue := float64(int(sum[0])<<8|int(sum[1])) / 65536.0 * 360.0
	tint := colorful.Hsv(hue, 0.45, 0.70)
	tr, tg, tb := tint.RGB255()

	img := image.NewRGBA(image.Rect(0, 0, r.opts.CardWidth, r.opts.CardHeight))
	fill := color.RGBA{R: tr, G: tg, B: tb, A: 0xff}
	draw.Draw(img, img.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	border := color.RGBA{
		R: uint8(int(tr) * 2 / 3),
		G: uint8(int(tg) * 2 / 3),
		B: uint8(int(tb) * 2 / 3),
		A: 0xff,
	}
	bounds := img.Bounds()
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		img.Set(x, bounds.Min.Y, border)
		img.Set(x, bounds.Max.Y-1, border)
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		img.Set(bounds.Min.X, y, border)
		img.Set(bounds.Max.X-1, y, border)
	}

	// Center the identifier roughly.
	textWidth := len(c.ID) * basicfont.Face7x13.Advance
	x := (r.opts.CardWidth - textWidth) / 2
	if x < 2 {
		x = 2
	}
	drawText(img, x, r.opts.CardHeight/2, c.ID, color.White)

	return img
}

// drawText draws s with the bitmap face; (x, y) is the baseline origin.
func drawText(dst draw.Image, x, y int, s string, col color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// EncodePNG renders an image to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode sheet: %v", err)
	}
	return buf.Bytes(), nil
}
