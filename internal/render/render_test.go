package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcusworks/deckherald/internal/card"
	"github.com/arcusworks/deckherald/internal/library"
)

func emptyLibrary(t *testing.T) *library.Library {
	t.Helper()
	root := t.TempDir()
	manifest := "[library]\nid = \"t\"\nname = \"t\"\nversion = \"1.0\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "library.toml"), []byte(manifest), 0644))
	lib, err := library.Load(root)
	require.NoError(t, err)
	return lib
}

func TestLayout(t *testing.T) {
	tests := []struct {
		n, cols, rows int
		sheet         string
	}{
		{n: 1, cols: 1, rows: 1, sheet: "small"},
		{n: 4, cols: 4, rows: 1, sheet: "small"},
		{n: 5, cols: 3, rows: 2, sheet: "tall"},
		{n: 10, cols: 5, rows: 2, sheet: "tall"},
		{n: 11, cols: 5, rows: 3, sheet: "wide"},
		{n: 23, cols: 5, rows: 5, sheet: "wide"},
	}
	for _, tt := range tests {
		cols, rows, sheet := layout(tt.n)
		assert.Equal(t, tt.cols, cols, "cols for n=%d", tt.n)
		assert.Equal(t, tt.rows, rows, "rows for n=%d", tt.n)
		assert.Equal(t, tt.sheet, sheet, "sheet for n=%d", tt.n)
		assert.GreaterOrEqual(t, cols*rows, tt.n, "grid must fit all entries")
	}
}

func TestComposeDimensions(t *testing.T) {
	r := New(emptyLibrary(t), Options{CardWidth: 40, CardHeight: 56, Gutter: 8, CacheDir: t.TempDir()})

	entries := card.Tally([]string{"AA-11", "AA-11", "BA-12"})
	img, err := r.Compose(entries)
	require.NoError(t, err)

	// 2 columns, 1 row.
	assert.Equal(t, 2*40+3*8, img.Bounds().Dx())
	assert.Equal(t, 56+labelHeight+2*8, img.Bounds().Dy())
}

func TestComposeEmpty(t *testing.T) {
	r := New(emptyLibrary(t), Options{})
	_, err := r.Compose(nil)
	assert.Error(t, err)
}

func TestPlaceholderCache(t *testing.T) {
	cacheDir := t.TempDir()
	r := New(emptyLibrary(t), Options{CardWidth: 40, CardHeight: 56, CacheDir: cacheDir})

	c, err := card.Parse("AA-11")
	require.NoError(t, err)

	first := r.cardArt(c)
	assert.Equal(t, 40, first.Bounds().Dx())

	files, err := os.ReadDir(filepath.Join(cacheDir, "placeholder_cache"))
	require.NoError(t, err)
	assert.Len(t, files, 1)

	// Second call is served from the disk cache with identical bounds.
	second := r.cardArt(c)
	assert.Equal(t, first.Bounds(), second.Bounds())
}

func TestEncodePNG(t *testing.T) {
	r := New(emptyLibrary(t), Options{CardWidth: 20, CardHeight: 28})
	img, err := r.Compose(card.Tally([]string{"exA-1"}))
	require.NoError(t, err)

	data, err := EncodePNG(img)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])
}
