package library

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcusworks/deckherald/internal/card"
)

// writeTestLibrary lays out a minimal valid library in a temp dir.
func writeTestLibrary(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	manifest := `[library]
id = "test-library"
name = "Test Library"
version = "1.0"
game = "kcg"

[sheets]
small = "small.png"
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "library.toml"), []byte(manifest), 0644))

	require.NoError(t, os.MkdirAll(filepath.Join(root, SheetDir), 0755))
	writeTestImage(t, filepath.Join(root, SheetDir, "small.png"), 64, 32)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "A"), 0755))
	writeTestImage(t, filepath.Join(root, "A", "AA-11.png"), 30, 42)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "ex"), 0755))
	writeTestImage(t, filepath.Join(root, "ex", "exA-1.png"), 30, 42)

	return root
}

func writeTestImage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 80, A: 255})
		}
	}
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func TestLoad(t *testing.T) {
	root := writeTestLibrary(t)
	lib, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "test-library", lib.Manifest.Library.ID)
	assert.Equal(t, "small.png", lib.Manifest.Sheets.Small)
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestCardImage(t *testing.T) {
	lib, err := Load(writeTestLibrary(t))
	require.NoError(t, err)

	c, err := card.Parse("AA-11")
	require.NoError(t, err)
	img, err := lib.CardImage(c)
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dx())

	// Second lookup hits the in-memory cache and must agree.
	cached, err := lib.CardImage(c)
	require.NoError(t, err)
	assert.Equal(t, img, cached)

	missing, err := card.Parse("BA-12")
	require.NoError(t, err)
	_, err = lib.CardImage(missing)
	assert.Error(t, err)
}

func TestSheet(t *testing.T) {
	lib, err := Load(writeTestLibrary(t))
	require.NoError(t, err)

	img, err := lib.Sheet(lib.Manifest.Sheets.Small)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	_, err = lib.Sheet("")
	assert.Error(t, err)
	_, err = lib.Sheet("nope.png")
	assert.Error(t, err)
}

func TestValidator(t *testing.T) {
	root := writeTestLibrary(t)
	results, err := NewValidator(root).Validate()
	require.NoError(t, err)
	assert.Empty(t, results.Errors)
}

func TestValidatorFindsProblems(t *testing.T) {
	root := writeTestLibrary(t)

	// A card filed under the wrong set and a stray directory.
	writeTestImage(t, filepath.Join(root, "A", "BA-2.png"), 10, 10)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "thumbnails"), 0755))
	// An art file whose stem is not an identifier.
	writeTestImage(t, filepath.Join(root, "A", "cover.png"), 10, 10)

	results, err := NewValidator(root).Validate()
	require.NoError(t, err)

	assert.Len(t, results.Errors, 1)
	assert.Contains(t, results.Errors[0], "BA-2")
	require.NotEmpty(t, results.Warnings)
}

func TestValidatorRequiresManifestFields(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "library.toml"),
		[]byte("[library]\nid = \"x\"\n"), 0644))

	results, err := NewValidator(root).Validate()
	require.NoError(t, err)
	assert.Len(t, results.Errors, 2) // name and version missing
}

func TestValidatorMissingManifest(t *testing.T) {
	_, err := NewValidator(t.TempDir()).Validate()
	assert.Error(t, err)
}
