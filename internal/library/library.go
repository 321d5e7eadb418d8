package library

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/arcusworks/deckherald/internal/card"
)

// imageExtensions is the lookup priority for card art files.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

// SheetDir is the subdirectory holding background sheets.
const SheetDir = "sheets"

// Library is a filesystem card-art library: a library.toml manifest,
// one subdirectory per card set, and a sheets directory of background
// images. Decoded images are cached in memory; a Library is safe for
// concurrent use.
type Library struct {
	Path     string
	Manifest Manifest

	mu     sync.Mutex
	images map[string]image.Image
}

// Manifest mirrors library.toml.
type Manifest struct {
	Library LibrarySection `toml:"library"`
	Sheets  SheetSection   `toml:"sheets"`
}

type LibrarySection struct {
	ID      string `toml:"id"`
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Game    string `toml:"game"`
}

// SheetSection names the background sheet file for each layout size.
type SheetSection struct {
	Small string `toml:"small"`
	Tall  string `toml:"tall"`
	Wide  string `toml:"wide"`
}

// Load opens a card-art library rooted at path.
func Load(path string) (*Library, error) {
	manifestPath := filepath.Join(path, "library.toml")
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("library.toml not found in %s", path)
	}

	var manifest Manifest
	if _, err := toml.DecodeFile(manifestPath, &manifest); err != nil {
		return nil, fmt.Errorf("error parsing library.toml: %v", err)
	}

	return &Library{
		Path:     path,
		Manifest: manifest,
		images:   make(map[string]image.Image),
	}, nil
}

// CardImage loads the art for a card, trying each known extension under
// the card's set directory. Missing art is an error; the caller decides
// whether to substitute a placeholder.
func (l *Library) CardImage(c *card.Card) (image.Image, error) {
	for _, ext := range imageExtensions {
		path := filepath.Join(l.Path, c.Set, c.ID+ext)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		img, err := l.load(path)
		if err != nil {
			continue
		}
		return img, nil
	}
	return nil, fmt.Errorf("no image found for card %s", c.ID)
}

// Sheet loads a background sheet by its manifest file name.
func (l *Library) Sheet(name string) (image.Image, error) {
	if name == "" {
		return nil, fmt.Errorf("no sheet configured")
	}
	return l.load(filepath.Join(l.Path, SheetDir, name))
}

// load decodes an image once and caches it by path.
func (l *Library) load(path string) (image.Image, error) {
	l.mu.Lock()
	if img, ok := l.images[path]; ok {
		l.mu.Unlock()
		return img, nil
	}
	l.mu.Unlock()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %v", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %v", path, err)
	}

	l.mu.Lock()
	l.images[path] = img
	l.mu.Unlock()
	return img, nil
}
