package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcusworks/deckherald/internal/card"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Validator checks that a directory is a usable card-art library.
type Validator struct {
	LibraryPath string
	Results     ValidationResults
}

func NewValidator(libraryPath string) *Validator {
	return &Validator{
		LibraryPath: libraryPath,
		Results:     ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	manifest, err := v.validateManifest()
	if err != nil {
		return v.Results, err
	}

	v.validateSheets(manifest)
	v.validateSetDirectories()

	return v.Results, nil
}

func (v *Validator) validateManifest() (*Manifest, error) {
	manifestPath := filepath.Join(v.LibraryPath, "library.toml")
	if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("library.toml not found in %s", v.LibraryPath)
	}

	var manifest Manifest
	if _, err := toml.DecodeFile(manifestPath, &manifest); err != nil {
		return nil, fmt.Errorf("error parsing library.toml: %v", err)
	}

	if manifest.Library.ID == "" {
		v.Results.Errors = append(v.Results.Errors, "library.id is required in library.toml")
	}

	if manifest.Library.Name == "" {
		v.Results.Errors = append(v.Results.Errors, "library.name is required in library.toml")
	}

	if manifest.Library.Version == "" {
		v.Results.Errors = append(v.Results.Errors, "library.version is required in library.toml")
	}

	return &manifest, nil
}

// validateSheets checks that every configured background sheet exists.
func (v *Validator) validateSheets(manifest *Manifest) {
	sheets := map[string]string{
		"sheets.small": manifest.Sheets.Small,
		"sheets.tall":  manifest.Sheets.Tall,
		"sheets.wide":  manifest.Sheets.Wide,
	}

	configured := 0
	for key, name := range sheets {
		if name == "" {
			continue
		}
		configured++
		sheetPath := filepath.Join(v.LibraryPath, SheetDir, name)
		if _, err := os.Stat(sheetPath); os.IsNotExist(err) {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("%s image not found: %s", key, name))
		}
	}

	if configured == 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			"no background sheets configured; rendered decks will use a flat background")
	}
}

// validateSetDirectories walks the set subdirectories and checks that
// every art file is named after a well-formed card identifier living in
// the right set.
func (v *Validator) validateSetDirectories() {
	entries, err := os.ReadDir(v.LibraryPath)
	if err != nil {
		v.Results.Errors = append(v.Results.Errors,
			fmt.Sprintf("error reading library directory: %v", err))
		return
	}

	sets := 0
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == SheetDir {
			continue
		}

		setName := entry.Name()
		if !validSetName(setName) {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("unknown set directory: %s", setName))
			continue
		}
		sets++

		setDir := filepath.Join(v.LibraryPath, setName)
		files, err := os.ReadDir(setDir)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors,
				fmt.Sprintf("error reading set directory %s: %v", setName, err))
			continue
		}

		for _, file := range files {
			if file.IsDir() {
				continue
			}
			ext := filepath.Ext(file.Name())
			if !contains(imageExtensions, strings.ToLower(ext)) {
				continue
			}
			id := strings.TrimSuffix(file.Name(), ext)
			c, err := card.Parse(id)
			if err != nil {
				v.Results.Warnings = append(v.Results.Warnings,
					fmt.Sprintf("art file does not match a card ID: %s/%s", setName, file.Name()))
				continue
			}
			if c.Set != setName {
				v.Results.Errors = append(v.Results.Errors,
					fmt.Sprintf("card %s filed under wrong set directory %s", c.ID, setName))
			}
		}
	}

	if sets == 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			"no set directories found; every card will render as a placeholder")
	}
}

// validSetName reports whether a directory name is a known set code.
func validSetName(name string) bool {
	if name == "ex" || name == "prm" {
		return true
	}
	return len(name) == 1 && name[0] >= 'A' && name[0] <= 'R'
}

// contains checks if a string is in a slice
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
