package text

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gogpu/canvas"
)

// FontDB maps names to loaded fonts.
type FontDB struct {
	fonts map[string]*Font
}

// NewFontDB returns an empty database.
func NewFontDB() *FontDB {
	return &FontDB{fonts: make(map[string]*Font)}
}

// Add registers f under name, replacing any previous font of that name.
func (db *FontDB) Add(name string, f *Font) {
	db.fonts[name] = f
}

// Load parses data and registers the font under name.
func (db *FontDB) Load(name string, data []byte) (*Font, error) {
	f, err := LoadFont(data)
	if err != nil {
		return nil, err
	}
	db.Add(name, f)
	return f, nil
}

// LoadFile parses the font at path and registers it under its family
// name, or under the file name when the font has none.
func (db *FontDB) LoadFile(path string) (*Font, error) {
	f, err := LoadFontFile(path)
	if err != nil {
		return nil, err
	}
	name := f.Name()
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	db.Add(name, f)
	canvas.Logger().Debug("text: font loaded", "name", name, "path", path)
	return f, nil
}

// Find returns the font registered under name.
func (db *FontDB) Find(name string) (*Font, error) {
	if f, ok := db.fonts[name]; ok {
		return f, nil
	}
	return nil, canvas.NewError(canvas.KindNoFontFound, "text: no font named "+name)
}

// Names returns the registered names in sorted order.
func (db *FontDB) Names() []string {
	return slices.Sorted(maps.Keys(db.fonts))
}

// Len returns the number of registered fonts.
func (db *FontDB) Len() int { return len(db.fonts) }
