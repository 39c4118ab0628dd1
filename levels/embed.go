package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

var (
	ErrInvalidRowWidth = errors.New("levels: row width must be positive")
	ErrRaggedTileMap   = errors.New("levels: tile count is not a multiple of row width")
)

// TileMap is a flat row-major grid of tile codes.
type TileMap struct {
	Name         string `json:"name"`
	RowWidth     int    `json:"row_width"`
	TileSize     int    `json:"tile_size"`
	BlockingCode int    `json:"blocking_code"`
	Tiles        []int  `json:"tiles"`
}

// Rows returns the number of rows in the map.
func (m *TileMap) Rows() int {
	if m == nil || m.RowWidth <= 0 {
		return 0
	}
	return len(m.Tiles) / m.RowWidth
}

// Validate checks the shape invariants of the map.
func (m *TileMap) Validate() error {
	if m.RowWidth <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRowWidth, m.RowWidth)
	}
	if len(m.Tiles)%m.RowWidth != 0 {
		return fmt.Errorf("%w: %d tiles, row width %d", ErrRaggedTileMap, len(m.Tiles), m.RowWidth)
	}
	if m.TileSize <= 0 {
		return fmt.Errorf("levels: invalid tile size %d", m.TileSize)
	}
	return nil
}

// LoadTileMap reads a tile map by name from the embedded levels.
func LoadTileMap(name string) (*TileMap, error) {
	return LoadTileMapFromFS(LevelsFS, name)
}

func LoadTileMapFromFS(fsys fs.FS, name string) (*TileMap, error) {
	clean := cleanLevelName(name)
	data, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", clean, err)
	}
	var m TileMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", clean, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level %s: %w", clean, err)
	}
	return &m, nil
}

func cleanLevelName(name string) string {
	s := strings.TrimPrefix(path.Clean(strings.ReplaceAll(name, "\\", "/")), "levels/")
	if path.Ext(s) == "" {
		s += ".json"
	}
	return s
}
