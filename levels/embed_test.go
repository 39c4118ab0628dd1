package levels

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestLoadTileMapFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.json":     {Data: []byte(`{"name":"ok","row_width":4,"tile_size":48,"blocking_code":3967,"tiles":[0,0,0,3967,1,1,1,1]}`)},
		"ragged.json": {Data: []byte(`{"name":"ragged","row_width":4,"tile_size":48,"tiles":[0,0,0]}`)},
		"zero.json":   {Data: []byte(`{"name":"zero","row_width":0,"tile_size":48,"tiles":[]}`)},
		"bad.json":    {Data: []byte(`{"name":`)},
	}

	cases := []struct {
		name    string
		file    string
		wantErr error
		rows    int
	}{
		{"valid_without_ext", "ok", nil, 2},
		{"valid_with_prefix", "levels/ok.json", nil, 2},
		{"ragged", "ragged", ErrRaggedTileMap, 0},
		{"zero_width", "zero", ErrInvalidRowWidth, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := LoadTileMapFromFS(fsys, c.file)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Rows() != c.rows {
				t.Fatalf("expected %d rows, got %d", c.rows, m.Rows())
			}
			if m.Tiles[3] != 3967 {
				t.Fatalf("expected blocking code at (3,0), got %d", m.Tiles[3])
			}
		})
	}

	t.Run("malformed_json", func(t *testing.T) {
		if _, err := LoadTileMapFromFS(fsys, "bad"); err == nil {
			t.Fatalf("expected error for malformed json")
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := LoadTileMapFromFS(fsys, "nope"); err == nil {
			t.Fatalf("expected error for missing level")
		}
	})
}

func TestEmbeddedTownMap(t *testing.T) {
	m, err := LoadTileMap("beppu")
	if err != nil {
		t.Fatalf("load embedded map: %v", err)
	}
	if m.RowWidth != 70 {
		t.Fatalf("expected row width 70, got %d", m.RowWidth)
	}
	if m.BlockingCode != 3967 {
		t.Fatalf("expected blocking code 3967, got %d", m.BlockingCode)
	}
}
