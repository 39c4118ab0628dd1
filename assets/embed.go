package assets

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

//go:embed *.png
var assetsFS embed.FS

// LoadError names the resource that failed to load.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("assets: load %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Bundle holds every image the game needs, keyed by the path it was requested with.
type Bundle struct {
	images map[string]*ebiten.Image
}

// Image returns the image loaded for path, or nil.
func (b *Bundle) Image(path string) *ebiten.Image {
	if b == nil {
		return nil
	}
	return b.images[cleanAssetPath(path)]
}

// Len returns the number of distinct images in the bundle.
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}
	return len(b.images)
}

// LoadBundle decodes all paths from the embedded assets (or assets/ on disk)
// and returns only once every one of them succeeded.
func LoadBundle(ctx context.Context, paths []string) (*Bundle, error) {
	decoded, err := DecodeAll(ctx, overlayFS{}, paths)
	if err != nil {
		return nil, err
	}
	images := make(map[string]*ebiten.Image, len(decoded))
	for path, img := range decoded {
		images[path] = ebiten.NewImageFromImage(img)
	}
	return &Bundle{images: images}, nil
}

// DecodeAll decodes every path from fsys concurrently. The first failure
// cancels the remaining work and is returned as a *LoadError.
func DecodeAll(ctx context.Context, fsys fs.FS, paths []string) (map[string]image.Image, error) {
	unique := make([]string, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		clean := cleanAssetPath(p)
		if clean == "" {
			return nil, &LoadError{Path: p, Err: fs.ErrInvalid}
		}
		if seen[clean] {
			continue
		}
		seen[clean] = true
		unique = append(unique, clean)
	}

	results := make([]image.Image, len(unique))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range unique {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := Decode(fsys, path)
			if err != nil {
				return err
			}
			results[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]image.Image, len(unique))
	for i, path := range unique {
		out[path] = results[i]
	}
	return out, nil
}

// Decode reads and decodes a single image from fsys.
func Decode(fsys fs.FS, path string) (image.Image, error) {
	clean := cleanAssetPath(path)
	b, err := fs.ReadFile(fsys, clean)
	if err != nil {
		return nil, &LoadError{Path: clean, Err: err}
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, &LoadError{Path: clean, Err: err}
	}
	return img, nil
}

// overlayFS prefers assets/ on disk and falls back to the embedded copy.
type overlayFS struct{}

func (overlayFS) Open(name string) (fs.File, error) {
	if f, err := os.Open(filepath.Join("assets", filepath.FromSlash(name))); err == nil {
		return f, nil
	}
	return assetsFS.Open(name)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "./")
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
