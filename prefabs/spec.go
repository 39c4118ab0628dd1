package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

// LoadSpec loads and decodes a YAML spec by file name.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	return DecodeSpec[T](filename, data)
}

func DecodeSpec[T any](filename string, data []byte) (T, error) {
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		var zero T
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// WorldSpec describes a town: its map, art, player, NPCs and key bindings.
type WorldSpec struct {
	Name       string              `yaml:"name"`
	Level      string              `yaml:"level"`
	Speed      float64             `yaml:"speed"`
	Welcome    string              `yaml:"welcome"`
	Camera     CameraSpec          `yaml:"camera"`
	Background SpriteSpec          `yaml:"background"`
	Foreground SpriteSpec          `yaml:"foreground"`
	Player     PlayerSpec          `yaml:"player"`
	NPCs       []NPCSpec           `yaml:"npcs"`
	Bindings   map[string][]string `yaml:"bindings"`
	Debug      DebugSpec           `yaml:"debug"`
}

// LoadWorldSpec loads name (default "world.yaml") and validates it.
func LoadWorldSpec(name string) (*WorldSpec, error) {
	if name == "" {
		name = "world.yaml"
	}
	spec, err := LoadSpec[WorldSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

type CameraSpec struct {
	// CenterX centers the background horizontally on screen, ignoring StartX.
	CenterX bool    `yaml:"center_x"`
	StartX  float64 `yaml:"start_x"`
	StartY  float64 `yaml:"start_y"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type SizeSpec struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type SpriteSpec struct {
	Image  string    `yaml:"image"`
	Offset PointSpec `yaml:"offset"`
	// Width and Height override the drawn size; zero means the image size.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// SizeAdjust is added to the drawn size.
	SizeAdjust SizeSpec `yaml:"size_adjust"`
	// Source is the region of the image to draw; zero means the whole image.
	Source RectSpec `yaml:"source"`
}

type PlayerSpec struct {
	Width         float64           `yaml:"width"`
	Height        float64           `yaml:"height"`
	ScreenY       float64           `yaml:"screen_y"`
	MaxFrame      int               `yaml:"max_frame"`
	TicksPerFrame int               `yaml:"ticks_per_frame"`
	IdleFrames    map[string]int    `yaml:"idle_frames"`
	Sheets        map[string]string `yaml:"sheets"`
}

type NPCSpec struct {
	Name    string    `yaml:"name"`
	Image   string    `yaml:"image"`
	Offset  PointSpec `yaml:"offset"`
	Source  RectSpec  `yaml:"source"`
	Width   float64   `yaml:"width"`
	Height  float64   `yaml:"height"`
	Message string    `yaml:"message"`
	Script  string    `yaml:"script"`
}

type DebugSpec struct {
	ObstacleColor *YAMLColor `yaml:"obstacle_color"`
}

var directionNames = []string{"up", "down", "left", "right"}

func isDirection(s string) bool {
	for _, d := range directionNames {
		if d == s {
			return true
		}
	}
	return false
}

// Validate checks references inside the spec. Key names are checked when
// bindings are parsed.
func (s *WorldSpec) Validate() error {
	var errs []error
	if s.Level == "" {
		errs = append(errs, errors.New("level is required"))
	}
	if s.Background.Image == "" {
		errs = append(errs, errors.New("background.image is required"))
	}
	for _, dir := range directionNames {
		if s.Player.Sheets[dir] == "" {
			errs = append(errs, fmt.Errorf("player.sheets.%s is required", dir))
		}
	}
	for dir := range s.Player.Sheets {
		if !isDirection(dir) {
			errs = append(errs, fmt.Errorf("player.sheets: unknown direction %q", dir))
		}
	}
	for dir, f := range s.Player.IdleFrames {
		if !isDirection(dir) {
			errs = append(errs, fmt.Errorf("player.idle_frames: unknown direction %q", dir))
		}
		if f < 0 || (s.Player.MaxFrame > 0 && f > s.Player.MaxFrame) {
			errs = append(errs, fmt.Errorf("player.idle_frames.%s: frame %d out of range", dir, f))
		}
	}
	seen := make(map[string]bool, len(s.NPCs))
	for i, npc := range s.NPCs {
		switch {
		case npc.Name == "":
			errs = append(errs, fmt.Errorf("npcs[%d]: name is required", i))
		case seen[npc.Name]:
			errs = append(errs, fmt.Errorf("npcs[%d]: duplicate name %q", i, npc.Name))
		}
		seen[npc.Name] = true
		if npc.Image == "" {
			errs = append(errs, fmt.Errorf("npcs[%d]: image is required", i))
		}
		if npc.Message == "" && npc.Script == "" {
			errs = append(errs, fmt.Errorf("npcs[%d]: message or script is required", i))
		}
	}
	for dir := range s.Bindings {
		if !isDirection(strings.ToLower(dir)) {
			errs = append(errs, fmt.Errorf("bindings: unknown direction %q", dir))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSpec, errors.Join(errs...))
	}
	return nil
}

// Images lists every image the world needs, in a stable order.
func (s *WorldSpec) Images() []string {
	out := []string{s.Background.Image}
	if s.Foreground.Image != "" {
		out = append(out, s.Foreground.Image)
	}
	for _, dir := range directionNames {
		if img := s.Player.Sheets[dir]; img != "" {
			out = append(out, img)
		}
	}
	for _, npc := range s.NPCs {
		out = append(out, npc.Image)
	}
	return out
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	var ch [4]uint8
	ch[3] = 255
	for i := 0; i*2 < len(s); i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return fmt.Errorf("invalid color %s: %w", value.Value, err)
		}
		ch[i] = uint8(v)
	}

	c.Color = color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
	return nil
}
