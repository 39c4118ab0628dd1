package obj

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/beppu/sim"
)

var keysByName = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		m[strings.ToLower(k.String())] = k
	}
	return m
}()

// ParseKey resolves a key name such as "w", "W" or "ArrowUp", ignoring case.
func ParseKey(name string) (ebiten.Key, error) {
	k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("input: unknown key %q", name)
	}
	return k, nil
}

// Bindings maps physical keys to movement directions.
type Bindings map[ebiten.Key]sim.Direction

// ParseBindings builds Bindings from direction -> key names.
func ParseBindings(names map[sim.Direction][]string) (Bindings, error) {
	b := make(Bindings)
	for dir, keys := range names {
		for _, name := range keys {
			k, err := ParseKey(name)
			if err != nil {
				return nil, err
			}
			if prev, ok := b[k]; ok && prev != dir {
				return nil, fmt.Errorf("input: key %s bound to both %s and %s", k, prev, dir)
			}
			b[k] = dir
		}
	}
	return b, nil
}

// Input holds the held movement keys and the one-shot actions of a frame.
type Input struct {
	Held sim.HeldKeys
	// DismissPressed is true on the frame the dismiss key was pressed.
	DismissPressed bool
	// CopyPressed is true on the frame the debug copy key was pressed.
	CopyPressed bool

	bindings   Bindings
	dismissKey ebiten.Key
	copyKey    ebiten.Key
	focused    bool
	pressed    []ebiten.Key
	released   []ebiten.Key
}

func NewInput(bindings Bindings) *Input {
	return &Input{bindings: bindings, dismissKey: ebiten.KeySpace, copyKey: ebiten.KeyF2, focused: true}
}

// Update polls the keyboard edges since the last tick.
func (i *Input) Update() {
	i.setFocused(ebiten.IsFocused(), ebiten.IsKeyPressed)
	i.pressed = inpututil.AppendJustPressedKeys(i.pressed[:0])
	i.released = inpututil.AppendJustReleasedKeys(i.released[:0])
	i.apply(i.pressed, i.released)
}

// Direction is the active movement direction for this frame.
func (i *Input) Direction() sim.Direction {
	return i.Held.Active()
}

// setFocused drops held keys while unfocused, since releases are not
// reported then, and picks up the keys still held when focus returns.
func (i *Input) setFocused(focused bool, isPressed func(ebiten.Key) bool) {
	switch {
	case !focused:
		i.Held.Reset()
	case !i.focused:
		keys := make([]ebiten.Key, 0, len(i.bindings))
		for k := range i.bindings {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if isPressed(k) {
				i.Held.Press(k.String(), i.bindings[k])
			}
		}
	}
	i.focused = focused
}

func (i *Input) apply(pressed, released []ebiten.Key) {
	i.DismissPressed = false
	i.CopyPressed = false

	for _, k := range pressed {
		switch k {
		case i.dismissKey:
			i.DismissPressed = true
		case i.copyKey:
			i.CopyPressed = true
		}
		if dir, ok := i.bindings[k]; ok {
			i.Held.Press(k.String(), dir)
		}
	}
	// Releases go last so a tap within one tick does not stick.
	for _, k := range released {
		if _, ok := i.bindings[k]; ok {
			i.Held.Release(k.String())
		}
	}
}
