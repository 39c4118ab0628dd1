package obj

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/beppu/sim"
)

func TestParseKeyIgnoresCase(t *testing.T) {
	cases := map[string]ebiten.Key{
		"w":       ebiten.KeyW,
		"W":       ebiten.KeyW,
		"ArrowUp": ebiten.KeyArrowUp,
		"arrowup": ebiten.KeyArrowUp,
		" SPACE ": ebiten.KeySpace,
	}
	for name, want := range cases {
		got, err := ParseKey(name)
		if err != nil {
			t.Fatalf("ParseKey(%q): %v", name, err)
		}
		if got != want {
			t.Fatalf("ParseKey(%q) = %v, want %v", name, got, want)
		}
	}
	if _, err := ParseKey("not-a-key"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings(map[sim.Direction][]string{
		sim.DirUp:   {"w", "ArrowUp"},
		sim.DirLeft: {"A"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b[ebiten.KeyW] != sim.DirUp || b[ebiten.KeyArrowUp] != sim.DirUp || b[ebiten.KeyA] != sim.DirLeft {
		t.Fatalf("unexpected bindings %v", b)
	}

	if _, err := ParseBindings(map[sim.Direction][]string{sim.DirUp: {"w"}, sim.DirDown: {"W"}}); err == nil {
		t.Fatalf("expected conflict error")
	}
	if _, err := ParseBindings(map[sim.Direction][]string{sim.DirUp: {"nope"}}); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestInputApply(t *testing.T) {
	in := NewInput(Bindings{
		ebiten.KeyW: sim.DirUp,
		ebiten.KeyA: sim.DirLeft,
		ebiten.KeyD: sim.DirRight,
	})

	steps := []struct {
		name     string
		pressed  []ebiten.Key
		released []ebiten.Key
		want     sim.Direction
		dismiss  bool
	}{
		{"press_up", []ebiten.Key{ebiten.KeyW}, nil, sim.DirUp, false},
		{"press_left", []ebiten.Key{ebiten.KeyA}, nil, sim.DirLeft, false},
		{"release_up", nil, []ebiten.Key{ebiten.KeyW}, sim.DirLeft, false},
		{"unbound_key_ignored", []ebiten.Key{ebiten.KeyQ}, nil, sim.DirLeft, false},
		{"space_dismisses", []ebiten.Key{ebiten.KeySpace}, nil, sim.DirLeft, true},
		{"dismiss_is_one_shot", nil, nil, sim.DirLeft, false},
		{"tap_right_within_tick", []ebiten.Key{ebiten.KeyD}, []ebiten.Key{ebiten.KeyD}, sim.DirLeft, false},
		{"release_left", nil, []ebiten.Key{ebiten.KeyA}, sim.DirNone, false},
	}
	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			in.apply(s.pressed, s.released)
			if got := in.Direction(); got != s.want {
				t.Fatalf("Direction() = %s, want %s", got, s.want)
			}
			if in.DismissPressed != s.dismiss {
				t.Fatalf("DismissPressed = %v, want %v", in.DismissPressed, s.dismiss)
			}
		})
	}
}

func TestInputFocusRestoresHeldKeys(t *testing.T) {
	in := NewInput(Bindings{
		ebiten.KeyW: sim.DirUp,
		ebiten.KeyA: sim.DirLeft,
	})
	held := map[ebiten.Key]bool{ebiten.KeyW: true}
	isPressed := func(k ebiten.Key) bool { return held[k] }

	in.apply([]ebiten.Key{ebiten.KeyW}, nil)
	in.setFocused(true, isPressed)
	if got := in.Direction(); got != sim.DirUp {
		t.Fatalf("focused: Direction() = %s, want up", got)
	}

	in.setFocused(false, isPressed)
	if got := in.Direction(); got != sim.DirNone {
		t.Fatalf("unfocused: Direction() = %s, want none", got)
	}
	in.setFocused(false, isPressed)

	in.setFocused(true, isPressed)
	if got := in.Direction(); got != sim.DirUp {
		t.Fatalf("refocused: Direction() = %s, want up", got)
	}
	if in.Held.Len() != 1 {
		t.Fatalf("expected only the still held key, got %d", in.Held.Len())
	}

	// Staying focused does not re-press keys.
	held[ebiten.KeyA] = true
	in.setFocused(true, isPressed)
	if got := in.Direction(); got != sim.DirUp {
		t.Fatalf("steady focus: Direction() = %s, want up", got)
	}
}

func TestSpriteHitbox(t *testing.T) {
	s := &Sprite{Width: 48, Height: 72}
	s.Position.X = 10
	s.Position.Y = -5
	hb := s.Hitbox()
	if hb.X != 10 || hb.Y != -5 || hb.Width != 48 || hb.Height != 72 {
		t.Fatalf("unexpected hitbox %+v", hb)
	}
	var nilSprite *Sprite
	if nilSprite.Hitbox().Width != 0 {
		t.Fatalf("expected zero hitbox for nil sprite")
	}
	if NewSprite(nil).Width != 0 {
		t.Fatalf("expected zero-size sprite without an image")
	}
}
