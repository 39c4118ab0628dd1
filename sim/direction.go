package sim

import (
	"fmt"
	"strings"
)

// Direction is a movement intent or a facing.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

var directionNames = map[Direction]string{
	DirNone:  "none",
	DirUp:    "up",
	DirDown:  "down",
	DirLeft:  "left",
	DirRight: "right",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection maps a direction name to a Direction, ignoring case.
func ParseDirection(s string) (Direction, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for d, name := range directionNames {
		if d != DirNone && name == want {
			return d, nil
		}
	}
	return DirNone, fmt.Errorf("sim: unknown direction %q", s)
}

type heldKey struct {
	key string
	dir Direction
}

// HeldKeys is the ordered set of currently held movement keys, oldest first.
// The most recently pressed key that is still held decides the direction.
type HeldKeys struct {
	keys []heldKey
}

// Press records key as held. Repeated presses of a held key are ignored.
func (h *HeldKeys) Press(key string, dir Direction) {
	if h == nil || key == "" || dir == DirNone {
		return
	}
	for _, k := range h.keys {
		if k.key == key {
			return
		}
	}
	h.keys = append(h.keys, heldKey{key: key, dir: dir})
}

// Release drops key from the held set.
func (h *HeldKeys) Release(key string) {
	if h == nil {
		return
	}
	out := h.keys[:0]
	for _, k := range h.keys {
		if k.key != key {
			out = append(out, k)
		}
	}
	h.keys = out
}

// Reset releases every key.
func (h *HeldKeys) Reset() {
	if h == nil {
		return
	}
	h.keys = h.keys[:0]
}

// Active returns the direction of the last pressed key that is still held.
func (h *HeldKeys) Active() Direction {
	if h == nil || len(h.keys) == 0 {
		return DirNone
	}
	return h.keys[len(h.keys)-1].dir
}

// Len returns the number of held keys.
func (h *HeldKeys) Len() int {
	if h == nil {
		return 0
	}
	return len(h.keys)
}
