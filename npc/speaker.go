// Package npc builds the dialogue speakers for the townsfolk.
package npc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/beppu/prefabs"
	"github.com/milk9111/beppu/sim"
)

var ErrNoText = errors.New("npc: script did not set text")

// DefaultScriptTimeout bounds a single Line call.
const DefaultScriptTimeout = 50 * time.Millisecond

// Static always says the same line.
type Static string

func (s Static) Line(sim.LineContext) (string, error) {
	return string(s), nil
}

// Script picks a line by running a tengo script. The script sees the globals
// npc, visits and facing and must assign a string to text.
type Script struct {
	Path    string
	Timeout time.Duration

	compiled *tengo.Compiled
}

// CompileScript compiles src once. Each Line call runs a clone.
func CompileScript(path string, src []byte) (*Script, error) {
	script := tengo.NewScript(src)
	_ = script.Add("npc", "")
	_ = script.Add("visits", 0)
	_ = script.Add("facing", "")
	script.SetImports(stdlib.GetModuleMap("text", "fmt", "math", "rand"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("npc: compile %s: %w", path, err)
	}
	return &Script{Path: path, Timeout: DefaultScriptTimeout, compiled: compiled}, nil
}

// LoadScript reads path through the prefab loader and compiles it.
func LoadScript(path string) (*Script, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("npc: load script %s: %w", path, err)
	}
	return CompileScript(path, src)
}

// Line runs the script for one dialogue. Runtime errors, panics inside the
// VM and scripts running past Timeout are returned as errors.
func (s *Script) Line(ctx sim.LineContext) (line string, err error) {
	defer func() {
		if r := recover(); r != nil {
			line, err = "", fmt.Errorf("npc: run %s: %v", s.Path, r)
		}
	}()

	c := s.compiled.Clone()

	if err := c.Set("npc", ctx.NPC); err != nil {
		return "", err
	}
	if err := c.Set("visits", ctx.Visits); err != nil {
		return "", err
	}
	if err := c.Set("facing", ctx.Facing.String()); err != nil {
		return "", err
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultScriptTimeout
	}
	runCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := c.RunContext(runCtx); err != nil {
		return "", fmt.Errorf("npc: run %s: %w", s.Path, err)
	}

	text := strings.TrimSpace(c.Get("text").String())
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrNoText, s.Path)
	}
	return text, nil
}

// FromSpec returns the speaker for an NPC: its script when one is named,
// otherwise its static message.
func FromSpec(spec prefabs.NPCSpec) (sim.Speaker, error) {
	if spec.Script == "" {
		return Static(spec.Message), nil
	}
	return LoadScript(spec.Script)
}
