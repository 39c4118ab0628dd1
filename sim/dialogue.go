package sim

import (
	"log"

	"github.com/milk9111/beppu/common"
)

// DialogueSurface displays NPC dialogue. The simulation only decides when
// and what to show.
type DialogueSurface interface {
	Show(text string)
	Hide()
}

// LineContext is what a Speaker may use to choose its line.
type LineContext struct {
	NPC    string
	Visits int
	Facing Direction
}

// Speaker produces the dialogue line for an NPC.
type Speaker interface {
	Line(ctx LineContext) (string, error)
}

// DialogueState is the currently displayed dialogue, if any.
type DialogueState struct {
	Active bool
	Text   string
	// Speaker is the index of the NPC being shown, or -1.
	Speaker int
	gen     int
}

func inactiveDialogue() DialogueState {
	return DialogueState{Speaker: -1}
}

// Trigger shows the line of the first NPC overlapping the player, in the
// fixed priority order of npcs, and hides the dialogue when none overlaps.
type Trigger struct {
	npcs    []NPCConfig
	surface DialogueSurface
	gen     int
}

// resolve runs the trigger for one frame. positions holds the current screen
// position of each npc and visits is updated in place when a dialogue opens.
func (t *Trigger) resolve(player common.Rect, facing Direction, positions []common.Vec, visits []int, prev DialogueState) DialogueState {
	for i, npc := range t.npcs {
		if !player.Intersects(npc.Hitbox(positions[i])) {
			continue
		}

		next := prev
		opening := !prev.Active || prev.Speaker != i
		if opening {
			visits[i]++
		}
		if opening || prev.gen != t.gen {
			next.Text = t.line(npc, LineContext{NPC: npc.Name, Visits: visits[i], Facing: facing})
		}
		next.Active = true
		next.Speaker = i
		next.gen = t.gen
		if t.surface != nil {
			t.surface.Show(next.Text)
		}
		return next
	}

	return t.hide(prev)
}

func (t *Trigger) hide(prev DialogueState) DialogueState {
	if !prev.Active {
		return prev
	}
	if t.surface != nil {
		t.surface.Hide()
	}
	return inactiveDialogue()
}

func (t *Trigger) line(npc NPCConfig, ctx LineContext) string {
	if npc.Speaker == nil {
		return npc.Message
	}
	text, err := npc.Speaker.Line(ctx)
	if err != nil {
		log.Printf("dialogue: npc %s line error: %v", npc.Name, err)
		return npc.Message
	}
	return text
}
