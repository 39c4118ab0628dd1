package main

import "testing"

func TestDialogueBox(t *testing.T) {
	const (
		welcome = "Welcome to Beppu Town!"
		smith   = "Hello! I'm the blacksmith."
		home    = "Welcome to my home!"
	)

	type step struct {
		op   string
		text string
	}
	cases := []struct {
		name        string
		steps       []step
		wantVisible bool
		wantText    string
	}{
		{
			name:        "welcome_then_npc_line",
			steps:       []step{{"show", welcome}, {"dismiss", ""}, {"show", smith}},
			wantVisible: true,
			wantText:    smith,
		},
		{
			name:        "dismissed_line_stays_closed",
			steps:       []step{{"show", smith}, {"dismiss", ""}, {"show", smith}, {"show", smith}},
			wantVisible: false,
			wantText:    smith,
		},
		{
			name:        "hide_rearms_line",
			steps:       []step{{"show", smith}, {"dismiss", ""}, {"hide", ""}, {"show", smith}},
			wantVisible: true,
			wantText:    smith,
		},
		{
			name:        "different_line_reopens",
			steps:       []step{{"show", smith}, {"dismiss", ""}, {"show", home}},
			wantVisible: true,
			wantText:    home,
		},
		{
			name:        "dismiss_when_closed_is_noop",
			steps:       []step{{"dismiss", ""}, {"show", smith}},
			wantVisible: true,
			wantText:    smith,
		},
		{
			name:        "hide_closes",
			steps:       []step{{"show", smith}, {"hide", ""}},
			wantVisible: false,
			wantText:    smith,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var b dialogueBox
			for _, s := range c.steps {
				switch s.op {
				case "show":
					b.show(s.text)
				case "hide":
					b.hide()
				case "dismiss":
					b.dismiss()
				}
			}
			if b.visible != c.wantVisible {
				t.Fatalf("visible = %v, want %v", b.visible, c.wantVisible)
			}
			if b.text != c.wantText {
				t.Fatalf("text = %q, want %q", b.text, c.wantText)
			}
		})
	}
}
