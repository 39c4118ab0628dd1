package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/beppu/common"
	"golang.org/x/image/font/basicfont"
)

// dialogueBox is what the text box shows. A line closed with Space stays
// closed until the dialogue is hidden or a different line is shown.
type dialogueBox struct {
	text      string
	visible   bool
	dismissed string
}

func (b *dialogueBox) show(text string) {
	// The trigger re-shows its line every overlapping frame; a dismissed
	// line must not reopen on the next one.
	if b.dismissed != "" && b.dismissed == text {
		return
	}
	b.dismissed = ""
	b.text = text
	b.visible = true
}

func (b *dialogueBox) hide() {
	b.dismissed = ""
	b.visible = false
}

func (b *dialogueBox) dismiss() {
	if !b.visible {
		return
	}
	b.dismissed = b.text
	b.visible = false
}

// DialogueUI is the text box along the bottom of the screen.
type DialogueUI struct {
	UI *ebitenui.UI

	panel *widget.Container
	label *widget.Text
	box   dialogueBox
}

func NewDialogueUI() *DialogueUI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 220})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	label := widget.NewText(
		widget.TextOpts.Text("", &face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth-80, 90),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	panel.AddChild(label)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	d := &DialogueUI{
		UI:    &ebitenui.UI{Container: root},
		panel: panel,
		label: label,
	}
	d.sync()
	return d
}

// Show displays text unless that same text was dismissed.
func (d *DialogueUI) Show(text string) {
	d.box.show(text)
	d.sync()
}

func (d *DialogueUI) Hide() {
	d.box.hide()
	d.sync()
}

// Dismiss closes the box at the player's request.
func (d *DialogueUI) Dismiss() {
	d.box.dismiss()
	d.sync()
}

func (d *DialogueUI) sync() {
	d.label.Label = d.box.text
	if d.box.visible {
		d.panel.GetWidget().Visibility = widget.Visibility_Show
	} else {
		d.panel.GetWidget().Visibility = widget.Visibility_Hide
	}
}
