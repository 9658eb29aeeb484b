package editor

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/bloodmagesoftware/arspace/plan"
)

var (
	colorBar      = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
	colorPanel    = color.NRGBA{R: 50, G: 50, B: 50, A: 255}
	colorText     = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	colorButton   = color.NRGBA{R: 70, G: 70, B: 70, A: 255}
	colorActive   = color.NRGBA{R: 80, G: 140, B: 200, A: 255}
	colorPrimary  = color.NRGBA{R: 60, G: 120, B: 200, A: 255}
	colorWarning  = color.NRGBA{R: 200, G: 120, B: 60, A: 255}
	colorDanger   = color.NRGBA{R: 200, G: 80, B: 60, A: 255}
	colorOnButton = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// describe names a measurement the way the history list shows it.
func describe(m plan.Measurement) string {
	name := m.Label
	if name == "" {
		name = string(m.Kind)
	}
	return fmt.Sprintf("%s: %s", name, m.Display())
}

// shortcut binds a key filter to a view operation.
type shortcut struct {
	filter key.Filter
	action func()
}

// keyShortcuts lists the view keys. "+" is Shift+= on most layouts, so Shift
// is optional there and "=" zooms in as well.
func (e *Editor) keyShortcuts() []shortcut {
	return []shortcut{
		{key.Filter{Name: "+", Optional: key.ModShift}, e.controller.ZoomIn},
		{key.Filter{Name: "=", Optional: key.ModShift}, e.controller.ZoomIn},
		{key.Filter{Name: "-"}, e.controller.ZoomOut},
		{key.Filter{Name: "0"}, e.controller.ResetView},
		{key.Filter{Name: "G"}, e.controller.ToggleGrid},
		{key.Filter{Name: key.NameEscape}, func() { e.controller.Select("") }},
	}
}

// Layout renders the entire editor UI
func (e *Editor) Layout(gtx layout.Context) layout.Dimensions {
	e.collectTasks()

	// Register for global keyboard events
	event.Op(gtx.Ops, e)

	for _, sc := range e.keyShortcuts() {
		for {
			ev, ok := gtx.Event(sc.filter)
			if !ok {
				break
			}
			if ev, ok := ev.(key.Event); ok && ev.State == key.Press {
				sc.action()
			}
		}
	}

	// Ctrl/Cmd+Q quits, asking first if a scan is unsaved
	for {
		ev, ok := gtx.Event(key.Filter{Name: "Q", Required: key.ModShortcut})
		if !ok {
			break
		}
		if ev, ok := ev.(key.Event); ok && ev.State == key.Press && e.RequestClose() {
			e.shouldClose = true
		}
	}

	// Handle close dialog buttons
	if e.closeSaveButton.Clicked(gtx) {
		if err := e.Save(); err != nil {
			log.Printf("Failed to save plan: %v", err)
		} else {
			log.Printf("Plan saved to %s", e.planFilePath)
		}
		e.showCloseDialog = false
		e.shouldClose = true
	}
	if e.closeDiscardButton.Clicked(gtx) {
		e.showCloseDialog = false
		e.shouldClose = true
	}
	if e.shouldClose {
		e.CancelTasks()
	}

	dims := layout.Flex{
		Axis: layout.Vertical,
	}.Layout(gtx,
		layout.Rigid(e.layoutTopBar),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis: layout.Horizontal,
			}.Layout(gtx,
				layout.Flexed(1, e.layoutCanvas),
				layout.Rigid(e.layoutHistory),
			)
		}),
		layout.Rigid(e.layoutStatusBar),
	)

	if e.showCloseDialog {
		e.layoutCloseDialog(gtx)
	}

	return dims
}

func fillBackground(col color.NRGBA) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		defer clip.Rect{Max: gtx.Constraints.Min}.Push(gtx.Ops).Pop()
		paint.ColorOp{Color: col}.Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
		return layout.Dimensions{Size: gtx.Constraints.Min}
	}
}

// iconButton lays out a toolbar button; it is skipped if its icon failed to load.
func (e *Editor) iconButton(gtx layout.Context, click *widget.Clickable, icon *widget.Icon, description string, background color.NRGBA) layout.Dimensions {
	if icon == nil {
		return layout.Dimensions{}
	}
	btn := material.IconButton(e.theme, click, icon, description)
	btn.Background = background
	btn.Color = colorOnButton
	btn.Size = unit.Dp(20)
	return layout.Inset{Right: unit.Dp(6)}.Layout(gtx, btn.Layout)
}

// layoutTopBar renders the toolbar with the plan name, save and view controls
func (e *Editor) layoutTopBar(gtx layout.Context) layout.Dimensions {
	if e.saveButton.Clicked(gtx) {
		if err := e.Save(); err != nil {
			log.Printf("Failed to save plan: %v", err)
			e.status = "Save failed"
		} else {
			log.Printf("Plan saved to %s", e.planFilePath)
			e.status = "Saved"
		}
	}
	if e.zoomInButton.Clicked(gtx) {
		e.controller.ZoomIn()
	}
	if e.zoomOutButton.Clicked(gtx) {
		e.controller.ZoomOut()
	}
	if e.resetButton.Clicked(gtx) {
		e.controller.ResetView()
	}
	if e.gridButton.Clicked(gtx) {
		e.controller.ToggleGrid()
	}
	if e.scanButton.Clicked(gtx) {
		if e.scan != nil {
			e.scan.Cancel()
		} else {
			e.StartScan()
		}
	}
	if e.verifyButton.Clicked(gtx) {
		if e.verify != nil {
			e.verify.Cancel()
		} else {
			e.StartVerify()
		}
	}

	gtx.Constraints.Min = gtx.Constraints.Max
	gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(40))
	gtx.Constraints.Max.Y = gtx.Constraints.Min.Y

	return layout.Background{}.Layout(gtx,
		fillBackground(colorBar),
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis:      layout.Horizontal,
				Alignment: layout.Middle,
			}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(8)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						title := "Plan: " + filepath.Base(e.planFilePath)
						if e.dirty {
							title += " *"
						}
						label := material.Body1(e.theme, title)
						label.Color = colorText
						return label.Layout(gtx)
					})
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					bg := colorPrimary
					if e.dirty {
						bg = colorWarning
					}
					return e.iconButton(gtx, &e.saveButton, e.icons.save, "Save plan", bg)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return e.iconButton(gtx, &e.zoomInButton, e.icons.zoomIn, "Zoom in", colorButton)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return e.iconButton(gtx, &e.zoomOutButton, e.icons.zoomOut, "Zoom out", colorButton)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return e.iconButton(gtx, &e.resetButton, e.icons.reset, "Reset view", colorButton)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					icon, bg := e.icons.gridOn, colorButton
					if e.controller.View().ShowGrid {
						icon, bg = e.icons.gridOff, colorActive
					}
					return e.iconButton(gtx, &e.gridButton, icon, "Toggle grid", bg)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(16)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if e.scan != nil {
						return e.iconButton(gtx, &e.scanButton, e.icons.cancel, "Cancel scan", colorDanger)
					}
					return e.iconButton(gtx, &e.scanButton, e.icons.scan, "Scan room", colorPrimary)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if e.verify != nil {
						return e.iconButton(gtx, &e.verifyButton, e.icons.cancel, "Cancel verification", colorDanger)
					}
					return e.iconButton(gtx, &e.verifyButton, e.icons.verify, "Verify accuracy", colorPrimary)
				}),
			)
		},
	)
}

// layoutHistory renders the right sidebar listing every measurement in order
func (e *Editor) layoutHistory(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Min.X = gtx.Dp(unit.Dp(240))
	gtx.Constraints.Max.X = gtx.Constraints.Min.X
	gtx.Constraints.Min.Y = gtx.Constraints.Max.Y

	measurements := e.controller.Plan().Measurements
	for len(e.historyButtons) < len(measurements) {
		e.historyButtons = append(e.historyButtons, widget.Clickable{})
	}
	selected := e.controller.View().SelectedMeasurementID

	return layout.Background{}.Layout(gtx,
		fillBackground(colorPanel),
		func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{
				Axis: layout.Vertical,
			}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(unit.Dp(12)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						label := material.H6(e.theme, "Measurements")
						label.Color = colorText
						return label.Layout(gtx)
					})
				}),
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return material.List(e.theme, &e.historyList).Layout(gtx, len(measurements), func(gtx layout.Context, index int) layout.Dimensions {
						m := measurements[index]
						click := &e.historyButtons[index]
						if click.Clicked(gtx) {
							e.controller.Select(m.ID)
						}

						text := describe(m)
						if a, ok := e.accuracy[m.ID]; ok {
							text += fmt.Sprintf(" (±%g)", a.Tolerance)
						}

						return layout.UniformInset(unit.Dp(6)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
							gtx.Constraints.Min.X = gtx.Constraints.Max.X
							button := material.Button(e.theme, click, text)
							button.Background = colorButton
							if m.ID == selected {
								button.Background = colorActive
							}
							button.Color = colorText
							button.TextSize = unit.Sp(13)
							return button.Layout(gtx)
						})
					})
				}),
			)
		},
	)
}

// layoutStatusBar shows the zoom level and the last status message
func (e *Editor) layoutStatusBar(gtx layout.Context) layout.Dimensions {
	gtx.Constraints.Min = gtx.Constraints.Max
	gtx.Constraints.Min.Y = gtx.Dp(unit.Dp(28))
	gtx.Constraints.Max.Y = gtx.Constraints.Min.Y

	v := e.controller.View()
	text := fmt.Sprintf("Zoom %.0f%%", v.Scale*100)
	if e.status != "" {
		text += "  |  " + e.status
	}

	return layout.Background{}.Layout(gtx,
		fillBackground(colorBar),
		func(gtx layout.Context) layout.Dimensions {
			return layout.Inset{Left: unit.Dp(8), Top: unit.Dp(4)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
				label := material.Caption(e.theme, text)
				label.Color = colorText
				return label.Layout(gtx)
			})
		},
	)
}

// layoutCloseDialog renders the close confirmation dialog
func (e *Editor) layoutCloseDialog(gtx layout.Context) layout.Dimensions {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	paint.ColorOp{Color: color.NRGBA{A: 200}}.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Background{}.Layout(gtx,
			func(gtx layout.Context) layout.Dimensions {
				defer clip.UniformRRect(image.Rectangle{Max: gtx.Constraints.Min}, 8).Push(gtx.Ops).Pop()
				paint.ColorOp{Color: colorPanel}.Add(gtx.Ops)
				paint.PaintOp{}.Add(gtx.Ops)
				return layout.Dimensions{Size: gtx.Constraints.Min}
			},
			func(gtx layout.Context) layout.Dimensions {
				return layout.UniformInset(unit.Dp(24)).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layout.Flex{
						Axis: layout.Vertical,
					}.Layout(gtx,
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Inset{Bottom: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								label := material.H6(e.theme, "Unsaved Scan")
								label.Color = colorText
								return label.Layout(gtx)
							})
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Inset{Bottom: unit.Dp(24)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
								gtx.Constraints.Max.X = gtx.Dp(unit.Dp(400))
								label := material.Body1(e.theme, "Do you want to save the scanned measurements before closing?")
								label.Color = colorText
								return label.Layout(gtx)
							})
						}),
						layout.Rigid(func(gtx layout.Context) layout.Dimensions {
							return layout.Flex{
								Axis:    layout.Horizontal,
								Spacing: layout.SpaceEnd,
							}.Layout(gtx,
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									btn := material.Button(e.theme, &e.closeSaveButton, "Save")
									btn.Background = colorPrimary
									btn.Color = colorOnButton
									return layout.Inset{Right: unit.Dp(8)}.Layout(gtx, btn.Layout)
								}),
								layout.Rigid(func(gtx layout.Context) layout.Dimensions {
									btn := material.Button(e.theme, &e.closeDiscardButton, "Discard")
									btn.Background = colorDanger
									btn.Color = colorOnButton
									return btn.Layout(gtx)
								}),
							)
						}),
					)
				})
			},
		)
	})
}
