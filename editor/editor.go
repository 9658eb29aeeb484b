// Package editor is the interactive Gio front end: a zoomable canvas showing
// the room plan, a toolbar with the view controls and a measurement history list.
package editor

import (
	"context"
	"log"
	"time"

	"gioui.org/layout"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"github.com/bloodmagesoftware/arspace/mock"
	"github.com/bloodmagesoftware/arspace/plan"
	"github.com/bloodmagesoftware/arspace/planner"
)

// scanResult is what a background scan delivers back to the event loop.
type scanResult struct {
	room         plan.Room
	measurements []plan.Measurement
}

// Editor is the main planner component that manages the UI state and interactions
type Editor struct {
	ctx          context.Context
	theme        *material.Theme
	planFilePath string
	controller   *planner.Controller
	scanDelay    time.Duration
	verifyDelay  time.Duration
	invalidate   func()

	// UI state
	historyList    widget.List
	historyButtons []widget.Clickable
	saveButton     widget.Clickable
	zoomInButton   widget.Clickable
	zoomOutButton  widget.Clickable
	resetButton    widget.Clickable
	gridButton     widget.Clickable
	scanButton     widget.Clickable
	verifyButton   widget.Clickable
	icons          toolbarIcons
	dirty          bool   // true when there are unsaved changes
	status         string // last message shown in the bottom bar

	// Background tasks, at most one of each
	scan     *mock.Task[scanResult]
	verify   *mock.Task[[]mock.Accuracy]
	accuracy map[string]mock.Accuracy

	// Close confirmation dialog
	showCloseDialog    bool
	closeSaveButton    widget.Clickable
	closeDiscardButton widget.Clickable
	shouldClose        bool

	// Mouse/pointer state for canvas interaction
	isPanning  bool
	lastMouseX float32
	lastMouseY float32
}

type toolbarIcons struct {
	save, zoomIn, zoomOut, reset, gridOn, gridOff, scan, verify, cancel *widget.Icon
}

func loadIcon(name string, data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		log.Printf("Failed to load %s icon: %v", name, err)
		return nil
	}
	return icon
}

// NewEditor creates a new editor for the plan the controller owns. Background
// tasks run under ctx. invalidate is called from them to request a redraw once
// they finish; it may be nil.
func NewEditor(ctx context.Context, theme *material.Theme, planFilePath string, controller *planner.Controller, scanDelay time.Duration, invalidate func()) *Editor {
	if invalidate == nil {
		invalidate = func() {}
	}

	e := &Editor{
		ctx:          ctx,
		theme:        theme,
		planFilePath: planFilePath,
		controller:   controller,
		scanDelay:    scanDelay,
		verifyDelay:  mock.DefaultVerifyDelay,
		invalidate:   invalidate,
		historyList: widget.List{
			List: layout.List{
				Axis: layout.Vertical,
			},
		},
		icons: toolbarIcons{
			save:    loadIcon("save", icons.ContentSave),
			zoomIn:  loadIcon("zoom in", icons.ActionZoomIn),
			zoomOut: loadIcon("zoom out", icons.ActionZoomOut),
			reset:   loadIcon("reset", icons.NavigationRefresh),
			gridOn:  loadIcon("grid on", icons.ImageGridOn),
			gridOff: loadIcon("grid off", icons.ImageGridOff),
			scan:    loadIcon("scan", icons.ImageCameraAlt),
			verify:  loadIcon("verify", icons.ActionVerifiedUser),
			cancel:  loadIcon("cancel", icons.NavigationCancel),
		},
	}

	controller.OnSelect(func(previous, current string) {
		if current == "" {
			e.status = "Selection cleared"
			return
		}
		if m, ok := controller.Selected(); ok {
			e.status = "Selected " + describe(m)
		}
	})

	return e
}

// Controller returns the controller the editor drives.
func (e *Editor) Controller() *planner.Controller {
	return e.controller
}

// HasUnsavedChanges returns true if a scan replaced measurements since the last save.
func (e *Editor) HasUnsavedChanges() bool {
	return e.dirty
}

// Save writes the plan to disk and clears the dirty flag
func (e *Editor) Save() error {
	if err := e.controller.Plan().Save(e.planFilePath); err != nil {
		return err
	}
	e.dirty = false
	return nil
}

// StartScan runs a simulated scan in the background. The result replaces the
// plan's room and measurements when it arrives.
func (e *Editor) StartScan() {
	if e.scan != nil {
		return
	}
	delay := e.scanDelay
	e.scan = mock.Start(e.ctx, func(ctx context.Context) (scanResult, error) {
		room, ms, err := mock.Scan(ctx, delay)
		return scanResult{room: room, measurements: ms}, err
	})
	e.status = "Scanning room..."
	go e.invalidateWhenDone(e.scan.Done())
}

// StartVerify runs a simulated accuracy check of the current measurements.
func (e *Editor) StartVerify() {
	if e.verify != nil {
		return
	}
	ms := e.controller.Plan().Measurements
	delay := e.verifyDelay
	e.verify = mock.Start(e.ctx, func(ctx context.Context) ([]mock.Accuracy, error) {
		return mock.Verify(ctx, delay, ms)
	})
	e.status = "Verifying accuracy..."
	go e.invalidateWhenDone(e.verify.Done())
}

// CancelTasks stops any running scan or verification.
func (e *Editor) CancelTasks() {
	if e.scan != nil {
		e.scan.Cancel()
	}
	if e.verify != nil {
		e.verify.Cancel()
	}
}

func (e *Editor) invalidateWhenDone(done <-chan struct{}) {
	<-done
	e.invalidate()
}

// collectTasks applies the results of finished tasks. It runs on the event loop.
func (e *Editor) collectTasks() {
	if e.scan != nil {
		select {
		case <-e.scan.Done():
			res, err := e.scan.Wait()
			e.scan = nil
			if err != nil {
				log.Printf("Scan stopped: %v", err)
				e.status = "Scan cancelled"
				break
			}
			p, err := plan.New(e.controller.Plan().Name, res.room, res.measurements)
			if err == nil {
				err = e.controller.Replace(p)
			}
			if err != nil {
				log.Printf("Scan produced an invalid plan: %v", err)
				e.status = "Scan failed"
				break
			}
			e.accuracy = nil
			e.dirty = true
			e.status = "Scan complete"
			log.Printf("Scanned %d measurements", len(res.measurements))
		default:
		}
	}

	if e.verify != nil {
		select {
		case <-e.verify.Done():
			report, err := e.verify.Wait()
			e.verify = nil
			if err != nil {
				log.Printf("Verification stopped: %v", err)
				e.status = "Verification cancelled"
				break
			}
			e.accuracy = make(map[string]mock.Accuracy, len(report))
			for _, a := range report {
				e.accuracy[a.ID] = a
			}
			e.status = "Verification complete"
		default:
		}
	}
}

// RequestClose is called when the window close is requested
// Returns true if the window should close, false otherwise
func (e *Editor) RequestClose() bool {
	if !e.dirty {
		e.CancelTasks()
		return true
	}

	if !e.showCloseDialog {
		e.showCloseDialog = true
		return false
	}

	return e.shouldClose
}

// ShouldClose returns true if the window should close
func (e *Editor) ShouldClose() bool {
	return e.shouldClose
}
