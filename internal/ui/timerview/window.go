package timerview

import (
	"fmt"
	"image/color"
	"time"

	"tickflip/internal/core/timer"
	"tickflip/internal/ui/preferences"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var (
	cardColor      = color.NRGBA{R: 34, G: 34, B: 38, A: 255}
	digitColor     = color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	separatorColor = color.NRGBA{R: 150, G: 150, B: 150, A: 255}
)

// Controller is what the window drives.
type Controller interface {
	Toggle()
	Reset()
	SelectPreset(minutes int)
	Snapshot() timer.Snapshot
}

// Window is the main countdown window.
type Window struct {
	window     fyne.Window
	controller Controller
	view       preferences.View

	minutes  *canvas.Text
	seconds  *canvas.Text
	flip     *fyne.Container
	progress *widget.ProgressBar
	clock    *widget.Label
	pie      *fyne.Container

	toggle      *widget.Button
	reset       *widget.Button
	presets     []*widget.Button
	slider      *widget.Slider
	sliderLabel *widget.Label
	notice      *widget.Label
	noticeSeq   int
}

// New creates the countdown window.
func New(app fyne.App, controller Controller, view preferences.View, onPreferences func()) *Window {
	window := app.NewWindow("TickFlip")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	timerWindow := &Window{
		window:     window,
		controller: controller,
	}

	timerWindow.minutes = newDigits()
	timerWindow.seconds = newDigits()
	colon := canvas.NewText(":", separatorColor)
	colon.TextSize = 64
	timerWindow.flip = container.NewCenter(container.NewHBox(
		newCard(timerWindow.minutes), colon, newCard(timerWindow.seconds),
	))

	timerWindow.progress = widget.NewProgressBar()
	timerWindow.progress.TextFormatter = func() string { return "" }
	timerWindow.clock = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true, Monospace: true})
	timerWindow.pie = container.NewVBox(timerWindow.clock, timerWindow.progress)

	timerWindow.toggle = widget.NewButton(ToggleLabel(false, false), controller.Toggle)
	timerWindow.toggle.Importance = widget.HighImportance
	timerWindow.reset = widget.NewButton("Reset", controller.Reset)

	presetRow := container.NewGridWithColumns(len(Presets))
	for _, minutes := range Presets {
		minutes := minutes
		button := widget.NewButton(fmt.Sprintf("%d min", minutes), func() {
			controller.SelectPreset(minutes)
		})
		timerWindow.presets = append(timerWindow.presets, button)
		presetRow.Add(button)
	}

	timerWindow.sliderLabel = widget.NewLabel("")
	timerWindow.slider = widget.NewSlider(timer.MinMinutes, timer.MaxMinutes)
	timerWindow.slider.Step = 1
	timerWindow.slider.OnChanged = func(value float64) {
		timerWindow.sliderLabel.SetText(fmt.Sprintf("%d min", int(value)))
	}
	timerWindow.slider.OnChangeEnded = func(value float64) {
		controller.SelectPreset(int(value))
	}
	timerWindow.slider.OnChanged(timerWindow.slider.Value)

	timerWindow.notice = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	timerWindow.notice.Hide()

	settingsButton := widget.NewButton("Settings", func() {
		if onPreferences != nil {
			onPreferences()
		}
	})

	controls := container.NewHBox(layout.NewSpacer(), timerWindow.toggle, timerWindow.reset, layout.NewSpacer())
	sliderRow := container.NewBorder(nil, nil, nil, timerWindow.sliderLabel, timerWindow.slider)
	content := container.NewVBox(
		timerWindow.flip,
		timerWindow.pie,
		timerWindow.notice,
		controls,
		widget.NewSeparator(),
		presetRow,
		sliderRow,
		container.NewHBox(layout.NewSpacer(), settingsButton),
	)

	window.SetContent(container.NewPadded(content))
	window.Canvas().SetOnTypedKey(timerWindow.handleKey)
	window.Resize(fyne.NewSize(420, 360))

	timerWindow.SetView(view)
	timerWindow.Render(controller.Snapshot())
	return timerWindow
}

// Window exposes the underlying fyne window.
func (timerWindow *Window) Window() fyne.Window {
	return timerWindow.window
}

// Show displays and focuses the window.
func (timerWindow *Window) Show() {
	timerWindow.window.Show()
	timerWindow.window.RequestFocus()
}

// SetView switches between flip cards and the progress view.
func (timerWindow *Window) SetView(view preferences.View) {
	timerWindow.view = view
	if view == preferences.ViewPie {
		timerWindow.flip.Hide()
		timerWindow.pie.Show()
		return
	}
	timerWindow.pie.Hide()
	timerWindow.flip.Show()
}

// Render draws a snapshot. Must be called on the fyne thread.
func (timerWindow *Window) Render(snapshot timer.Snapshot) {
	minutes, seconds := FlipDigits(snapshot.Remaining)
	timerWindow.minutes.Text = minutes
	timerWindow.minutes.Refresh()
	timerWindow.seconds.Text = seconds
	timerWindow.seconds.Refresh()
	timerWindow.clock.SetText(FormatRemaining(snapshot.Remaining))
	timerWindow.progress.SetValue(snapshot.Progress())

	state := snapshot.State()
	timerWindow.toggle.SetText(ToggleLabel(snapshot.Running, state == timer.StatePaused))
	if snapshot.Running {
		timerWindow.reset.Disable()
		timerWindow.slider.Disable()
		for _, button := range timerWindow.presets {
			button.Disable()
		}
	} else {
		timerWindow.reset.Enable()
		timerWindow.slider.Enable()
		for _, button := range timerWindow.presets {
			button.Enable()
		}
	}
	if snapshot.Finished || snapshot.Remaining == 0 {
		timerWindow.toggle.Disable()
	} else {
		timerWindow.toggle.Enable()
	}

	if minutesTotal := snapshot.Total / 60; minutesTotal >= timer.MinMinutes && int(timerWindow.slider.Value) != minutesTotal {
		timerWindow.slider.SetValue(float64(minutesTotal))
	}
}

// ShowNotice displays a transient message under the clock.
func (timerWindow *Window) ShowNotice(text string, duration time.Duration) {
	timerWindow.noticeSeq++
	seq := timerWindow.noticeSeq
	timerWindow.notice.SetText(text)
	timerWindow.notice.Show()
	time.AfterFunc(duration, func() {
		fyne.Do(func() {
			if seq == timerWindow.noticeSeq {
				timerWindow.notice.Hide()
			}
		})
	})
}

func (timerWindow *Window) handleKey(event *fyne.KeyEvent) {
	shortcut := ShortcutForKey(event.Name)
	switch shortcut.Action {
	case ActionToggle:
		timerWindow.controller.Toggle()
	case ActionReset:
		timerWindow.controller.Reset()
	case ActionPreset:
		timerWindow.controller.SelectPreset(shortcut.Minutes)
	}
}

func newDigits() *canvas.Text {
	text := canvas.NewText("00", digitColor)
	text.TextSize = 64
	text.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	text.Alignment = fyne.TextAlignCenter
	return text
}

func newCard(digits *canvas.Text) fyne.CanvasObject {
	card := canvas.NewRectangle(cardColor)
	card.CornerRadius = 10
	card.SetMinSize(fyne.NewSize(120, 100))
	return container.NewStack(card, container.NewCenter(digits))
}
