package overlay

import (
	"context"
	"fmt"
	"image/color"

	"tickflip/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var (
	pulseOnColor  = color.NRGBA{R: 196, G: 43, B: 43, A: 235}
	pulseOffColor = color.NRGBA{R: 40, G: 12, B: 12, A: 235}
	textColor     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

const (
	overlayWidth  = float32(420)
	overlayHeight = float32(240)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Window is the "time's up" alarm overlay.
type Window struct {
	window     fyne.Window
	background *canvas.Rectangle
	title      *canvas.Text
	subtitle   *canvas.Text
	okButton   *widget.Button
	engine     *animation.Engine
	cancel     context.CancelFunc
	onDismiss  func()
}

// New creates the overlay window, hidden.
func New(app fyne.App, engine *animation.Engine) *Window {
	window := app.NewWindow("Time's up!")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(pulseOnColor)

	title := canvas.NewText("Time's up!", textColor)
	title.Alignment = fyne.TextAlignCenter
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 36

	subtitle := canvas.NewText("", textColor)
	subtitle.Alignment = fyne.TextAlignCenter
	subtitle.TextSize = 16

	overlay := &Window{
		window:     window,
		background: background,
		title:      title,
		subtitle:   subtitle,
		engine:     engine,
	}
	overlay.okButton = widget.NewButton("OK", overlay.dismiss)

	content := container.NewCenter(container.NewVBox(title, subtitle, container.NewCenter(overlay.okButton)))
	window.SetContent(container.NewStack(background, content))
	window.SetCloseIntercept(overlay.dismiss)
	window.Resize(fyne.NewSize(overlayWidth, overlayHeight))
	return overlay
}

// SetOnDismiss sets the OK handler.
func (overlay *Window) SetOnDismiss(handler func()) {
	overlay.onDismiss = handler
}

// Show displays the overlay for a finished countdown of total seconds and
// starts pulsing. Must be called on the fyne thread.
func (overlay *Window) Show(totalSeconds int) {
	overlay.stopPulse()

	overlay.subtitle.Text = CompletionMessage(totalSeconds)
	overlay.subtitle.Refresh()
	overlay.window.CenterOnScreen()
	overlay.window.Show()
	overlay.window.RequestFocus()

	if overlay.engine == nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancel = cancel
	overlay.engine.StartPulse(ctx, func(on bool) {
		fyne.Do(func() {
			overlay.background.FillColor = PulseColor(on)
			overlay.background.Refresh()
		})
	})
}

// Hide closes the overlay and stops the pulse.
func (overlay *Window) Hide() {
	overlay.stopPulse()
	overlay.window.Hide()
}

func (overlay *Window) dismiss() {
	overlay.Hide()
	if overlay.onDismiss != nil {
		overlay.onDismiss()
	}
}

func (overlay *Window) stopPulse() {
	if overlay.cancel != nil {
		overlay.cancel()
		overlay.cancel = nil
	}
}

// PulseColor returns the background for one pulse phase.
func PulseColor(on bool) color.Color {
	if on {
		return pulseOnColor
	}
	return pulseOffColor
}

// CompletionMessage describes the finished countdown.
func CompletionMessage(totalSeconds int) string {
	if totalSeconds <= 0 {
		return "Your timer has finished."
	}
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	switch {
	case minutes == 0:
		return fmt.Sprintf("Your %d second timer has finished.", seconds)
	case seconds == 0 && minutes == 1:
		return "Your 1 minute timer has finished."
	case seconds == 0:
		return fmt.Sprintf("Your %d minute timer has finished.", minutes)
	default:
		return fmt.Sprintf("Your %d:%02d timer has finished.", minutes, seconds)
	}
}
