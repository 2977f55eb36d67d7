package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var viewLabels = []string{"Flip cards", "Progress bar"}

var profileLabels = map[string]string{
	"gentle": "Gentle (default)",
	"clear":  "Clear",
	"chime":  "Chime",
}

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	onTestAlarm   func(profile string)
	sound         *widget.Check
	profile       *widget.Select
	haptic        *widget.Check
	notifications *widget.Check
	view          *widget.RadioGroup
	profileIDs    []string
}

// New creates a preferences window listing the given alarm profiles.
func New(app fyne.App, settings Settings, profileIDs []string, onSave func(Settings), onTestAlarm func(profile string)) *Window {
	window := app.NewWindow("TickFlip Settings")

	prefs := &Window{
		window:      window,
		settings:    settings,
		onSave:      onSave,
		onTestAlarm: onTestAlarm,
		profileIDs:  profileIDs,
	}

	labels := make([]string, len(profileIDs))
	for i, id := range profileIDs {
		labels[i] = profileLabel(id)
	}

	prefs.sound = widget.NewCheck("Sound alarm when the timer ends", nil)
	prefs.profile = widget.NewSelect(labels, nil)
	prefs.haptic = widget.NewCheck("Haptic feedback (where supported)", nil)
	prefs.notifications = widget.NewCheck("Desktop notification when the timer ends", nil)
	prefs.view = widget.NewRadioGroup(viewLabels, nil)
	prefs.view.Horizontal = true
	prefs.view.Required = true

	testButton := widget.NewButton("Test alarm", func() {
		if prefs.onTestAlarm != nil {
			prefs.onTestAlarm(prefs.selectedProfile())
		}
	})
	prefs.sound.OnChanged = func(enabled bool) {
		if enabled {
			prefs.profile.Enable()
			testButton.Enable()
			return
		}
		prefs.profile.Disable()
		testButton.Disable()
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Alarm", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.sound,
		container.NewHBox(widget.NewLabel("Alarm sound"), prefs.profile),
		testButton,
		widget.NewSeparator(),
		prefs.haptic,
		widget.NewSeparator(),
		prefs.notifications,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.view,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Keyboard shortcuts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Space: start/pause    R: reset    1-4: presets"),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 440))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.profile.SetSelected(profileLabel(settings.AlarmProfile))
	prefs.haptic.SetChecked(settings.HapticEnabled)
	prefs.notifications.SetChecked(settings.NotificationsEnabled)
	prefs.view.SetSelected(viewLabel(settings.View))
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.SoundEnabled = prefs.sound.Checked
	settings.AlarmProfile = prefs.selectedProfile()
	settings.HapticEnabled = prefs.haptic.Checked
	settings.NotificationsEnabled = prefs.notifications.Checked
	settings.View = viewFromLabel(prefs.view.Selected)

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) selectedProfile() string {
	index := prefs.profile.SelectedIndex()
	if index < 0 || index >= len(prefs.profileIDs) {
		return prefs.settings.AlarmProfile
	}
	return prefs.profileIDs[index]
}

func profileLabel(id string) string {
	if label, ok := profileLabels[id]; ok {
		return label
	}
	return id
}

func viewLabel(view View) string {
	if view == ViewPie {
		return viewLabels[1]
	}
	return viewLabels[0]
}

func viewFromLabel(label string) View {
	if label == viewLabels[1] {
		return ViewPie
	}
	return ViewFlip
}
