package timerview

import "fyne.io/fyne/v2"

// Presets are the quick durations on the preset row, in minutes.
var Presets = []int{5, 10, 25, 50}

// Action is a keyboard command.
type Action int

const (
	ActionNone Action = iota
	ActionToggle
	ActionReset
	ActionPreset
)

// Shortcut is a resolved key press.
type Shortcut struct {
	Action  Action
	Minutes int
}

var presetKeys = map[fyne.KeyName]int{
	fyne.Key1: 0,
	fyne.Key2: 1,
	fyne.Key3: 2,
	fyne.Key4: 3,
}

// ShortcutForKey maps Space, R and 1-4 to timer commands.
func ShortcutForKey(key fyne.KeyName) Shortcut {
	switch key {
	case fyne.KeySpace:
		return Shortcut{Action: ActionToggle}
	case fyne.KeyR:
		return Shortcut{Action: ActionReset}
	}
	if index, ok := presetKeys[key]; ok && index < len(Presets) {
		return Shortcut{Action: ActionPreset, Minutes: Presets[index]}
	}
	return Shortcut{Action: ActionNone}
}
