package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrayApp struct {
	menus []*fyne.Menu
}

func (app *fakeTrayApp) SetSystemTrayMenu(menu *fyne.Menu) {
	app.menus = append(app.menus, menu)
}

func (app *fakeTrayApp) SetSystemTrayIcon(fyne.Resource) {}

func (app *fakeTrayApp) SetSystemTrayWindow(fyne.Window) {}

func (app *fakeTrayApp) last(t *testing.T) *fyne.Menu {
	t.Helper()
	require.NotEmpty(t, app.menus)
	return app.menus[len(app.menus)-1]
}

func findItem(menu *fyne.Menu, label string) *fyne.MenuItem {
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	return nil
}

func TestMenuActionsInvokeCallbacks(t *testing.T) {
	app := &fakeTrayApp{}
	var toggled, reset int
	var preset int
	New(app, Callbacks{
		OnToggle: func() { toggled++ },
		OnReset:  func() { reset++ },
		OnPreset: func(minutes int) { preset = minutes },
	})

	menu := app.last(t)
	assert.Equal(t, "TickFlip: ready", menu.Items[0].Label)

	findItem(menu, "Start").Action()
	findItem(menu, "Reset").Action()
	presets := findItem(menu, "Set timer")
	require.NotNil(t, presets.ChildMenu)
	require.Len(t, presets.ChildMenu.Items, len(Presets))
	presets.ChildMenu.Items[2].Action()

	assert.Equal(t, 1, toggled)
	assert.Equal(t, 1, reset)
	assert.Equal(t, 25, preset)
}

func TestSetRunningLocksStoppedOnlyItems(t *testing.T) {
	app := &fakeTrayApp{}
	manager := New(app, Callbacks{})

	manager.SetRunning(true)
	menu := app.last(t)
	assert.NotNil(t, findItem(menu, "Pause"))
	assert.True(t, findItem(menu, "Reset").Disabled)
	assert.True(t, findItem(menu, "Set timer").Disabled)

	published := len(app.menus)
	manager.SetRunning(true)
	assert.Len(t, app.menus, published, "unchanged state does not rebuild the menu")

	manager.SetRunning(false)
	menu = app.last(t)
	assert.NotNil(t, findItem(menu, "Start"))
	assert.False(t, findItem(menu, "Reset").Disabled)
}

func TestSetStatus(t *testing.T) {
	app := &fakeTrayApp{}
	manager := New(app, Callbacks{})
	manager.SetStatus("04:59")
	assert.Equal(t, "TickFlip: 04:59", app.last(t).Items[0].Label)
}
