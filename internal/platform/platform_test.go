package platform

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfigDir(t *testing.T) {
	service := &platformService{
		userConfigDir: func() (string, error) { return "/cfg", nil },
		userHomeDir:   func() (string, error) { return "/home/u", nil },
	}

	dir, err := service.AppConfigDir("Tick Flip")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/cfg", "tick-flip"), dir)

	dir, err = service.AppConfigDir("  ")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/cfg", "tickflip"), dir)
}

func TestGetConfigDirFallsBackToHome(t *testing.T) {
	service := &platformService{
		userConfigDir: func() (string, error) { return "", errors.New("unset") },
		userHomeDir:   func() (string, error) { return "/home/u", nil },
	}

	dir, err := service.GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, fallbackConfigDir("/home/u"), dir)
}

func TestGetConfigDirFailsWithoutHome(t *testing.T) {
	service := &platformService{
		userConfigDir: func() (string, error) { return "", errors.New("unset") },
		userHomeDir:   func() (string, error) { return "", errors.New("no home") },
	}

	_, err := service.GetConfigDir()
	assert.Error(t, err)
}

func TestSingleInstance(t *testing.T) {
	appName := "tickflip-test-" + t.Name()
	guard, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	t.Cleanup(func() { _ = guard.Release() })
	assert.NotEmpty(t, guard.Address())

	_, err = AcquireSingleInstance(appName)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, guard.Release())
	again, err := AcquireSingleInstance(appName)
	require.NoError(t, err)
	require.NoError(t, again.Release())
}

func TestActivateRunning(t *testing.T) {
	appName := "tickflip-test-" + t.Name()
	guard, err := AcquireSingleInstance(appName)
	require.NoError(t, err)

	activated := make(chan struct{}, 1)
	served := make(chan struct{})
	go func() {
		guard.Serve(func() { activated <- struct{}{} })
		close(served)
	}()

	require.NoError(t, ActivateRunning(appName))
	select {
	case <-activated:
	case <-time.After(5 * time.Second):
		t.Fatal("activation not delivered")
	}

	require.NoError(t, guard.Release())
	<-served
	assert.Error(t, ActivateRunning(appName))
}

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("tickflip")
	assert.Equal(t, port, portFromName("tickflip"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestNilGuard(t *testing.T) {
	var guard *InstanceGuard
	assert.NoError(t, guard.Release())
	assert.Empty(t, guard.Address())
}
