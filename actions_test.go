package shieldbar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedApp(t *testing.T, mode Mode) (*App, *fakeToolkit) {
	t.Helper()

	tk := &fakeToolkit{}
	opts := DefaultOptions()
	opts.Mode = mode
	opts.PreferencesURL = "x-apple.systempreferences:com.apple.preference.security"

	app := New(tk, StaticRows(), opts)
	require.NoError(t, app.Start())

	return app, tk
}

// TestDispatch_Coverage verifies that every registered action emits exactly
// one notification titled with the action name.
func TestDispatch_Coverage(t *testing.T) {
	names := map[HandlerID]string{
		HandlerUpdateStatus:      "Update Status",
		HandlerOpenSecurityPrefs: "Security Preferences",
		HandlerQuit:              "Quit",
	}

	app, _ := startedApp(t, ModePopover)
	require.ElementsMatch(t, []HandlerID{HandlerUpdateStatus, HandlerOpenSecurityPrefs, HandlerQuit}, app.Dispatcher().Actions())

	for _, id := range app.Dispatcher().Actions() {
		t.Run(string(id), func(t *testing.T) {
			app, tk := startedApp(t, ModePopover)

			require.NoError(t, app.Dispatcher().Dispatch(id, nil))
			require.Len(t, tk.notifications, 1)
			assert.Equal(t, names[id], tk.notifications[0].title)
			assert.NotEmpty(t, tk.notifications[0].message)
		})
	}
}

func TestDispatch_Effects(t *testing.T) {
	t.Run("quit", func(t *testing.T) {
		app, tk := startedApp(t, ModeMenu)

		require.NoError(t, app.Dispatcher().Dispatch(HandlerQuit, nil))
		assert.Equal(t, 1, tk.terminated)
		assert.Equal(t, "Application is quitting.", tk.notifications[0].message)
	})

	t.Run("security preferences", func(t *testing.T) {
		app, tk := startedApp(t, ModeMenu)

		require.NoError(t, app.Dispatcher().Dispatch(HandlerOpenSecurityPrefs, nil))
		assert.Equal(t, []string{"x-apple.systempreferences:com.apple.preference.security"}, tk.opened)
	})

	t.Run("update status rebuilds the popover", func(t *testing.T) {
		app, tk := startedApp(t, ModePopover)
		require.Len(t, tk.surface.contents, 1)

		require.NoError(t, app.Dispatcher().Dispatch(HandlerUpdateStatus, nil))
		require.Len(t, tk.surface.contents, 2)
		assert.NotSame(t, tk.surface.contents[0], tk.surface.contents[1])
	})
}

// TestDispatch_NotifyBeforeEffect verifies that quit notifies before it
// terminates.
func TestDispatch_NotifyBeforeEffect(t *testing.T) {
	var order []string

	d := NewDispatcher(notifierFunc(func(title, _ string) error {
		order = append(order, "notify:"+title)
		return nil
	}))
	d.Register(Action{
		ID:   HandlerQuit,
		Name: "Quit",
		Effect: func(Sender) error {
			order = append(order, "terminate")
			return nil
		},
	})

	require.NoError(t, d.Dispatch(HandlerQuit, nil))
	assert.Equal(t, []string{"notify:Quit", "terminate"}, order)
}

func TestDispatch_IgnoresNotifyFailure(t *testing.T) {
	app, tk := startedApp(t, ModeMenu)
	tk.notifyErr = errors.New("no notification daemon")

	require.NoError(t, app.Dispatcher().Dispatch(HandlerQuit, nil))
	assert.Equal(t, 1, tk.terminated)
}

func TestDispatch_Unknown(t *testing.T) {
	d := NewDispatcher(nil)

	err := d.Dispatch("missing", nil)
	assert.ErrorIs(t, err, ErrUnknownHandler)
}

func TestDispatch_EffectError(t *testing.T) {
	d := NewDispatcher(nil)
	d.Register(Action{
		ID:     "fail",
		Name:   "Fail",
		Effect: func(Sender) error { return errFake },
	})

	assert.ErrorIs(t, d.Dispatch("fail", nil), errFake)
}

func TestDefaultMenu(t *testing.T) {
	menu := DefaultMenu()
	require.Len(t, menu, 4)

	assert.Equal(t, HandlerUpdateStatus, menu[0].Handler)
	assert.Equal(t, HandlerOpenSecurityPrefs, menu[1].Handler)
	assert.True(t, menu[2].Separator)
	assert.Equal(t, HandlerQuit, menu[3].Handler)
	assert.Equal(t, "q", menu[3].Key)
}

type notifierFunc func(title, message string) error

func (f notifierFunc) Notify(title, message string) error {
	return f(title, message)
}
