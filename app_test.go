package shieldbar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_StartPopover(t *testing.T) {
	app, tk := startedApp(t, ModePopover)

	require.Len(t, tk.items, 1)
	assert.Equal(t, []string{"shield.fill"}, tk.icons)

	item := tk.items[0]
	require.NotNil(t, item.click)
	assert.Nil(t, item.actions)

	require.NotNil(t, app.Surface())
	require.Len(t, tk.surface.contents, 1)
	assert.Len(t, tk.surface.contents[0].Find("list").Children, 4)

	// A click on the indicator toggles the popover owned by the app.
	bounds := NewRect(0, 0, 24, 22)
	item.click.OnClick(fakeSender{bounds: bounds})
	assert.True(t, app.Surface().IsShown())
	assert.Equal(t, bounds, tk.surface.anchors[0].Bounds)

	tk.surface.Dismiss()
	item.click.OnClick(fakeSender{bounds: bounds})
	assert.True(t, app.Surface().IsShown())

	item.click.OnClick(fakeSender{bounds: bounds})
	assert.False(t, app.Surface().IsShown())
}

func TestApp_StartMenu(t *testing.T) {
	app, tk := startedApp(t, ModeMenu)

	require.Len(t, tk.items, 1)
	item := tk.items[0]
	assert.Nil(t, item.click)
	assert.Equal(t, DefaultMenu(), item.actions)
	assert.Nil(t, app.Surface())
	assert.Nil(t, tk.surface)

	require.NoError(t, item.target.Dispatch(HandlerQuit, nil))
	assert.Equal(t, 1, tk.terminated)
	assert.Error(t, item.target.Dispatch("missing", nil))
}

func TestApp_StartTwice(t *testing.T) {
	app, tk := startedApp(t, ModeMenu)

	assert.ErrorIs(t, app.Start(), ErrAlreadyStarted)
	assert.Len(t, tk.items, 1)
}

func TestApp_StartFailures(t *testing.T) {
	t.Run("popover unsupported", func(t *testing.T) {
		tk := &fakeToolkit{noSurface: true}
		app := New(tk, StaticRows(), DefaultOptions())

		assert.ErrorIs(t, app.Start(), ErrUnsupported)
		assert.Nil(t, app.Indicator())

		// No indicator is shown when the popover cannot be allocated.
		assert.Empty(t, tk.items)
	})

	t.Run("indicator registration", func(t *testing.T) {
		tk := &fakeToolkit{createErr: errFake}
		app := New(tk, StaticRows(), DefaultOptions())

		assert.ErrorIs(t, app.Start(), errFake)
	})

	t.Run("unknown mode", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Mode = Mode(7)
		app := New(&fakeToolkit{}, StaticRows(), opts)

		assert.Error(t, app.Start())
	})
}

// TestApp_Refresh verifies that refreshing installs a newly built tree
// instead of patching the installed one.
func TestApp_Refresh(t *testing.T) {
	app, tk := startedApp(t, ModePopover)

	require.NoError(t, app.Refresh())
	require.Len(t, tk.surface.contents, 2)

	first, second := tk.surface.contents[0], tk.surface.contents[1]
	assert.NotSame(t, first, second)
	assert.Equal(t, first, second)
}

func TestApp_RefreshNotStarted(t *testing.T) {
	app := New(&fakeToolkit{}, StaticRows(), DefaultOptions())

	assert.ErrorIs(t, app.Refresh(), ErrNotStarted)
}

func TestApp_RefreshMenuMode(t *testing.T) {
	app, _ := startedApp(t, ModeMenu)

	assert.NoError(t, app.Refresh())
}

func TestApp_Reload(t *testing.T) {
	app, tk := startedApp(t, ModePopover)

	opts := DefaultOptions()
	opts.Layout.Title = "Posture"
	opts.PreferencesURL = "https://example.com"

	require.NoError(t, app.Reload(opts))
	require.Len(t, tk.surface.contents, 2)
	assert.Equal(t, "Posture", tk.surface.contents[1].Find("header").Text)

	require.NoError(t, app.Dispatcher().Dispatch(HandlerOpenSecurityPrefs, nil))
	assert.Equal(t, []string{"https://example.com"}, tk.opened)
}

func TestApp_RowsFreshPerBuild(t *testing.T) {
	calls := 0
	rows := RowProviderFunc(func() []RowDescriptor {
		calls++
		return []RowDescriptor{{Icon: "a", Label: "A"}}
	})

	tk := &fakeToolkit{}
	app := New(tk, rows, DefaultOptions())
	require.NoError(t, app.Start())
	require.NoError(t, app.Refresh())

	assert.Equal(t, 2, calls)
}
