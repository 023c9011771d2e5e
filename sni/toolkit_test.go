package sni

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelepuginivan/shieldbar"
)

// runToolkit runs tk in the background and returns a channel that receives
// the result of Run.
func runToolkit(ctx context.Context, tk *Toolkit, ready func() error) <-chan error {
	result := make(chan error, 1)

	go func() {
		result <- tk.Run(ctx, ready)
	}()

	return result
}

func TestToolkit_PostRunsInOrder(t *testing.T) {
	tk := New(nil)
	result := runToolkit(context.Background(), tk, nil)

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		tk.Post(func() {
			order = append(order, i)
		})
	}
	tk.Post(tk.Terminate)

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Terminate")
	}

	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestToolkit_PostFromLoop(t *testing.T) {
	tk := New(nil)
	result := runToolkit(context.Background(), tk, nil)

	ran := false
	tk.Post(func() {
		tk.Post(func() {
			ran = true
			tk.Terminate()
		})
	})

	select {
	case err := <-result:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}

	assert.True(t, ran)
}

func TestToolkit_TerminateStopsQueue(t *testing.T) {
	tk := New(nil)

	ran := false
	tk.Post(tk.Terminate)
	tk.Post(func() {
		ran = true
	})

	require.NoError(t, tk.Run(context.Background(), nil))
	assert.False(t, ran)

	// Terminate is idempotent.
	tk.Terminate()
}

func TestToolkit_ContextCancel(t *testing.T) {
	tk := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	result := runToolkit(ctx, tk, nil)

	cancel()

	select {
	case err := <-result:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestToolkit_ReadyError(t *testing.T) {
	tk := New(nil)
	errReady := errors.New("ready failed")

	err := tk.Run(context.Background(), func() error {
		return errReady
	})

	assert.ErrorIs(t, err, errReady)
}

func TestToolkit_Disconnected(t *testing.T) {
	tk := New(nil)

	_, err := tk.Create("shield.fill")
	assert.Error(t, err)

	assert.Error(t, tk.Notify("title", "message"))
	assert.Error(t, tk.OpenURL("https://example.com"))
	assert.NoError(t, tk.Close())
}

func TestToolkit_NoSurface(t *testing.T) {
	tk := New(nil)

	surface, err := tk.NewSurface(shieldbar.DefaultSize)
	assert.Nil(t, surface)
	assert.ErrorIs(t, err, shieldbar.ErrUnsupported)

	app := shieldbar.New(tk, shieldbar.StaticRows(), shieldbar.DefaultOptions())
	assert.ErrorIs(t, app.Start(), shieldbar.ErrUnsupported)
}

// TestToolkit_SessionBus registers an item on the session bus and reads its
// properties back through a second connection.
func TestToolkit_SessionBus(t *testing.T) {
	tk, err := Connect()
	if err != nil {
		t.Skipf("session bus not available: %v", err)
	}
	t.Cleanup(func() { tk.Close() })

	opts := shieldbar.DefaultOptions()
	opts.Mode = shieldbar.ModeMenu

	app := shieldbar.New(tk, shieldbar.StaticRows(), opts)
	require.NoError(t, app.Start())

	conn, err := dbus.ConnectSessionBus()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	name := tk.conn.Names()[0]
	obj := conn.Object(name, StatusNotifierItemPath)

	isMenu, err := obj.GetProperty(StatusNotifierItemInterface + ".ItemIsMenu")
	require.NoError(t, err)
	assert.Equal(t, true, isMenu.Value())

	iconName, err := obj.GetProperty(StatusNotifierItemInterface + ".IconName")
	require.NoError(t, err)
	assert.Equal(t, "security-high", iconName.Value())

	var (
		revision uint32
		l        layout
	)
	err = conn.Object(name, MenuPath).Call(MenuInterface+".GetLayout", 0, int32(0), int32(-1), []string{}).Store(&revision, &l)
	require.NoError(t, err)
	assert.Len(t, l.Children, 4)
}
