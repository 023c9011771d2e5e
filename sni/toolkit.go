package sni

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/shelepuginivan/shieldbar"
)

// AppName is the name the toolkit reports to the desktop.
const AppName = "shieldbar"

// Toolkit implements shieldbar.Toolkit on the D-Bus session bus.
//
// The toolkit runs a single UI thread: [Toolkit.Run] executes functions
// scheduled with [Toolkit.Post] in order, one at a time. D-Bus method calls
// arrive on goroutines of the connection and are posted to it.
type Toolkit struct {
	conn     *dbus.Conn
	notifier *Notifier
	pid      int

	queueMu sync.Mutex
	queue   []func()
	wake    chan struct{}

	done          chan struct{}
	terminateOnce sync.Once

	mu      sync.Mutex
	items   []*Item
	watcher *Watcher
}

// Connect connects to the session bus and returns a [Toolkit] on it.
func Connect() (*Toolkit, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect: failed to connect to session bus: %w", err)
	}

	return New(conn), nil
}

// New returns a [Toolkit] on conn. A nil conn is accepted for toolkits that
// only run the loop; registering items then fails.
func New(conn *dbus.Conn) *Toolkit {
	tk := &Toolkit{
		conn: conn,
		pid:  os.Getpid(),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}

	if conn != nil {
		tk.notifier = NewNotifier(conn, AppName, IconName("shield.fill"))
	}

	return tk
}

// Run runs ready on the UI thread, then processes posted functions until ctx
// is done or [Toolkit.Terminate] is called. An error returned by ready stops
// the loop and is returned.
func (tk *Toolkit) Run(ctx context.Context, ready func() error) error {
	if ready != nil {
		if err := ready(); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tk.done:
			return nil
		case <-tk.wake:
			for _, fn := range tk.drain() {
				fn()

				select {
				case <-tk.done:
					return nil
				default:
				}
			}
		}
	}
}

// Post implements shieldbar.Toolkit. Functions posted after the loop has
// stopped never run.
func (tk *Toolkit) Post(fn func()) {
	tk.queueMu.Lock()
	tk.queue = append(tk.queue, fn)
	tk.queueMu.Unlock()

	select {
	case tk.wake <- struct{}{}:
	default:
	}
}

// drain removes and returns the posted functions.
func (tk *Toolkit) drain() []func() {
	tk.queueMu.Lock()
	defer tk.queueMu.Unlock()

	queue := tk.queue
	tk.queue = nil

	return queue
}

// Terminate implements shieldbar.Toolkit. It stops [Toolkit.Run] after the
// current function returns.
func (tk *Toolkit) Terminate() {
	tk.terminateOnce.Do(func() {
		close(tk.done)
	})
}

// Create implements shieldbar.StatusItemHost. It exports a new [Item] under
// its own bus name and registers it with the StatusNotifierWatcher.
//
// icon is either a symbol identifier, mapped with [IconName], or the path to
// a PNG file.
func (tk *Toolkit) Create(icon string) (shieldbar.StatusItem, error) {
	if tk.conn == nil {
		return nil, fmt.Errorf("create item: not connected")
	}

	tk.mu.Lock()
	defer tk.mu.Unlock()

	n := len(tk.items) + 1

	path := dbus.ObjectPath(StatusNotifierItemPath)
	menuPath := dbus.ObjectPath(MenuPath)
	if n > 1 {
		path = dbus.ObjectPath(fmt.Sprintf("%s/%d", StatusNotifierItemPath, n))
		menuPath = dbus.ObjectPath(fmt.Sprintf("%s/%d", MenuPath, n))
	}

	item := NewItem(tk.conn, path, menuPath, tk.Post)
	item.ID = AppName
	item.Title = "Security Status"
	item.Tooltip = "Security Status"
	item.Category = ItemCategorySystemServices

	if isIconFile(icon) {
		pixmap, err := LoadIcon(icon)
		if err != nil {
			return nil, fmt.Errorf("create item: %w", err)
		}
		item.IconPixmap = []Icon{*pixmap}
	} else {
		item.IconName = IconName(icon)
	}

	if err := item.Export(); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	name := fmt.Sprintf("org.kde.StatusNotifierItem-%d-%d", tk.pid, n)

	reply, err := tk.conn.RequestName(name, dbus.NameFlagDoNotQueue)
	if err != nil {
		item.Close()
		return nil, fmt.Errorf("create item: failed to request name %s: %w", name, err)
	}

	if reply != dbus.RequestNameReplyPrimaryOwner {
		item.Close()
		return nil, fmt.Errorf("create item: name %s already taken", name)
	}

	if err := tk.ensureWatcher(); err != nil {
		item.Close()
		return nil, fmt.Errorf("create item: %w", err)
	}

	// Items at the default path are registered by bus name, others by path.
	service := name
	if n > 1 {
		service = string(path)
	}

	call := tk.conn.Object(StatusNotifierWatcherInterface, StatusNotifierWatcherPath).Call(
		StatusNotifierWatcherInterface+".RegisterStatusNotifierItem",
		0,
		service,
	)
	if call.Err != nil {
		item.Close()
		return nil, fmt.Errorf("create item: failed to register item: %w", call.Err)
	}

	tk.items = append(tk.items, item)

	return item, nil
}

// ensureWatcher starts an embedded [Watcher] if no StatusNotifierWatcher is
// registered on the bus. tk.mu must be held.
func (tk *Toolkit) ensureWatcher() error {
	if tk.watcher != nil {
		return nil
	}

	var hasOwner bool

	err := tk.conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, StatusNotifierWatcherInterface).Store(&hasOwner)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", StatusNotifierWatcherInterface, err)
	}

	if hasOwner {
		return nil
	}

	log.Printf("sni: no %s on the session bus, starting one", StatusNotifierWatcherInterface)

	watcher := NewWatcher(tk.conn)
	if err := watcher.Listen(); err != nil {
		return err
	}

	tk.watcher = watcher

	return nil
}

// NewSurface implements shieldbar.Toolkit. StatusNotifierItem hosts cannot
// show popovers.
func (tk *Toolkit) NewSurface(shieldbar.Size) (shieldbar.Surface, error) {
	return nil, shieldbar.ErrUnsupported
}

// Notify implements shieldbar.Notifier.
func (tk *Toolkit) Notify(title, message string) error {
	if tk.notifier == nil {
		return fmt.Errorf("notify: not connected")
	}

	return tk.notifier.Notify(title, message)
}

// OpenURL implements shieldbar.Toolkit.
func (tk *Toolkit) OpenURL(url string) error {
	if tk.conn == nil {
		return fmt.Errorf("open %s: not connected", url)
	}

	return openURI(tk.conn, url)
}

// Close unexports the items, stops the embedded watcher and closes the
// connection.
func (tk *Toolkit) Close() error {
	tk.mu.Lock()
	defer tk.mu.Unlock()

	for _, item := range tk.items {
		item.Close()
	}
	tk.items = nil

	if tk.watcher != nil {
		if err := tk.watcher.Close(); err != nil {
			log.Printf("sni: %v", err)
		}
		tk.watcher = nil
	}

	if tk.conn == nil {
		return nil
	}

	return tk.conn.Close()
}
