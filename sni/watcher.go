package sni

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
)

const (
	StatusNotifierWatcherInterface = "org.kde.StatusNotifierWatcher"
	StatusNotifierWatcherPath      = "/StatusNotifierWatcher"
)

// Watcher is a minimal [StatusNotifierWatcher]. It is only started when the
// session has no watcher of its own, which happens with hosts that expect the
// first item to provide one.
//
// [StatusNotifierWatcher]: https://www.freedesktop.org/wiki/Specifications/StatusNotifierItem/StatusNotifierWatcher/
type Watcher struct {
	conn    *dbus.Conn
	signals chan *dbus.Signal

	mu     sync.Mutex
	closed bool
	props  *prop.Properties
	hosts  []string
	items  []string
}

// NewWatcher returns a new [Watcher]. Call [Watcher.Listen] to export it.
func NewWatcher(conn *dbus.Conn) *Watcher {
	return &Watcher{
		conn:    conn,
		signals: make(chan *dbus.Signal, 64),
		hosts:   []string{},
		items:   []string{},
	}
}

// Listen requests the watcher name, exports the watcher object and starts
// tracking the owners of registered names.
func (w *Watcher) Listen() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("listen: watcher is closed")
	}

	reply, err := w.conn.RequestName(StatusNotifierWatcherInterface, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("listen: failed to request name %s: %w", StatusNotifierWatcherInterface, err)
	}

	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("listen: name %s already taken", StatusNotifierWatcherInterface)
	}

	obj := watcherObject{w}

	if err := w.conn.Export(obj, StatusNotifierWatcherPath, StatusNotifierWatcherInterface); err != nil {
		return fmt.Errorf("listen: failed to export %s: %w", StatusNotifierWatcherInterface, err)
	}

	props, err := prop.Export(w.conn, StatusNotifierWatcherPath, prop.Map{
		StatusNotifierWatcherInterface: {
			"RegisteredStatusNotifierItems":  {Value: slices.Clone(w.items), Writable: false, Emit: prop.EmitTrue},
			"IsStatusNotifierHostRegistered": {Value: len(w.hosts) > 0, Writable: false, Emit: prop.EmitTrue},
			"ProtocolVersion":                {Value: int32(0), Writable: false, Emit: prop.EmitConst},
		},
	})
	if err != nil {
		return fmt.Errorf("listen: failed to export properties: %w", err)
	}
	w.props = props

	node := &introspect.Node{
		Name: StatusNotifierWatcherPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       StatusNotifierWatcherInterface,
				Methods:    introspect.Methods(obj),
				Properties: props.Introspection(StatusNotifierWatcherInterface),
				Signals: []introspect.Signal{
					{Name: "StatusNotifierItemRegistered", Args: []introspect.Arg{{Name: "service", Type: "s"}}},
					{Name: "StatusNotifierItemUnregistered", Args: []introspect.Arg{{Name: "service", Type: "s"}}},
					{Name: "StatusNotifierHostRegistered"},
					{Name: "StatusNotifierHostUnregistered"},
				},
			},
		},
	}

	if err := w.conn.Export(introspect.NewIntrospectable(node), StatusNotifierWatcherPath, "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("listen: failed to export introspection: %w", err)
	}

	if err := w.conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchSender("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	); err != nil {
		return fmt.Errorf("listen: failed to subscribe to NameOwnerChanged: %w", err)
	}

	w.conn.Signal(w.signals)
	go w.processSignals()

	return nil
}

// Close releases the watcher name and stops tracking name owners.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	w.conn.RemoveMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchSender("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	)
	w.conn.RemoveSignal(w.signals)
	close(w.signals)

	w.conn.Export(nil, StatusNotifierWatcherPath, StatusNotifierWatcherInterface)

	if _, err := w.conn.ReleaseName(StatusNotifierWatcherInterface); err != nil {
		return fmt.Errorf("close: failed to release name %s: %w", StatusNotifierWatcherInterface, err)
	}

	return nil
}

// Items returns the registered items, as "<bus name><object path>".
func (w *Watcher) Items() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return slices.Clone(w.items)
}

func (w *Watcher) registerItem(service string, sender dbus.Sender) {
	w.mu.Lock()
	defer w.mu.Unlock()

	identifier := itemIdentifier(service, string(sender))

	if slices.Contains(w.items, identifier) {
		return
	}

	w.items = append(w.items, identifier)
	w.updateProperties()
	w.conn.Emit(StatusNotifierWatcherPath, StatusNotifierWatcherInterface+".StatusNotifierItemRegistered", identifier)
}

func (w *Watcher) registerHost(service string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if slices.Contains(w.hosts, service) {
		return
	}

	w.hosts = append(w.hosts, service)
	w.updateProperties()
	w.conn.Emit(StatusNotifierWatcherPath, StatusNotifierWatcherInterface+".StatusNotifierHostRegistered")
}

// nameLost drops the items and hosts owned by name.
func (w *Watcher) nameLost(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var removed []string

	w.items = slices.DeleteFunc(w.items, func(identifier string) bool {
		owner, _ := splitItemIdentifier(identifier)
		if owner == name {
			removed = append(removed, identifier)
			return true
		}
		return false
	})

	hostCount := len(w.hosts)
	w.hosts = slices.DeleteFunc(w.hosts, func(host string) bool {
		return host == name
	})
	hostLost := len(w.hosts) != hostCount

	if len(removed) == 0 && !hostLost {
		return
	}

	w.updateProperties()

	for _, identifier := range removed {
		w.conn.Emit(StatusNotifierWatcherPath, StatusNotifierWatcherInterface+".StatusNotifierItemUnregistered", identifier)
	}

	if hostLost {
		w.conn.Emit(StatusNotifierWatcherPath, StatusNotifierWatcherInterface+".StatusNotifierHostUnregistered")
	}
}

// updateProperties publishes the registered items and hosts. w.mu must be
// held.
func (w *Watcher) updateProperties() {
	if w.props == nil {
		return
	}

	w.props.SetMust(StatusNotifierWatcherInterface, "RegisteredStatusNotifierItems", slices.Clone(w.items))
	w.props.SetMust(StatusNotifierWatcherInterface, "IsStatusNotifierHostRegistered", len(w.hosts) > 0)
}

func (w *Watcher) processSignals() {
	for signal := range w.signals {
		if signal.Name != "org.freedesktop.DBus.NameOwnerChanged" {
			continue
		}

		if len(signal.Body) < 3 {
			continue
		}

		name, ok := signal.Body[0].(string)
		if !ok {
			continue
		}

		newOwner, ok := signal.Body[2].(string)
		if !ok {
			continue
		}

		// The owner of a name that has disappeared is empty.
		if newOwner == "" {
			w.nameLost(name)
		}
	}
}

// watcherObject holds the methods exported on D-Bus.
type watcherObject struct {
	w *Watcher
}

// RegisterStatusNotifierItem registers an item. service is either a bus name,
// in which case the item lives at /StatusNotifierItem, or an object path on
// the connection of the sender.
func (o watcherObject) RegisterStatusNotifierItem(service string, sender dbus.Sender) *dbus.Error {
	if service == "" {
		return dbus.MakeFailedError(fmt.Errorf("register item: empty service"))
	}

	o.w.registerItem(service, sender)
	return nil
}

func (o watcherObject) RegisterStatusNotifierHost(service string) *dbus.Error {
	if service == "" {
		return dbus.MakeFailedError(fmt.Errorf("register host: empty service"))
	}

	o.w.registerHost(service)
	return nil
}

// itemIdentifier returns the identifier of a registered item, in the
// "<bus name><object path>" form, e.g. ":1.185/StatusNotifierItem".
func itemIdentifier(service, sender string) string {
	if strings.HasPrefix(service, "/") {
		return sender + service
	}

	return service + StatusNotifierItemPath
}

// splitItemIdentifier returns the bus name and the object path of an item
// identifier.
func splitItemIdentifier(identifier string) (string, string) {
	name, path, ok := strings.Cut(identifier, "/")
	if !ok {
		return name, StatusNotifierItemPath
	}

	return name, "/" + path
}
