package sni

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"

	"github.com/shelepuginivan/shieldbar"
)

const (
	MenuInterface = "com.canonical.dbusmenu"
	MenuPath      = "/MenuBar"

	// menuVersion is the version of the com.canonical.dbusmenu interface.
	menuVersion = uint32(3)
)

// menuEvent is an element of the EventGroup argument, (isvu).
type menuEvent struct {
	ID        int32
	EventID   string
	Data      dbus.Variant
	Timestamp uint32
}

// menuSender is the sender of menu selections. Entries of a D-Bus menu have
// no geometry known to the application.
type menuSender struct {
	id int32
}

func (menuSender) Bounds() shieldbar.Rect {
	return shieldbar.Rect{}
}

// Menu is the menu of [Item]. It implements the com.canonical.dbusmenu
// interface.
//
// The layout is read by D-Bus method calls on the connection goroutines and
// replaced on the UI thread, so it is guarded by a mutex. Selections are
// posted to the UI thread.
type Menu struct {
	conn *dbus.Conn
	path dbus.ObjectPath
	post func(func())

	mu       sync.RWMutex
	revision uint32
	root     *LayoutNode
	handlers map[int32]shieldbar.HandlerID
	target   shieldbar.ActionTarget
}

// NewMenu returns an empty [Menu] exported at path once [Menu.Export] is
// called. post schedules functions on the UI thread.
func NewMenu(conn *dbus.Conn, path dbus.ObjectPath, post func(func())) *Menu {
	root, handlers := NewLayout(nil)

	return &Menu{
		conn:     conn,
		path:     path,
		post:     post,
		root:     root,
		handlers: handlers,
	}
}

// Path returns the object path of the menu.
func (m *Menu) Path() dbus.ObjectPath {
	return m.path
}

// Export exports the menu object, its properties and introspection data.
func (m *Menu) Export() error {
	obj := menuObject{m}

	if err := m.conn.Export(obj, m.path, MenuInterface); err != nil {
		return fmt.Errorf("export menu: %w", err)
	}

	props, err := prop.Export(m.conn, m.path, prop.Map{
		MenuInterface: {
			"Version":       {Value: menuVersion, Writable: false, Emit: prop.EmitTrue},
			"TextDirection": {Value: "ltr", Writable: false, Emit: prop.EmitTrue},
			"Status":        {Value: "normal", Writable: false, Emit: prop.EmitTrue},
			"IconThemePath": {Value: []string{}, Writable: false, Emit: prop.EmitTrue},
		},
	})
	if err != nil {
		return fmt.Errorf("export menu properties: %w", err)
	}

	node := &introspect.Node{
		Name: string(m.path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       MenuInterface,
				Methods:    introspect.Methods(obj),
				Properties: props.Introspection(MenuInterface),
				Signals: []introspect.Signal{
					{
						Name: "LayoutUpdated",
						Args: []introspect.Arg{
							{Name: "revision", Type: "u"},
							{Name: "parent", Type: "i"},
						},
					},
				},
			},
		},
	}

	if err := m.conn.Export(introspect.NewIntrospectable(node), m.path, "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("export menu introspection: %w", err)
	}

	return nil
}

// SetActions replaces the menu entries. Selecting an entry dispatches its
// handler to target on the UI thread.
func (m *Menu) SetActions(actions []shieldbar.MenuAction, target shieldbar.ActionTarget) {
	root, handlers := NewLayout(actions)

	m.mu.Lock()
	m.root = root
	m.handlers = handlers
	m.target = target
	m.revision++
	revision := m.revision
	m.mu.Unlock()

	m.emitLayoutUpdated(revision)
}

// Revision returns the revision of the current layout.
func (m *Menu) Revision() uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.revision
}

// Close unexports the menu.
func (m *Menu) Close() {
	if m.conn == nil {
		return
	}

	m.conn.Export(nil, m.path, MenuInterface)
	m.conn.Export(nil, m.path, "org.freedesktop.DBus.Properties")
	m.conn.Export(nil, m.path, "org.freedesktop.DBus.Introspectable")
}

// emitLayoutUpdated emits the com.canonical.dbusmenu.LayoutUpdated signal for
// the root node.
func (m *Menu) emitLayoutUpdated(revision uint32) {
	if m.conn == nil {
		return
	}

	m.conn.Emit(m.path, MenuInterface+".LayoutUpdated", revision, int32(0))
}

// clicked dispatches the handler of the entry with the given ID.
func (m *Menu) clicked(id int32) error {
	m.mu.RLock()
	handler, ok := m.handlers[id]
	target := m.target
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("menu item %d has no handler", id)
	}

	if target == nil {
		return nil
	}

	m.post(func() {
		target.Dispatch(handler, menuSender{id: id})
	})

	return nil
}

// menuObject holds the methods exported on D-Bus, keeping them apart from the
// Go API of [Menu].
type menuObject struct {
	m *Menu
}

// GetLayout returns the layout below parentID.
func (o menuObject) GetLayout(parentID int32, recursionDepth int32, propertyNames []string) (uint32, layout, *dbus.Error) {
	o.m.mu.RLock()
	defer o.m.mu.RUnlock()

	node := o.m.root.Find(parentID)
	if node == nil {
		return 0, layout{}, dbus.MakeFailedError(fmt.Errorf("layout: unknown node %d", parentID))
	}

	return o.m.revision, node.encode(recursionDepth, propertyNames), nil
}

// GetGroupProperties returns properties of the nodes with the given IDs, or
// of all nodes if ids is empty.
func (o menuObject) GetGroupProperties(ids []int32, propertyNames []string) ([]groupProperties, *dbus.Error) {
	o.m.mu.RLock()
	defer o.m.mu.RUnlock()

	result := make([]groupProperties, 0, len(ids))

	if len(ids) == 0 {
		o.m.root.Walk(func(node *LayoutNode) {
			result = append(result, groupProperties{ID: node.ID, Properties: node.properties(propertyNames)})
		})
		return result, nil
	}

	for _, id := range ids {
		node := o.m.root.Find(id)
		if node == nil {
			continue
		}
		result = append(result, groupProperties{ID: id, Properties: node.properties(propertyNames)})
	}

	return result, nil
}

// GetProperty returns a single property of a node.
func (o menuObject) GetProperty(id int32, name string) (dbus.Variant, *dbus.Error) {
	o.m.mu.RLock()
	defer o.m.mu.RUnlock()

	node := o.m.root.Find(id)
	if node == nil {
		return dbus.Variant{}, dbus.MakeFailedError(fmt.Errorf("property: unknown node %d", id))
	}

	value, ok := node.Properties[name]
	if !ok {
		return dbus.Variant{}, dbus.MakeFailedError(fmt.Errorf("property: node %d has no property %s", id, name))
	}

	return dbus.MakeVariant(value), nil
}

// Event handles an event sent by the host. Only "clicked" is acted upon.
func (o menuObject) Event(id int32, eventID string, data dbus.Variant, timestamp uint32) *dbus.Error {
	if eventID != "clicked" {
		return nil
	}

	if err := o.m.clicked(id); err != nil {
		return dbus.MakeFailedError(err)
	}

	return nil
}

// EventGroup handles several events at once and returns the IDs that were
// not found.
func (o menuObject) EventGroup(events []menuEvent) ([]int32, *dbus.Error) {
	notFound := make([]int32, 0)

	for _, event := range events {
		o.m.mu.RLock()
		node := o.m.root.Find(event.ID)
		o.m.mu.RUnlock()

		if node == nil {
			notFound = append(notFound, event.ID)
			continue
		}

		if dbusErr := o.Event(event.ID, event.EventID, event.Data, event.Timestamp); dbusErr != nil {
			notFound = append(notFound, event.ID)
		}
	}

	return notFound, nil
}

// AboutToShow reports whether the layout of id must be refreshed before it is
// shown. The layout is always current.
func (o menuObject) AboutToShow(id int32) (bool, *dbus.Error) {
	return false, nil
}

// AboutToShowGroup is the group variant of AboutToShow.
func (o menuObject) AboutToShowGroup(ids []int32) ([]int32, []int32, *dbus.Error) {
	return []int32{}, []int32{}, nil
}
