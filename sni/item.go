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
	StatusNotifierItemInterface = "org.kde.StatusNotifierItem"
	StatusNotifierItemPath      = "/StatusNotifierItem"
)

// noMenuPath is the value of the Menu property of items without a menu.
const noMenuPath = dbus.ObjectPath("/")

type ItemCategory string

// StatusNotifierItem categories.
const (
	// The item describes the status of a generic application, for instance the
	// current state of a media player.
	ItemCategoryApplicationStatus ItemCategory = "ApplicationStatus"

	// The item describes the status of communication oriented applications, like
	// an instant messenger or an email client.
	ItemCategoryCommunications ItemCategory = "Communications"

	// The item describes services of the system not seen as a stand alone
	// application by the user, such as an indicator for the activity of a disk
	// indexing service.
	ItemCategorySystemServices ItemCategory = "SystemServices"

	// The item describes the state and control of a particular hardware, such as
	// an indicator of the battery charge or sound card volume control.
	ItemCategoryHardware ItemCategory = "Hardware"
)

type ItemStatus string

// StatusNotifierItem statuses.
const (
	// The item doesn't convey important information to the user, it can be
	// considered an "idle" status and is likely that visualizations will choose
	// to hide it.
	ItemStatusPassive ItemStatus = "Passive"

	// The item is active, is more important that the item will be shown in some
	// way to the user.
	ItemStatusActive ItemStatus = "Active"

	// The item carries really important information for the user.
	// Visualizations should emphasize in some way the items with NeedsAttention
	// status.
	ItemStatusNeedsAttention ItemStatus = "NeedsAttention"
)

// tooltip is the D-Bus representation of the ToolTip property, (sa(iiay)ss).
type tooltip struct {
	IconName    string
	IconPixmap  []Icon
	Title       string
	Description string
}

// pointSender is the sender of activations. Hosts only report the position of
// the pointer, so its bounds have no size.
type pointSender struct {
	x, y int32
}

func (s pointSender) Bounds() shieldbar.Rect {
	return shieldbar.NewRect(float64(s.x), float64(s.y), 0, 0)
}

// Item is a system tray item exported on D-Bus. It implements
// [StatusNotifierItem] and shieldbar.StatusItem.
//
// Item fields describe the exported properties. They must be set before
// [Item.Export] is called.
//
// [StatusNotifierItem]: https://www.freedesktop.org/wiki/Specifications/StatusNotifierItem/StatusNotifierItem/
type Item struct {
	conn  *dbus.Conn
	post  func(func())
	path  dbus.ObjectPath
	props *prop.Properties
	menu  *Menu

	mu      sync.Mutex
	isMenu  bool
	onClick shieldbar.Clickable

	// Unique identifier for the application, such as the application name.
	ID string

	// Name that describes the application, can be more descriptive than ID.
	Title string

	// Extra information that can be visualized by a tooltip.
	Tooltip string

	// Category of the item.
	Category ItemCategory

	// Status of the item or of the associated application.
	Status ItemStatus

	// [Freedesktop-compliant] icon name. Visualizations prefer it over
	// IconPixmap if both are available.
	//
	// [Freedesktop-compliant]: https://specifications.freedesktop.org/icon-naming-spec/latest/
	IconName string

	// Binary representations of the icon, one per size.
	IconPixmap []Icon
}

// NewItem returns an [Item] exported at path, with its menu at menuPath.
// post schedules functions on the UI thread; clicks and menu selections are
// delivered through it.
func NewItem(conn *dbus.Conn, path, menuPath dbus.ObjectPath, post func(func())) *Item {
	return &Item{
		conn:     conn,
		post:     post,
		path:     path,
		menu:     NewMenu(conn, menuPath, post),
		Category: ItemCategoryApplicationStatus,
		Status:   ItemStatusActive,
	}
}

// Path returns the object path of the item.
func (item *Item) Path() dbus.ObjectPath {
	return item.path
}

// Menu returns the menu of the item.
func (item *Item) Menu() *Menu {
	return item.menu
}

// Export exports the item, its properties, its menu and introspection data.
func (item *Item) Export() error {
	obj := itemObject{item}

	if err := item.conn.Export(obj, item.path, StatusNotifierItemInterface); err != nil {
		return fmt.Errorf("export item: %w", err)
	}

	props, err := prop.Export(item.conn, item.path, prop.Map{
		StatusNotifierItemInterface: item.propertyMap(),
	})
	if err != nil {
		return fmt.Errorf("export item properties: %w", err)
	}

	item.mu.Lock()
	item.props = props
	item.mu.Unlock()

	node := &introspect.Node{
		Name: string(item.path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       StatusNotifierItemInterface,
				Methods:    introspect.Methods(obj),
				Properties: props.Introspection(StatusNotifierItemInterface),
				Signals: []introspect.Signal{
					{Name: "NewTitle"},
					{Name: "NewIcon"},
					{Name: "NewToolTip"},
					{Name: "NewStatus", Args: []introspect.Arg{{Name: "status", Type: "s"}}},
				},
			},
		},
	}

	if err := item.conn.Export(introspect.NewIntrospectable(node), item.path, "org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("export item introspection: %w", err)
	}

	if err := item.menu.Export(); err != nil {
		return err
	}

	return nil
}

// Close unexports the item and its menu.
func (item *Item) Close() {
	if item.conn == nil {
		return
	}

	item.conn.Export(nil, item.path, StatusNotifierItemInterface)
	item.conn.Export(nil, item.path, "org.freedesktop.DBus.Properties")
	item.conn.Export(nil, item.path, "org.freedesktop.DBus.Introspectable")
	item.menu.Close()
}

// SetMenu implements shieldbar.StatusItem. Hosts show the menu on every click
// on the item.
func (item *Item) SetMenu(actions []shieldbar.MenuAction, target shieldbar.ActionTarget) error {
	item.menu.SetActions(actions, target)

	item.mu.Lock()
	item.isMenu = true
	item.onClick = nil
	item.mu.Unlock()

	item.setProperty("ItemIsMenu", true)
	item.setProperty("Menu", item.menu.Path())

	return nil
}

// SetClickHandler implements shieldbar.StatusItem. Activations of the item
// call c.OnClick on the UI thread.
func (item *Item) SetClickHandler(c shieldbar.Clickable) error {
	item.mu.Lock()
	item.isMenu = false
	item.onClick = c
	item.mu.Unlock()

	item.setProperty("ItemIsMenu", false)
	item.setProperty("Menu", noMenuPath)

	return nil
}

// IsMenu reports whether the item only supports a menu.
func (item *Item) IsMenu() bool {
	item.mu.Lock()
	defer item.mu.Unlock()

	return item.isMenu
}

// activate delivers a click at (x, y) to the click handler.
func (item *Item) activate(x, y int32) {
	item.mu.Lock()
	c := item.onClick
	item.mu.Unlock()

	if c == nil {
		return
	}

	item.post(func() {
		c.OnClick(pointSender{x: x, y: y})
	})
}

// setProperty updates an exported property and emits PropertiesChanged. It
// is a no-op before the item is exported.
func (item *Item) setProperty(name string, value any) {
	item.mu.Lock()
	props := item.props
	item.mu.Unlock()

	if props == nil {
		return
	}

	props.SetMust(StatusNotifierItemInterface, name, value)
}

// propertyMap returns the exported properties of the item.
func (item *Item) propertyMap() map[string]*prop.Prop {
	item.mu.Lock()
	defer item.mu.Unlock()

	menuPath := noMenuPath
	if item.isMenu {
		menuPath = item.menu.Path()
	}

	pixmap := item.IconPixmap
	if pixmap == nil {
		pixmap = []Icon{}
	}

	constant := func(value any) *prop.Prop {
		return &prop.Prop{Value: value, Writable: false, Emit: prop.EmitConst}
	}

	variable := func(value any) *prop.Prop {
		return &prop.Prop{Value: value, Writable: false, Emit: prop.EmitTrue}
	}

	return map[string]*prop.Prop{
		"Category":          constant(string(item.Category)),
		"Id":                constant(item.ID),
		"Title":             variable(item.Title),
		"Status":            variable(string(item.Status)),
		"WindowId":          constant(uint32(0)),
		"IconName":          variable(item.IconName),
		"IconPixmap":        variable(pixmap),
		"OverlayIconName":   constant(""),
		"AttentionIconName": constant(""),
		"ToolTip":           variable(tooltip{IconPixmap: []Icon{}, Title: item.Tooltip}),
		"ItemIsMenu":        variable(item.isMenu),
		"Menu":              variable(menuPath),
	}
}

// itemObject holds the methods exported on D-Bus.
type itemObject struct {
	item *Item
}

// Activate is called by the host on a primary click at (x, y).
func (o itemObject) Activate(x, y int32) *dbus.Error {
	o.item.activate(x, y)
	return nil
}

// SecondaryActivate is called on a middle click. It behaves like Activate.
func (o itemObject) SecondaryActivate(x, y int32) *dbus.Error {
	o.item.activate(x, y)
	return nil
}

// ContextMenu is called by hosts that do not read the Menu property. The menu
// is only available through com.canonical.dbusmenu.
func (o itemObject) ContextMenu(x, y int32) *dbus.Error {
	return nil
}

func (o itemObject) Scroll(delta int32, orientation string) *dbus.Error {
	return nil
}
