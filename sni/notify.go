package sni

import (
	"fmt"
	"os/exec"

	"github.com/godbus/dbus/v5"
)

const (
	NotificationsInterface = "org.freedesktop.Notifications"
	NotificationsPath      = "/org/freedesktop/Notifications"

	PortalName             = "org.freedesktop.portal.Desktop"
	PortalPath             = "/org/freedesktop/portal/desktop"
	OpenURIInterface       = "org.freedesktop.portal.OpenURI"
	notificationExpiration = int32(-1)
)

// Notifier sends desktop notifications through [org.freedesktop.Notifications].
//
// [org.freedesktop.Notifications]: https://specifications.freedesktop.org/notification-spec/latest/
type Notifier struct {
	obj     dbus.BusObject
	appName string
	icon    string
}

// NewNotifier returns a [Notifier] that sends notifications on behalf of
// appName, with the freedesktop icon named icon.
func NewNotifier(conn *dbus.Conn, appName, icon string) *Notifier {
	return &Notifier{
		obj:     conn.Object(NotificationsInterface, NotificationsPath),
		appName: appName,
		icon:    icon,
	}
}

// Notify implements shieldbar.Notifier. The notification is sent without
// waiting for the reply of the notification server.
func (n *Notifier) Notify(title, message string) error {
	call := n.obj.Go(
		NotificationsInterface+".Notify",
		dbus.FlagNoReplyExpected,
		nil,
		n.appName,
		uint32(0),
		n.icon,
		title,
		message,
		[]string{},
		map[string]dbus.Variant{},
		notificationExpiration,
	)

	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}

	return nil
}

// openURI asks the desktop portal to open uri with its default handler. If
// the portal is not available, xdg-open is used.
func openURI(conn *dbus.Conn, uri string) error {
	call := conn.Object(PortalName, PortalPath).Call(
		OpenURIInterface+".OpenURI",
		0,
		"",
		uri,
		map[string]dbus.Variant{},
	)
	if call.Err == nil {
		return nil
	}

	if err := exec.Command("xdg-open", uri).Start(); err != nil {
		return fmt.Errorf("open %s: portal: %v: xdg-open: %w", uri, call.Err, err)
	}

	return nil
}
