// Package sni is a toolkit backend for the shieldbar core built on the
// [StatusNotifierItem] specification. It exports a tray item and its menu on
// the D-Bus session bus, so that any StatusNotifierHost (KDE Plasma, waybar,
// GNOME with the AppIndicator extension, ...) can display it.
//
// # Usage
//
// The backend consists of a [Toolkit] and the objects it exports:
//   - [Toolkit] runs the UI event loop and implements shieldbar.Toolkit.
//   - [Item] is the exported org.kde.StatusNotifierItem object.
//   - [Menu] is the exported com.canonical.dbusmenu object of the item.
//   - [Watcher] is an embedded StatusNotifierWatcher, started only when no
//     other watcher is registered on the session bus.
//
// Notifications are sent to org.freedesktop.Notifications and URLs are opened
// through the org.freedesktop.portal.OpenURI desktop portal.
//
// StatusNotifierItem hosts draw their own menus and have no notion of a
// popover, so [Toolkit.NewSurface] always fails with shieldbar.ErrUnsupported.
//
// [StatusNotifierItem]: https://www.freedesktop.org/wiki/Specifications/StatusNotifierItem/
package sni
