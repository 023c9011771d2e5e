// Package shieldbar is the toolkit-agnostic core of a persistent menu-bar
// utility. It registers a status indicator in the host desktop shell and, on
// interaction, either shows a drop-down menu of actions or toggles a popover
// with status rows and footer controls.
//
// # Usage
//
// The application consists of an [App] and a [Toolkit] backend:
//   - [App] is the context object created at startup. It owns the
//     [StatusIndicator], the popover [Surface], the [ToggleCoordinator] and
//     the [Dispatcher].
//   - [Toolkit] is implemented by a backend (package sni for D-Bus
//     StatusNotifierItem hosts, package cocoa for macOS) and runs the single
//     UI event loop every handler executes on.
//
// The popover content is produced by [BuildView], a pure function of the
// content size, the rows returned by a [RowProvider] and a [Layout]. The tree
// is rebuilt wholesale whenever the content is refreshed.
package shieldbar
