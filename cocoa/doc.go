// Package cocoa is the macOS toolkit backend of shieldbar, built on AppKit
// through darwinkit.
//
// The status indicator is an NSStatusItem in the system status bar. In menu
// mode it carries an NSMenu; in popover mode clicks on its button toggle an
// NSPopover whose content is rendered from a shieldbar.View tree.
//
// All AppKit objects are created and used on the main thread. Callbacks from
// other goroutines go through [Toolkit.Post], which dispatches to the main
// queue.
//
// The package only builds on darwin.
package cocoa
