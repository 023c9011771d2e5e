package shieldbar

import "errors"

var (
	// ErrNoSurface is returned when a popover transition is requested without
	// a surface.
	ErrNoSurface = errors.New("popover surface is not allocated")

	// ErrNoSender is returned when a popover must be shown but the click
	// carries no control to anchor it to.
	ErrNoSender = errors.New("click has no sender to anchor to")

	// ErrAlreadyAttached is returned when a status indicator already has a
	// menu or a click handler.
	ErrAlreadyAttached = errors.New("status indicator already has an attachment")

	// ErrUnknownHandler is returned when an action identifier has no
	// registered handler.
	ErrUnknownHandler = errors.New("unknown action handler")

	// ErrUnsupported is returned by toolkit backends for primitives they do
	// not provide, such as a popover surface on D-Bus tray hosts.
	ErrUnsupported = errors.New("not supported by toolkit")

	// ErrAlreadyStarted is returned when an App is started twice.
	ErrAlreadyStarted = errors.New("app already started")

	// ErrNotStarted is returned by operations that need a started App.
	ErrNotStarted = errors.New("app not started")
)
