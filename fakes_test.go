package shieldbar

import "errors"

var errFake = errors.New("fake failure")

type fakeSender struct {
	bounds Rect
}

func (s fakeSender) Bounds() Rect {
	return s.bounds
}

// fakeSurface keeps the visibility flag the way a toolkit does: Dismiss
// flips it without telling anyone.
type fakeSurface struct {
	shown    bool
	anchors  []Anchor
	closes   int
	contents []*View
	showErr  error
}

func (s *fakeSurface) IsShown() bool {
	return s.shown
}

func (s *fakeSurface) Show(anchor Anchor) error {
	if s.showErr != nil {
		return s.showErr
	}

	s.anchors = append(s.anchors, anchor)
	s.shown = true

	return nil
}

func (s *fakeSurface) Close() error {
	s.closes++
	s.shown = false

	return nil
}

func (s *fakeSurface) SetContent(root *View) error {
	s.contents = append(s.contents, root)
	return nil
}

// Dismiss simulates the toolkit closing the popover on an outside click.
func (s *fakeSurface) Dismiss() {
	s.shown = false
}

type fakeItem struct {
	actions []MenuAction
	target  ActionTarget
	click   Clickable
}

func (i *fakeItem) SetMenu(actions []MenuAction, target ActionTarget) error {
	i.actions = actions
	i.target = target

	return nil
}

func (i *fakeItem) SetClickHandler(c Clickable) error {
	i.click = c
	return nil
}

type notification struct {
	title   string
	message string
}

type fakeToolkit struct {
	items         []*fakeItem
	icons         []string
	surface       *fakeSurface
	noSurface     bool
	createErr     error
	notifications []notification
	notifyErr     error
	opened        []string
	terminated    int
	posted        []func()
}

func (tk *fakeToolkit) Create(icon string) (StatusItem, error) {
	if tk.createErr != nil {
		return nil, tk.createErr
	}

	item := &fakeItem{}
	tk.items = append(tk.items, item)
	tk.icons = append(tk.icons, icon)

	return item, nil
}

func (tk *fakeToolkit) Notify(title, message string) error {
	tk.notifications = append(tk.notifications, notification{title, message})
	return tk.notifyErr
}

func (tk *fakeToolkit) NewSurface(Size) (Surface, error) {
	if tk.noSurface {
		return nil, ErrUnsupported
	}

	tk.surface = &fakeSurface{}

	return tk.surface, nil
}

func (tk *fakeToolkit) OpenURL(url string) error {
	tk.opened = append(tk.opened, url)
	return nil
}

func (tk *fakeToolkit) Terminate() {
	tk.terminated++
}

func (tk *fakeToolkit) Post(fn func()) {
	tk.posted = append(tk.posted, fn)
}
