package sni

import (
	"github.com/godbus/dbus/v5"

	"github.com/shelepuginivan/shieldbar"
)

// LayoutNode is a node of a com.canonical.dbusmenu layout.
type LayoutNode struct {
	ID         int32
	Properties map[string]any
	Children   []*LayoutNode
}

// layout is the D-Bus representation of [LayoutNode], (ia{sv}av).
type layout struct {
	ID         int32
	Properties map[string]dbus.Variant
	Children   []dbus.Variant
}

// groupProperties is an element of the GetGroupProperties reply, (ia{sv}).
type groupProperties struct {
	ID         int32
	Properties map[string]dbus.Variant
}

// NewLayout builds the menu layout of actions. The root node has ID 0 and
// entries are numbered from 1 in order. The returned map holds the handler of
// every non-separator entry.
func NewLayout(actions []shieldbar.MenuAction) (*LayoutNode, map[int32]shieldbar.HandlerID) {
	root := &LayoutNode{
		ID: 0,
		Properties: map[string]any{
			"children-display": "submenu",
		},
		Children: make([]*LayoutNode, 0, len(actions)),
	}

	handlers := make(map[int32]shieldbar.HandlerID, len(actions))

	for idx, action := range actions {
		id := int32(idx + 1)

		if action.Separator {
			root.Children = append(root.Children, &LayoutNode{
				ID: id,
				Properties: map[string]any{
					"type":    "separator",
					"visible": true,
				},
			})
			continue
		}

		props := map[string]any{
			"type":    "standard",
			"label":   action.Title,
			"enabled": true,
			"visible": true,
		}

		if action.Icon != "" {
			props["icon-name"] = IconName(action.Icon)
		}

		if action.Key != "" {
			props["shortcut"] = [][]string{{"Control", action.Key}}
		}

		root.Children = append(root.Children, &LayoutNode{ID: id, Properties: props})
		handlers[id] = action.Handler
	}

	return root, handlers
}

// Find returns the node with the given ID in the subtree of n, or nil.
func (n *LayoutNode) Find(id int32) *LayoutNode {
	if n == nil {
		return nil
	}

	if n.ID == id {
		return n
	}

	for _, child := range n.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}

	return nil
}

// Walk calls fn for n and every descendant.
func (n *LayoutNode) Walk(fn func(*LayoutNode)) {
	if n == nil {
		return
	}

	fn(n)

	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// encode converts the subtree of n to its D-Bus representation.
//
// depth limits the recursion: -1 includes all descendants, 0 includes none.
// propertyNames filters the properties; an empty slice includes all of them.
func (n *LayoutNode) encode(depth int32, propertyNames []string) layout {
	l := layout{
		ID:         n.ID,
		Properties: n.properties(propertyNames),
		Children:   make([]dbus.Variant, 0, len(n.Children)),
	}

	if depth == 0 {
		return l
	}

	for _, child := range n.Children {
		l.Children = append(l.Children, dbus.MakeVariant(child.encode(depth-1, propertyNames)))
	}

	return l
}

// properties returns the properties of n listed in names, or all of them if
// names is empty.
func (n *LayoutNode) properties(names []string) map[string]dbus.Variant {
	props := make(map[string]dbus.Variant, len(n.Properties))

	if len(names) == 0 {
		for key, value := range n.Properties {
			props[key] = dbus.MakeVariant(value)
		}
		return props
	}

	for _, key := range names {
		if value, ok := n.Properties[key]; ok {
			props[key] = dbus.MakeVariant(value)
		}
	}

	return props
}
