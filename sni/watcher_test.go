package sni

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		service string
		sender  string
		want    string
	}{
		{
			name:    "bus name",
			service: "org.kde.StatusNotifierItem-42-1",
			sender:  ":1.7",
			want:    "org.kde.StatusNotifierItem-42-1/StatusNotifierItem",
		},
		{
			name:    "object path",
			service: "/StatusNotifierItem/2",
			sender:  ":1.7",
			want:    ":1.7/StatusNotifierItem/2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, itemIdentifier(tt.service, tt.sender))
		})
	}
}

func TestSplitItemIdentifier(t *testing.T) {
	name, path := splitItemIdentifier(":1.185/StatusNotifierItem")
	assert.Equal(t, ":1.185", name)
	assert.Equal(t, "/StatusNotifierItem", path)

	name, path = splitItemIdentifier(":1.185")
	assert.Equal(t, ":1.185", name)
	assert.Equal(t, StatusNotifierItemPath, path)
}

func TestWatcher_NameLost(t *testing.T) {
	w := NewWatcher(nil)
	w.items = []string{
		":1.7/StatusNotifierItem",
		"org.kde.StatusNotifierItem-42-1/StatusNotifierItem",
	}
	w.hosts = []string{"org.kde.StatusNotifierHost-9"}

	// conn is nil: nameLost must only emit signals when something changed.
	w.nameLost(":1.99")
	assert.Len(t, w.Items(), 2)
}
