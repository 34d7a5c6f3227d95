package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageResolver_EmptyUsesPlaceholder(t *testing.T) {
	r := NewImageResolver("https://cms.example.com", "/media/placeholder.png")
	assert.Equal(t, "/media/placeholder.png", r.Resolve(""))
}

func TestImageResolver_AbsolutePassesThrough(t *testing.T) {
	r := NewImageResolver("https://cms.example.com", "/media/placeholder.png")
	assert.Equal(t, "https://cdn.example.com/a.jpg", r.Resolve("https://cdn.example.com/a.jpg"))
	assert.Equal(t, "http://cdn.example.com/a.jpg", r.Resolve("http://cdn.example.com/a.jpg"))
}

func TestImageResolver_RelativeJoinsBase(t *testing.T) {
	r := NewImageResolver("https://cms.example.com", "/media/placeholder.png")
	assert.Equal(t, "https://cms.example.com/media/a.jpg", r.Resolve("/media/a.jpg"))
	assert.Equal(t, "https://cms.example.com/media/a.jpg", r.Resolve("media/a.jpg"))
}

func TestImageResolver_TrailingSlashBase(t *testing.T) {
	r := NewImageResolver("https://cms.example.com/", "/media/placeholder.png")
	assert.Equal(t, "https://cms.example.com/media/a.jpg", r.Resolve("/media/a.jpg"))
}
