package catalog

import "strings"

// ImageResolver turns catalog image references into absolute URLs. The
// catalog stores media paths relative to its own origin, already-absolute
// URLs pass through, and missing references fall back to a placeholder.
type ImageResolver struct {
	baseURL     string
	placeholder string
}

// NewImageResolver creates a resolver. baseURL is the media origin prepended
// to relative paths; placeholder is returned for empty references.
func NewImageResolver(baseURL, placeholder string) *ImageResolver {
	return &ImageResolver{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		placeholder: placeholder,
	}
}

// Resolve maps a raw image reference to a usable URL.
func (r *ImageResolver) Resolve(path string) string {
	switch {
	case path == "":
		return r.placeholder
	case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
		return path
	case strings.HasPrefix(path, "/"):
		return r.baseURL + path
	default:
		return r.baseURL + "/" + path
	}
}
