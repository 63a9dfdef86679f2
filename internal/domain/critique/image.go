package critique

import "strings"

const defaultMediaType = "image/png"

// Image is a screenshot received as a data URL.
type Image struct {
	DataURL   string
	MediaType string
	Data      string // base64 payload
}

// ParseDataURL splits "data:<media-type>;base64,<payload>". A string without
// a comma is treated as a bare base64 payload.
func ParseDataURL(s string) Image {
	img := Image{DataURL: s, MediaType: defaultMediaType, Data: s}

	if _, payload, ok := strings.Cut(s, ","); ok {
		if i := strings.IndexByte(payload, ','); i >= 0 {
			payload = payload[:i]
		}
		if payload != "" {
			img.Data = payload
		}
	}

	head, _, _ := strings.Cut(s, ";")
	if _, mt, ok := strings.Cut(head, ":"); ok {
		mt, _, _ = strings.Cut(mt, ":")
		if mt != "" {
			img.MediaType = mt
		}
	}
	return img
}

// IsDataURL reports whether s carries an inline image rather than a remote URL.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// Extension maps the media type to a file extension for object keys.
func (i Image) Extension() string {
	switch strings.ToLower(i.MediaType) {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "png"
	}
}
