package enums

import "fmt"

// MediaKind maps to the media_kind enum in Postgres.
type MediaKind string

const (
	MediaKindPressRelease MediaKind = "press_release"
	MediaKindArticle      MediaKind = "article"
	MediaKindVideo        MediaKind = "video"
	MediaKindImage        MediaKind = "image"
)

var validMediaKinds = []MediaKind{
	MediaKindPressRelease,
	MediaKindArticle,
	MediaKindVideo,
	MediaKindImage,
}

// IsValid reports whether the value matches the canonical media_kind enum.
func (m MediaKind) IsValid() bool {
	for _, candidate := range validMediaKinds {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMediaKind converts raw input into MediaKind.
func ParseMediaKind(value string) (MediaKind, error) {
	for _, candidate := range validMediaKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid media kind %q", value)
}
