package entity

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

// BackgroundType represents how the dashboard background is rendered.
type BackgroundType string

const (
	BackgroundTypeColor BackgroundType = "color"
	BackgroundTypeImage BackgroundType = "image"
)

// DefaultBackgroundColor is shown until the user chooses a background.
const DefaultBackgroundColor = "#D9E4EC"

// MaxBackgroundImageLength caps inline image payloads.
const MaxBackgroundImageLength = 5 * 1024 * 1024

var hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

var (
	ErrBackgroundTypeInvalid  = errors.New("background type must be color or image")
	ErrBackgroundColorInvalid = errors.New("background color must be a hex color like #D9E4EC")
	ErrBackgroundImageInvalid = errors.New("background image must be an http(s) URL or a base64 data URL")
	ErrBackgroundImageTooBig  = errors.New("background image is too large")
)

// PresetBackgroundColors are the colors offered by the dashboard picker.
var PresetBackgroundColors = []string{
	"#D9E4EC",
	"#F0F4F8",
	"#E8F5E9",
	"#FFF3E0",
	"#FCE4EC",
	"#EDE7F6",
	"#E0F7FA",
	"#FFFDE7",
}

// DashboardBackground is the user's background preference.
type DashboardBackground struct {
	Type  BackgroundType `json:"type"`
	Value string         `json:"value"`
}

// DefaultBackground returns the background used when none is stored.
func DefaultBackground() DashboardBackground {
	return DashboardBackground{Type: BackgroundTypeColor, Value: DefaultBackgroundColor}
}

// Validate checks the value against its type.
func (b DashboardBackground) Validate() error {
	switch b.Type {
	case BackgroundTypeColor:
		if !hexColorPattern.MatchString(b.Value) {
			return ErrBackgroundColorInvalid
		}
		return nil
	case BackgroundTypeImage:
		if len(b.Value) > MaxBackgroundImageLength {
			return ErrBackgroundImageTooBig
		}
		if !isImageReference(b.Value) {
			return ErrBackgroundImageInvalid
		}
		return nil
	default:
		return ErrBackgroundTypeInvalid
	}
}

func isImageReference(v string) bool {
	if strings.HasPrefix(v, "data:image/") {
		return strings.Contains(v, ";base64,") && !strings.HasSuffix(v, ";base64,")
	}
	u, err := url.Parse(v)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
