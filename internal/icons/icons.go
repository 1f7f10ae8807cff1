// Package icons holds the glyphs used to mark playlist rows.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Playing string
	Item    string // prefix for named rows
}

var (
	nerdIcons = Icons{
		Playing: "\uf04b",  // nf-fa-play
		Item:    "\uf03d ", // nf-fa-video_camera
	}

	unicodeIcons = Icons{
		Playing: "▶",
	}

	noneIcons = Icons{
		Playing: ">",
	}

	// current holds the active icon set
	current = unicodeIcons
)

// Init selects the icon set. Call this once at startup with the config
// value; unknown styles fall back to unicode.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleNone:
		current = noneIcons
	default:
		current = unicodeIcons
	}
}

// Valid reports whether style names a known icon set.
func Valid(style string) bool {
	switch Style(style) {
	case StyleNerd, StyleUnicode, StyleNone:
		return true
	}
	return false
}

// Playing returns the now-playing marker.
func Playing() string {
	return current.Playing
}

// FormatItem prefixes a row name with the item icon, if the style has one.
func FormatItem(name string) string {
	return current.Item + name
}
