// Package ui provides shared UI constants and the presentation surface.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// ScrollMargin is the number of items kept visible above/below the cursor.
	ScrollMargin = 3

	// BorderHeight is the vertical space consumed by a panel border.
	BorderHeight = 2

	// HeaderHeight is the space for header + separator in panels.
	HeaderHeight = 2

	// PanelOverhead is the total vertical overhead of a panel.
	// listHeight = panelHeight - PanelOverhead
	PanelOverhead = BorderHeight + HeaderHeight

	// MinLabelWidth is the narrowest the player bar truncates a label to.
	MinLabelWidth = 8
)
