package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which links are dropped
	// from video rows.
	LayoutCompactWidth = 90

	// ProgressBarWidth is the cell width of a section progress bar.
	ProgressBarWidth = 24
)

// NoticeTTL is how long a notice stays in the footer.
const NoticeTTL = 3 * time.Second
