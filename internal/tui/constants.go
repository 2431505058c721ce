package tui

// UI layout constants
const (
	// Lines used by everything except the body box: header, status,
	// box borders and footer
	MainViewHeightOffset = 6

	// Width consumed by the body box border and padding
	ViewportBorderWidth = 4

	// Width of the method badge plus spacing before the URL input
	MethodBadgeWidth = 8

	// Width of the progress bar while a fetch is in flight
	ProgressBarWidth = 30

	// Notice modal bounds
	NoticeMaxWidth = 70
	NoticeMargin   = 6

	// Footer messages longer than this are truncated
	FooterMessageMax = 100
)
