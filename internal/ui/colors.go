// Package ui holds the ANSI styling shared by the CLI's help and progress output.
package ui

const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorWhite  = "\033[97m"
	ColorRed    = "\033[31m"
)

// Bold styles headings such as the month being fetched
func Bold(s string) string {
	return ColorBold + s + ColorReset
}

// Success marks files written and completed runs
func Success(s string) string {
	return ColorGreen + s + ColorReset
}

// Info marks non-fatal notices, e.g. an unpublished bulletin
func Info(s string) string {
	return ColorDim + ColorYellow + s + ColorReset
}

func Error(s string) string {
	return ColorRed + s + ColorReset
}
