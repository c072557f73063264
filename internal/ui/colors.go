package ui

// The Color* functions return the escape code for a color category of the
// active theme. Call sites concatenate them around text and finish with
// ColorReset. All are safe for concurrent use.

// ColorPrimary returns the main accent color.
func ColorPrimary() string { return GetCurrentTheme().Primary }

// ColorCyan returns the main accent color. Alias kept for call-site
// readability in formatted output.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorBlue returns the informational color.
func ColorBlue() string { return GetCurrentTheme().Info }

// ColorMagenta returns the informational color.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorGreen returns the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorRed returns the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGrey returns the secondary color.
func ColorGrey() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the reset escape code.
func ColorReset() string { return GetCurrentTheme().Reset }
