package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Terminal base colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
	ColorGray
)

// Stair-climber palette, taken from the judgment colors of the rhythm HUD.
const (
	ColorPink  Color = iota + 32 // Perfect, #ff6b6b
	ColorGold                    // Great, #ffe66d
	ColorTeal                    // Good, #4ecdc4
	ColorSlate                   // Bad and Miss, #556270
)
