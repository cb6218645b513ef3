package core

// Color is the foreground color of a screen cell, mapped to an ANSI
// 256-color code by the platform layer.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// Semantic aliases used by the clicker panels.
const (
	ColorCoins    = ColorBrightYellow
	ColorGems     = ColorBrightCyan
	ColorCrystals = ColorMagenta
	ColorLocked   = ColorGray
	ColorAccent   = ColorOrange
)
