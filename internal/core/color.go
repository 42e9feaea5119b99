package core

// Color is the semantic color of a screen cell. Renderers map it to
// whatever their terminal supports.
type Color uint8

const (
	ColorDefault Color = iota
	ColorPlayer
	ColorDeadPlayer
	ColorObstacle
	ColorOscillating
	ColorGrass
	ColorLava
	ColorSpikes
	ColorHUD
	ColorAlert
	ColorDim
)
