package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Gravity is the project-wide gravity in pixels/s^2, +Y down.
	Gravity = 980.0

	// Dt is the fixed simulation timestep in seconds.
	Dt = 1.0 / 60.0
)
