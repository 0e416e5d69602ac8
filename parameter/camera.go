package parameter

// Perspective camera for the terminal projection
const (
	CameraX = 0.0
	CameraY = 4.0
	CameraZ = 22.0
	// CameraFOV is the vertical field of view in degrees
	CameraFOV = 40.0
	// CameraNear clips points closer than this along the view axis
	CameraNear = 0.5
	// CellAspect is terminal cell height over width
	CellAspect = 2.0
	// CellPixelWidth approximates one terminal column in screen pixels for drag scaling
	CellPixelWidth = 8.0
)
