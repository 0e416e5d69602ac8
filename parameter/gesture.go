package parameter

// Hand landmark topology (21-point hand model)
const (
	LandmarkCount  = 21
	LandmarkWrist  = 0
	LandmarkPalm   = 9 // middle finger MCP
	LandmarkIndex  = 8
	LandmarkMiddle = 12
	LandmarkRing   = 16
	LandmarkPinky  = 20
)

// Classification thresholds in normalized image units
// Values between the two are a dead zone that reports no gesture
const (
	GestureClosedThreshold = 0.25
	GestureOpenThreshold   = 0.35
)

// GestureStaleSeconds is how long a sample holds without a newer publication
// before the scene treats the hand as gone
const GestureStaleSeconds = 0.25

// Landmark feed
const (
	FeedAddr = "127.0.0.1:8088"
	// FeedMaxBody caps a landmark POST body
	FeedMaxBody = 64 << 10
)
