package parameter

// Terminal Host
const (
	// TermCellHeight converts terminal rows into pixel units for the probe and touch adapter
	TermCellHeight = 16.0

	// TermWheelDelta is the delta reported for one terminal wheel notch
	TermWheelDelta = 40.0

	// TermIndicatorGap is the spacing between indicator dots (cells)
	TermIndicatorGap = 2

	// TermBodyMargin is the horizontal margin around scene bodies (cells)
	TermBodyMargin = 4
)

// Broadcast
const (
	// ServerAddr is the default listen address for the broadcast server
	ServerAddr = "127.0.0.1:7717"

	// SubscriberBuffer is the per-subscriber snapshot channel capacity
	SubscriberBuffer = 16
)
