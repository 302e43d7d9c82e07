package parameter

import "time"

// Intro Sequence
const (
	// IntroGather is the length of the opening gather phase
	IntroGather = 800 * time.Millisecond

	// IntroTotal is when the reveal phase ends and the gate completes
	IntroTotal = 2400 * time.Millisecond
)

// Intro Marker
const (
	// IntroMarkerKey identifies the persisted "intro seen" flag
	IntroMarkerKey = "intro_seen"

	// IntroMarkerFile is the marker file name used by the file-backed store
	IntroMarkerFile = ".scrolldeck-intro-seen"

	// IntroMarkerDB is the database file used by the sqlite-backed store
	IntroMarkerDB = "scrolldeck.db"
)
