package core

// Version is the pilas release number.
const Version = "0.3.0"

// RuntimeConfig describes the window a world lives in.
type RuntimeConfig struct {
	Title    string
	ScreenW  int // width in cells
	ScreenH  int // height in cells
	TickRate int // simulation ticks per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Title:    "Pilas",
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}
