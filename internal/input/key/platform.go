package key

import (
	"runtime"
	"strings"
)

// Platform selects the modifier conventions used for matching and display.
type Platform uint8

const (
	// PlatformOther covers Linux, Windows and everything that is not Mac.
	// Meta in a binding is satisfied by Ctrl.
	PlatformOther Platform = iota

	// PlatformMac treats Meta as the Cmd key.
	PlatformMac
)

// String returns "mac" or "other".
func (p Platform) String() string {
	if p == PlatformMac {
		return "mac"
	}
	return "other"
}

// IsMac returns true for PlatformMac.
func (p Platform) IsMac() bool {
	return p == PlatformMac
}

// DetectPlatform reports the platform of the running process.
// Call it once at startup and pass the result explicitly.
func DetectPlatform() Platform {
	if runtime.GOOS == "darwin" {
		return PlatformMac
	}
	return PlatformOther
}

// ParsePlatform parses "mac", "darwin", "other", "linux", "windows" or "auto".
// Unknown values and "auto" fall back to DetectPlatform.
func ParsePlatform(s string) Platform {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mac", "macos", "darwin":
		return PlatformMac
	case "other", "linux", "windows", "win":
		return PlatformOther
	default:
		return DetectPlatform()
	}
}
